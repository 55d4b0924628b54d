package formdef_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
	"github.com/goliatone/go-wbforms/pkg/formdef"
)

type datamodelID = datamodel.EntityID

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		text string
		want formdef.Form
	}{
		{
			name: "empty definition",
			text: "",
			want: formdef.Form{},
		},
		{
			name: "single statement section",
			text: "Statement(P1)",
			want: formdef.Form{Sections: []formdef.Section{
				{
					Kind:       formdef.KindStatement,
					Quantifier: formdef.One,
					Main:       formdef.SnakSlot{Property: "P1", Quantifier: formdef.One},
				},
			}},
		},
		{
			name: "repeatable statement section with qualifier",
			text: "Statement(P1)+\n- P1(Q2)",
			want: formdef.Form{Sections: []formdef.Section{
				{
					Kind:       formdef.KindStatement,
					Quantifier: formdef.Many,
					Main:       formdef.SnakSlot{Property: "P1", Quantifier: formdef.One},
					Qualifiers: []formdef.SnakSlot{
						{Property: "P1", Quantifier: formdef.One, ValidValues: []datamodelID{"Q2"}},
					},
				},
			}},
		},
		{
			name: "plain section with repeatable and fixed-choice slots",
			text: "Statements\n- P1+\n- P1(Q2)",
			want: formdef.Form{Sections: []formdef.Section{
				{
					Kind:       formdef.KindStatements,
					Quantifier: formdef.One,
					Statements: []formdef.SnakSlot{
						{Property: "P1", Quantifier: formdef.Many},
						{Property: "P1", Quantifier: formdef.One, ValidValues: []datamodelID{"Q2"}},
					},
				},
			}},
		},
		{
			name: "labels and multiple sections",
			text: "Statement(P31)+ Instance of\n- P580\n\nStatements External links\n- P856(Q1,Q5)+",
			want: formdef.Form{Sections: []formdef.Section{
				{
					Kind:       formdef.KindStatement,
					Label:      "Instance of",
					Quantifier: formdef.Many,
					Main:       formdef.SnakSlot{Property: "P31", Quantifier: formdef.One},
					Qualifiers: []formdef.SnakSlot{
						{Property: "P580", Quantifier: formdef.One},
					},
				},
				{
					Kind:       formdef.KindStatements,
					Label:      "External links",
					Quantifier: formdef.One,
					Statements: []formdef.SnakSlot{
						{Property: "P856", Quantifier: formdef.Many, ValidValues: []datamodelID{"Q1", "Q5"}},
					},
				},
			}},
		},
		{
			name: "windows line endings and trailing blank lines",
			text: "Statement(P1)\r\n\r\n",
			want: formdef.Form{Sections: []formdef.Section{
				{
					Kind:       formdef.KindStatement,
					Quantifier: formdef.One,
					Main:       formdef.SnakSlot{Property: "P1", Quantifier: formdef.One},
				},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formdef.Parse(tc.text)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("form mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		line int
	}{
		{name: "slot before header", text: "- P1", line: 1},
		{name: "bad property id", text: "Statement(X1)", line: 1},
		{name: "item id used as property", text: "Statement(Q1)", line: 1},
		{name: "unterminated header", text: "Statement(P1", line: 1},
		{name: "unknown header", text: "Qualifiers(P1)", line: 1},
		{name: "bad valid value", text: "Statements\n- P1(bogus)", line: 2},
		{name: "unterminated value list", text: "Statements\n- P1(Q2", line: 2},
		{name: "empty slot", text: "Statements\n-", line: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formdef.Parse(tc.text)
			if err == nil {
				t.Fatal("expected a parse error")
			}
			var parseErr *formdef.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Line != tc.line {
				t.Fatalf("error on line %d, want %d (%v)", parseErr.Line, tc.line, err)
			}
		})
	}
}
