package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
	"github.com/goliatone/go-wbforms/pkg/orchestrator"
	"github.com/goliatone/go-wbforms/pkg/provider"
	"github.com/goliatone/go-wbforms/pkg/submission"
	"github.com/goliatone/go-wbforms/pkg/testsupport"
)

func newOrchestrator(t *testing.T, forms provider.Memory) (*orchestrator.Orchestrator, *testsupport.SaveRecorder) {
	t.Helper()

	saver := &testsupport.SaveRecorder{}
	o, err := orchestrator.New(orchestrator.Config{
		Provider:  forms,
		Labels:    testsupport.Labels{"P1": "instance of"},
		DataTypes: testsupport.DataTypes{Types: map[datamodel.EntityID]string{"P1": "wikibase-item"}},
		Parsers:   &testsupport.RecordingParserFactory{},
		Store:     &testsupport.EntityStore{},
		Saver:     saver,
		Titles:    testsupport.Titles{},
	})
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	return o, saver
}

func fields(pairs ...string) submission.Fields {
	var out submission.Fields
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, submission.Field{Name: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func TestSubmitEndToEnd(t *testing.T) {
	cases := []struct {
		name       string
		definition string
		posted     submission.Fields
		want       []datamodel.Statement
	}{
		{
			name:       "empty form",
			definition: "",
			posted:     nil,
			want:       nil,
		},
		{
			name:       "single statement",
			definition: "Statement(P1)",
			posted:     fields("wp0_0-main", "Q1"),
			want: []datamodel.Statement{
				{Snak: datamodel.Snak{Property: "P1", Value: datamodel.NewEntityIDValue("Q1")}},
			},
		},
		{
			name:       "repeated statement section",
			definition: "Statement(P1)+",
			posted:     fields("wp0_0-main", "Q1", "wp0_1-main", "Q5"),
			want: []datamodel.Statement{
				{Snak: datamodel.Snak{Property: "P1", Value: datamodel.NewEntityIDValue("Q1")}},
				{Snak: datamodel.Snak{Property: "P1", Value: datamodel.NewEntityIDValue("Q5")}},
			},
		},
		{
			name:       "qualifier attaches to its instance",
			definition: "Statement(P1)+\n- P1(Q2)",
			posted: fields(
				"wp0_0-main", "Q1",
				"wp0_0-0_0", "",
				"wp0_1-main", "Q5",
				"wp0_1-0_0", "Q2",
			),
			want: []datamodel.Statement{
				{Snak: datamodel.Snak{Property: "P1", Value: datamodel.NewEntityIDValue("Q1")}},
				{
					Snak: datamodel.Snak{Property: "P1", Value: datamodel.NewEntityIDValue("Q5")},
					Qualifiers: []datamodel.Snak{
						{Property: "P1", Value: datamodel.NewEntityIDValue("Q2")},
					},
				},
			},
		},
		{
			name:       "plain section emits one statement per filled slot",
			definition: "Statements\n- P1+\n- P1(Q2)",
			posted: fields(
				"wp0_0-0_0", "Q1",
				"wp0_0-1_0", "",
				"wp0_1-0_1", "Q5",
				"wp0_1-1_0", "",
			),
			want: []datamodel.Statement{
				{Snak: datamodel.Snak{Property: "P1", Value: datamodel.NewEntityIDValue("Q1")}},
				{Snak: datamodel.Snak{Property: "P1", Value: datamodel.NewEntityIDValue("Q5")}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o, saver := newOrchestrator(t, provider.Memory{"Form": tc.definition})

			outcome, err := o.Submit(context.Background(), orchestrator.SubmitRequest{
				FormName:  "Form",
				Posted:    tc.posted,
				EditToken: "+\\",
			})
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if outcome.Result == nil {
				t.Fatalf("outcome has no result: %+v", outcome)
			}

			if got, want := outcome.Result.RedirectURL, "/wiki/Item:Q333"; got != want {
				t.Errorf("redirect = %q, want %q", got, want)
			}
			if len(saver.Items) != 1 {
				t.Fatalf("saved %d items, want 1", len(saver.Items))
			}
			saved := saver.Items[0]
			if got, want := saved.ID, datamodel.EntityID("Q333"); got != want {
				t.Errorf("item id = %s, want %s", got, want)
			}
			if diff := cmp.Diff(tc.want, saved.Statements, cmpopts.IgnoreFields(datamodel.Statement{}, "GUID")); diff != "" {
				t.Errorf("statements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubmitPlusClickAsksForRerender(t *testing.T) {
	o, saver := newOrchestrator(t, provider.Memory{"Form": "Statement(P1)+"})

	outcome, err := o.Submit(context.Background(), orchestrator.SubmitRequest{
		FormName: "Form",
		Posted:   fields("wp0_0-main", "Q1", "wpplus-0_0", "1"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !outcome.PlusRequested {
		t.Errorf("outcome = %+v, want PlusRequested", outcome)
	}
	if len(saver.Items) != 0 {
		t.Errorf("plus click saved %d items", len(saver.Items))
	}
}

func TestSubmitValidationFailureReturnsFieldErrors(t *testing.T) {
	o, saver := newOrchestrator(t, provider.Memory{"Form": "Statement(P1)"})

	outcome, err := o.Submit(context.Background(), orchestrator.SubmitRequest{
		FormName: "Form",
		Posted:   fields("wp0_0-main", "not an id"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if outcome.Result != nil || outcome.PlusRequested {
		t.Fatalf("outcome = %+v, want field errors only", outcome)
	}
	if _, ok := outcome.FieldErrors["wp0_0-main"]; !ok {
		t.Errorf("field errors = %v, want an entry for wp0_0-main", outcome.FieldErrors)
	}
	if len(saver.Items) != 0 {
		t.Errorf("invalid submission saved %d items", len(saver.Items))
	}
}

func TestShowRendersForm(t *testing.T) {
	o, _ := newOrchestrator(t, provider.Memory{"Form": "Statement(P1) People"})

	html, err := o.Show(context.Background(), orchestrator.ShowRequest{
		FormName:  "Form",
		Action:    "/wiki/Special:NewFromForm/Form",
		EditToken: "+\\",
	})
	if err != nil {
		t.Fatalf("show: %v", err)
	}

	page := string(html)
	for _, want := range []string{`name="wp0_0-main"`, `<legend>People</legend>`, "wpEditToken"} {
		if !strings.Contains(page, want) {
			t.Errorf("page is missing %q:\n%s", want, page)
		}
	}
}

func TestShowGrowsFormAfterPlusClick(t *testing.T) {
	o, _ := newOrchestrator(t, provider.Memory{"Form": "Statement(P1)+"})

	html, err := o.Show(context.Background(), orchestrator.ShowRequest{
		FormName: "Form",
		Posted:   fields("wp0_0-main", "Q1", "wpplus-0_0", "1"),
	})
	if err != nil {
		t.Fatalf("show: %v", err)
	}

	page := string(html)
	if !strings.Contains(page, `name="wp0_1-main"`) {
		t.Errorf("second instance missing after plus click:\n%s", page)
	}
	if !strings.Contains(page, `value="Q1"`) {
		t.Errorf("posted value not echoed:\n%s", page)
	}
}

func TestUnknownFormReportsNotFound(t *testing.T) {
	o, _ := newOrchestrator(t, provider.Memory{})

	_, err := o.Show(context.Background(), orchestrator.ShowRequest{FormName: "Missing"})
	if !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("show error = %v, want ErrNotFound", err)
	}

	_, err = o.Submit(context.Background(), orchestrator.SubmitRequest{FormName: "Missing"})
	if !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("submit error = %v, want ErrNotFound", err)
	}
}
