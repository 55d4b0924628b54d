package datamodel_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
)

func TestParseEntityID(t *testing.T) {
	cases := []struct {
		raw     string
		want    datamodel.EntityID
		wantErr bool
	}{
		{raw: "Q42", want: "Q42"},
		{raw: " P31 ", want: "P31"},
		{raw: "q42", wantErr: true},
		{raw: "Q042", wantErr: true},
		{raw: "X1", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "Q", wantErr: true},
	}
	for _, tc := range cases {
		got, err := datamodel.ParseEntityID(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseEntityID(%q): expected error, got %q", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEntityID(%q): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseEntityID(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestDataValueEnvelopeRoundTrip(t *testing.T) {
	value := datamodel.NewEntityIDValue("Q5")
	raw, err := value.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := datamodel.ParseDataValue(raw)
	if err != nil {
		t.Fatalf("ParseDataValue: %v", err)
	}
	id, err := decoded.EntityID()
	if err != nil {
		t.Fatalf("EntityID: %v", err)
	}
	if id != "Q5" {
		t.Fatalf("EntityID = %q, want Q5", id)
	}
}

func TestParseDataValueRejectsIncompleteEnvelopes(t *testing.T) {
	for _, raw := range []string{`{}`, `{"type":"string"}`, `{"value":"x"}`, `not json`} {
		if _, err := datamodel.ParseDataValue([]byte(raw)); err == nil {
			t.Errorf("ParseDataValue(%s): expected error", raw)
		}
	}
}

func TestNewGUIDCarriesEntityPrefix(t *testing.T) {
	guid := datamodel.NewGUID("Q333")
	if !strings.HasPrefix(guid, "Q333$") {
		t.Fatalf("guid %q does not start with Q333$", guid)
	}
	if len(guid) <= len("Q333$") {
		t.Fatalf("guid %q has no uuid part", guid)
	}
	if guid == datamodel.NewGUID("Q333") {
		t.Fatal("two guids for the same entity should differ")
	}
}
