// Package testsupport carries the fakes the package tests share: lookup
// tables for labels and data types, recording parser and save pipelines, and
// a deterministic entity store.
package testsupport

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
	"github.com/goliatone/go-wbforms/pkg/reconcile"
)

// Labels resolves entity labels from a static map.
type Labels map[datamodel.EntityID]string

// Label implements the label lookup used by the materializer.
func (l Labels) Label(_ context.Context, id datamodel.EntityID) (string, bool) {
	label, ok := l[id]
	return label, ok
}

// DataTypes resolves property data types from a static map, falling back to
// Default when one is set.
type DataTypes struct {
	Types   map[datamodel.EntityID]string
	Default string
}

// DataTypeFor implements reconcile.DataTypeLookup.
func (d DataTypes) DataTypeFor(_ context.Context, property datamodel.EntityID) (string, error) {
	if dt, ok := d.Types[property]; ok {
		return dt, nil
	}
	if d.Default != "" {
		return d.Default, nil
	}
	return "", fmt.Errorf("testsupport: no data type for %s", property)
}

// RecordingParserFactory hands out parsers for the string and wikibase-item
// data types and records every raw value that passes through them, so tests
// can assert each field was parsed at most once.
type RecordingParserFactory struct {
	mu     sync.Mutex
	Parsed []string
}

// ParserFor implements reconcile.ParserFactory.
func (f *RecordingParserFactory) ParserFor(_ context.Context, dataType string) (reconcile.ValueParser, error) {
	switch dataType {
	case "string":
		return parserFunc(func(_ context.Context, raw string) (datamodel.DataValue, error) {
			f.record(raw)
			return datamodel.NewStringValue(raw), nil
		}), nil
	case "wikibase-item":
		return parserFunc(func(_ context.Context, raw string) (datamodel.DataValue, error) {
			f.record(raw)
			id, err := datamodel.ParseEntityID(strings.TrimSpace(raw))
			if err != nil {
				return datamodel.DataValue{}, fmt.Errorf("not a valid item id: %q", raw)
			}
			return datamodel.NewEntityIDValue(id), nil
		}), nil
	}
	return nil, fmt.Errorf("testsupport: no parser for data type %q", dataType)
}

func (f *RecordingParserFactory) record(raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Parsed = append(f.Parsed, raw)
}

type parserFunc func(ctx context.Context, raw string) (datamodel.DataValue, error)

func (fn parserFunc) Parse(ctx context.Context, raw string) (datamodel.DataValue, error) {
	return fn(ctx, raw)
}

// StaticValidators maps data types to fixed validators. Data types without an
// entry get no constraint checks.
type StaticValidators map[string]reconcile.Validator

// ValidatorFor implements reconcile.ValidatorFactory.
func (v StaticValidators) ValidatorFor(dataType string) reconcile.Validator {
	return v[dataType]
}

// ValidatorFunc adapts a function to the reconcile.Validator interface.
type ValidatorFunc func(ctx context.Context, value datamodel.DataValue) error

// Validate implements reconcile.Validator.
func (fn ValidatorFunc) Validate(ctx context.Context, value datamodel.DataValue) error {
	return fn(ctx, value)
}

// EntityStore hands out a fixed fresh id, Q333 unless overridden.
type EntityStore struct {
	NextID datamodel.EntityID
	Err    error
}

// AssignFreshID implements reconcile.EntityStore.
func (s *EntityStore) AssignFreshID(_ context.Context, item *datamodel.Item) error {
	if s.Err != nil {
		return s.Err
	}
	id := s.NextID
	if id == "" {
		id = "Q333"
	}
	item.ID = id
	return nil
}

// SaveRecorder records every item handed to the save pipeline and can be
// primed to fail.
type SaveRecorder struct {
	Items     []datamodel.Item
	Summaries []string
	Tokens    []string
	Err       error
}

// SaveNew implements reconcile.SavePipeline.
func (s *SaveRecorder) SaveNew(_ context.Context, item datamodel.Item, summary, editToken string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Items = append(s.Items, item)
	s.Summaries = append(s.Summaries, summary)
	s.Tokens = append(s.Tokens, editToken)
	return nil
}

// Titles builds entity URLs by joining a base path and the entity id.
type Titles struct {
	Base string
}

// EntityURL implements reconcile.TitleLookup.
func (t Titles) EntityURL(_ context.Context, id datamodel.EntityID) (string, error) {
	base := t.Base
	if base == "" {
		base = "/wiki/Item:"
	}
	return base + id.String(), nil
}
