package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-wbforms/pkg/fieldkey"
	"github.com/goliatone/go-wbforms/pkg/formdef"
	"github.com/goliatone/go-wbforms/pkg/materialize"
	"github.com/goliatone/go-wbforms/pkg/submission"
)

// Filler walks a form on the terminal and produces the submission a browser
// would have posted.
type Filler struct {
	driver       PromptDriver
	materializer *materialize.Materializer
}

// NewFiller builds a Filler prompting through the given driver.
func NewFiller(driver PromptDriver, materializer *materialize.Materializer) *Filler {
	return &Filler{driver: driver, materializer: materializer}
}

// Fill prompts for every active field of the form. Answering yes to an
// "add another" question replays the materialize step with one more
// repetition, exactly like a plus button click, and prompts only for the
// fields that appeared.
func (f *Filler) Fill(ctx context.Context, form formdef.Form) (submission.Fields, error) {
	var posted submission.Fields
	var markers []string
	answered := make(map[string]bool)
	asked := make(map[string]bool)

	for {
		names := append(posted.Names(), markers...)
		markers = nil

		view, err := f.materializer.Materialize(ctx, form, fieldkey.Collect(names))
		if err != nil {
			return nil, err
		}

		for _, section := range view.Sections {
			for _, field := range section.Fields {
				if field.Widget == materialize.WidgetHidden || field.Widget == materialize.WidgetSubmit {
					continue
				}
				if answered[field.Name] {
					continue
				}
				value, err := f.prompt(ctx, section, field)
				if err != nil {
					return nil, err
				}
				posted = append(posted, submission.Field{Name: field.Name, Value: value})
				answered[field.Name] = true
			}
		}

		marker, err := f.nextMarker(ctx, view, asked)
		if err != nil {
			return nil, err
		}
		if marker == "" {
			return posted, nil
		}
		markers = append(markers, marker)
	}
}

func (f *Filler) prompt(ctx context.Context, section materialize.SectionInstance, field materialize.FieldDescriptor) (string, error) {
	message := field.Label
	if section.Legend != "" {
		message = fmt.Sprintf("%s: %s", section.Legend, field.Label)
	}

	if field.Widget == materialize.WidgetSelect {
		options := make([]string, 0, len(field.Choices))
		values := make([]string, 0, len(field.Choices))
		for _, choice := range field.Choices {
			label := choice.Label
			if label == "" && choice.Value == "" {
				label = "(none)"
			}
			options = append(options, label)
			values = append(values, choice.Value)
		}
		idx, err := f.driver.Select(ctx, SelectConfig{Message: message, Options: options})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(values) {
			return "", nil
		}
		return values[idx], nil
	}

	return f.driver.Input(ctx, InputConfig{
		Message: message,
		Help:    "Leave empty to skip this value.",
	})
}

// nextMarker asks the add-another questions the user has not answered yet
// and returns the first accepted one, or "" when every control was declined.
func (f *Filler) nextMarker(ctx context.Context, view materialize.FormView, asked map[string]bool) (string, error) {
	for _, section := range view.Sections {
		for _, field := range section.Fields {
			if field.Widget != materialize.WidgetSubmit || asked[field.Name] {
				continue
			}
			asked[field.Name] = true
			more, err := f.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Add another %s value?", field.Slot.Property),
			})
			if err != nil {
				return "", err
			}
			if more {
				return field.Name, nil
			}
		}
		if section.AddSectionName == "" || asked[section.AddSectionName] {
			continue
		}
		asked[section.AddSectionName] = true
		label := section.Legend
		if label == "" {
			label = "section"
		}
		more, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add another %s?", label),
		})
		if err != nil {
			return "", err
		}
		if more {
			return section.AddSectionName, nil
		}
	}
	return "", nil
}
