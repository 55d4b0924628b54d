package render

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-wbforms/pkg/materialize"
	"github.com/goliatone/go-wbforms/pkg/submission"
)

// Options carries the per-request render state: where the form posts to,
// the posted values to echo back, and the problems to show next to their
// fields.
type Options struct {
	// Action is the URL the form posts back to.
	Action string
	// Values are the posted values echoed into the re-rendered inputs.
	Values submission.Fields
	// FieldErrors maps field names to the problem shown next to the input.
	FieldErrors map[string]string
	// FormErrors are problems not tied to a single field, shown above the
	// form.
	FormErrors []string
	// EditToken is written into the wpEditToken hidden field.
	EditToken string
	// SubmitLabel overrides the default label of the final submit button.
	SubmitLabel string
}

// Renderer produces the special page's form HTML from a materialized view.
type Renderer struct {
	engine    *Engine
	sanitizer *bluemonday.Policy
}

// NewRenderer builds a Renderer on the given engine; a nil engine gets the
// embedded default templates.
func NewRenderer(engine *Engine) (*Renderer, error) {
	if engine == nil {
		var err error
		engine, err = NewEngine()
		if err != nil {
			return nil, err
		}
	}
	// Labels and legends come from wiki content and user input, so they are
	// stripped down to plain text before templating.
	return &Renderer{engine: engine, sanitizer: bluemonday.StrictPolicy()}, nil
}

type formVM struct {
	Name        string
	Action      string
	EditToken   string
	SubmitLabel string
	FormErrors  []string
	Sections    []sectionVM
}

type sectionVM struct {
	Legend         string
	AddSectionName string
	Fields         []fieldVM
}

type fieldVM struct {
	Kind     string
	Name     string
	ID       string
	Label    string
	CSSClass string
	Value    string
	Error    string
	Choices  []choiceVM
}

type choiceVM struct {
	Label    string
	Value    string
	Selected bool
}

// Render executes the form template over the materialized view.
func (r *Renderer) Render(view materialize.FormView, opts Options) ([]byte, error) {
	vm := formVM{
		Name:        view.Name,
		Action:      opts.Action,
		EditToken:   opts.EditToken,
		SubmitLabel: opts.SubmitLabel,
	}
	if vm.SubmitLabel == "" {
		vm.SubmitLabel = "Create"
	}
	for _, message := range opts.FormErrors {
		vm.FormErrors = append(vm.FormErrors, r.sanitizer.Sanitize(message))
	}

	for _, section := range view.Sections {
		sec := sectionVM{
			Legend:         r.sanitizer.Sanitize(section.Legend),
			AddSectionName: section.AddSectionName,
		}
		for _, field := range section.Fields {
			sec.Fields = append(sec.Fields, r.fieldVM(field, opts))
		}
		vm.Sections = append(vm.Sections, sec)
	}

	html, err := r.engine.RenderTemplate("form", pongo2.Context{"form": vm})
	if err != nil {
		return nil, fmt.Errorf("render: form %q: %w", view.Name, err)
	}
	return html, nil
}

func (r *Renderer) fieldVM(field materialize.FieldDescriptor, opts Options) fieldVM {
	value := opts.Values.Value(field.Name)
	vm := fieldVM{
		Kind:     string(field.Widget),
		Name:     field.Name,
		ID:       "mw-input-" + field.Name,
		Label:    r.sanitizer.Sanitize(field.Label),
		CSSClass: field.CSSClass,
		Value:    value,
		Error:    opts.FieldErrors[field.Name],
	}
	for _, choice := range field.Choices {
		vm.Choices = append(vm.Choices, choiceVM{
			Label:    r.sanitizer.Sanitize(choice.Label),
			Value:    choice.Value,
			Selected: choice.Value == value && value != "",
		})
	}
	return vm
}
