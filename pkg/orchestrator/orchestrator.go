// Package orchestrator coordinates the full pipeline of the special page:
// fetch and parse the form definition, materialize it against the posted
// field names, render it, and on submit validate and save the new item.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-wbforms/pkg/fieldkey"
	"github.com/goliatone/go-wbforms/pkg/formdef"
	"github.com/goliatone/go-wbforms/pkg/materialize"
	"github.com/goliatone/go-wbforms/pkg/provider"
	"github.com/goliatone/go-wbforms/pkg/reconcile"
	"github.com/goliatone/go-wbforms/pkg/render"
	"github.com/goliatone/go-wbforms/pkg/snakcache"
	"github.com/goliatone/go-wbforms/pkg/submission"
)

// Config wires the external collaborators of the pipeline. Provider, Labels,
// DataTypes, Parsers, Store, Saver and Titles are required; Validators is
// optional.
type Config struct {
	Provider   provider.Provider
	Labels     materialize.LabelLookup
	DataTypes  reconcile.DataTypeLookup
	Parsers    reconcile.ParserFactory
	Validators reconcile.ValidatorFactory
	Store      reconcile.EntityStore
	Saver      reconcile.SavePipeline
	Titles     reconcile.TitleLookup
}

// Option customises the orchestrator beyond the required configuration.
type Option func(*Orchestrator)

// WithRenderer injects a custom HTML renderer.
func WithRenderer(renderer *render.Renderer) Option {
	return func(o *Orchestrator) {
		if renderer != nil {
			o.renderer = renderer
		}
	}
}

// Orchestrator runs form rendering and submission end to end.
type Orchestrator struct {
	cfg          Config
	materializer *materialize.Materializer
	reconciler   *reconcile.Reconciler
	renderer     *render.Renderer
}

// New constructs an Orchestrator, wiring the default renderer unless one is
// injected.
func New(cfg Config, options ...Option) (*Orchestrator, error) {
	switch {
	case cfg.Provider == nil:
		return nil, fmt.Errorf("orchestrator: provider is required")
	case cfg.Labels == nil:
		return nil, fmt.Errorf("orchestrator: label lookup is required")
	case cfg.DataTypes == nil:
		return nil, fmt.Errorf("orchestrator: data type lookup is required")
	case cfg.Parsers == nil:
		return nil, fmt.Errorf("orchestrator: parser factory is required")
	case cfg.Store == nil:
		return nil, fmt.Errorf("orchestrator: entity store is required")
	case cfg.Saver == nil:
		return nil, fmt.Errorf("orchestrator: save pipeline is required")
	case cfg.Titles == nil:
		return nil, fmt.Errorf("orchestrator: title lookup is required")
	}

	o := &Orchestrator{
		cfg:          cfg,
		materializer: materialize.New(cfg.Labels, cfg.DataTypes),
		reconciler: reconcile.New(reconcile.Config{
			DataTypes:  cfg.DataTypes,
			Parsers:    cfg.Parsers,
			Validators: cfg.Validators,
			Store:      cfg.Store,
			Saver:      cfg.Saver,
			Titles:     cfg.Titles,
		}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.renderer == nil {
		renderer, err := render.NewRenderer(nil)
		if err != nil {
			return nil, err
		}
		o.renderer = renderer
	}
	return o, nil
}

// ShowRequest describes one render of the form page. Posted carries the
// previous submission when the page is re-shown after a plus click or a
// validation failure, and is empty on the first view.
type ShowRequest struct {
	FormName    string
	Posted      submission.Fields
	Action      string
	EditToken   string
	FieldErrors map[string]string
	FormErrors  []string
}

// Show renders the form page HTML.
func (o *Orchestrator) Show(ctx context.Context, req ShowRequest) ([]byte, error) {
	form, err := o.loadForm(ctx, req.FormName)
	if err != nil {
		return nil, err
	}

	view, err := o.materializer.Materialize(ctx, form, fieldkey.Collect(req.Posted.Names()))
	if err != nil {
		return nil, err
	}

	return o.renderer.Render(view, render.Options{
		Action:      req.Action,
		Values:      req.Posted,
		FieldErrors: req.FieldErrors,
		FormErrors:  req.FormErrors,
		EditToken:   req.EditToken,
	})
}

// SubmitRequest describes one posted submission.
type SubmitRequest struct {
	FormName  string
	Posted    submission.Fields
	EditToken string
}

// Outcome reports what a submission turned into. Exactly one of the three
// branches is taken: a plus click asks for a re-render, validation problems
// ask for a re-render with errors, and otherwise the item was saved.
type Outcome struct {
	// PlusRequested is set when the submission was an "add another" click
	// rather than an actual submit.
	PlusRequested bool
	// FieldErrors carries validation problems, keyed by field name.
	FieldErrors map[string]string
	// Result is set when the item was saved.
	Result *reconcile.Result
}

// Submit processes a posted form: plus clicks and validation failures come
// back in the Outcome for re-rendering, a clean submission is saved.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) (Outcome, error) {
	form, err := o.loadForm(ctx, req.FormName)
	if err != nil {
		return Outcome{}, err
	}

	if fieldkey.Collect(req.Posted.Names()).HasPlus {
		return Outcome{PlusRequested: true}, nil
	}

	cache := snakcache.New()
	problems, err := o.reconciler.Validate(ctx, form, req.Posted, cache)
	if err != nil {
		return Outcome{}, err
	}
	if len(problems) > 0 {
		return Outcome{FieldErrors: problems}, nil
	}

	result, err := o.reconciler.Submit(ctx, form, req.FormName, req.Posted, cache, req.EditToken)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Result: &result}, nil
}

// Form fetches and parses a named form definition.
func (o *Orchestrator) Form(ctx context.Context, name string) (formdef.Form, error) {
	return o.loadForm(ctx, name)
}

func (o *Orchestrator) loadForm(ctx context.Context, name string) (formdef.Form, error) {
	text, err := o.cfg.Provider.GetForm(ctx, name)
	if err != nil {
		return formdef.Form{}, fmt.Errorf("orchestrator: load form %q: %w", name, err)
	}
	form, err := formdef.Parse(text)
	if err != nil {
		return formdef.Form{}, fmt.Errorf("orchestrator: parse form %q: %w", name, err)
	}
	form.Name = name
	return form, nil
}
