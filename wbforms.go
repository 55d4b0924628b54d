// Package wbforms creates structured wiki items from declarative form
// definitions: a definition names the statements an item should carry, the
// library turns it into an HTML or terminal form, and a posted submission is
// folded back into an ordered statement list and saved.
package wbforms

import (
	"context"

	"github.com/goliatone/go-wbforms/pkg/formdef"
	"github.com/goliatone/go-wbforms/pkg/orchestrator"
	"github.com/goliatone/go-wbforms/pkg/reconcile"
)

// Config wires the orchestrator's collaborators; alias exported via the root
// package for convenience.
type Config = orchestrator.Config

// Option customises the orchestrator.
type Option = orchestrator.Option

// ShowRequest describes one render of a form page.
type ShowRequest = orchestrator.ShowRequest

// SubmitRequest describes one posted submission.
type SubmitRequest = orchestrator.SubmitRequest

// Outcome reports what a submission turned into.
type Outcome = orchestrator.Outcome

// Result reports a saved submission.
type Result = reconcile.Result

// New exposes the orchestrator constructor from the top-level module.
func New(cfg Config, options ...Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(cfg, options...)
}

// ParseForm parses a form definition written in the line-oriented
// mini-language.
func ParseForm(text string) (formdef.Form, error) {
	return formdef.Parse(text)
}

// ShowHTML fetches, materializes and renders a form in one call. It is the
// simplest entry point for callers that just want the page HTML.
func ShowHTML(ctx context.Context, cfg Config, formName string, options ...Option) ([]byte, error) {
	o, err := orchestrator.New(cfg, options...)
	if err != nil {
		return nil, err
	}
	return o.Show(ctx, ShowRequest{FormName: formName})
}
