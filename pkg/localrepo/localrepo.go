// Package localrepo is a self-contained stand-in for a wiki repository,
// backing the CLI and offline deployments. Labels and property data types
// come from static configuration, fresh ids are handed out sequentially, and
// saving an item writes its JSON serialization instead of editing a wiki.
package localrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
	"github.com/goliatone/go-wbforms/pkg/reconcile"
)

// Config seeds a Repository.
type Config struct {
	// Labels maps entity ids to display labels.
	Labels map[datamodel.EntityID]string
	// DataTypes maps property ids to data type names.
	DataTypes map[datamodel.EntityID]string
	// DefaultDataType applies to properties without an explicit entry;
	// empty means unknown properties are an error.
	DefaultDataType string
	// FirstItemID numbers the first assigned item, defaulting to 1.
	FirstItemID int
	// BaseURL prefixes entity URLs, defaulting to "/wiki/Item:".
	BaseURL string
	// Output receives the JSON of each saved item; nil discards it.
	Output io.Writer
}

// Repository implements every repository-facing interface of the pipeline
// against local state.
type Repository struct {
	mu     sync.Mutex
	cfg    Config
	nextID int
	saved  []datamodel.Item
}

// New constructs a Repository.
func New(cfg Config) *Repository {
	next := cfg.FirstItemID
	if next <= 0 {
		next = 1
	}
	return &Repository{cfg: cfg, nextID: next}
}

// Label implements the materializer's label lookup.
func (r *Repository) Label(_ context.Context, id datamodel.EntityID) (string, bool) {
	label, ok := r.cfg.Labels[id]
	return label, ok
}

// DataTypeFor implements reconcile.DataTypeLookup.
func (r *Repository) DataTypeFor(_ context.Context, property datamodel.EntityID) (string, error) {
	if dt, ok := r.cfg.DataTypes[property]; ok {
		return dt, nil
	}
	if r.cfg.DefaultDataType != "" {
		return r.cfg.DefaultDataType, nil
	}
	return "", fmt.Errorf("localrepo: no data type configured for %s", property)
}

// ParserFor implements reconcile.ParserFactory for the two built-in data
// types: item references and plain strings.
func (r *Repository) ParserFor(_ context.Context, dataType string) (reconcile.ValueParser, error) {
	switch dataType {
	case "wikibase-item":
		return parserFunc(parseItemReference), nil
	case "string":
		return parserFunc(func(_ context.Context, raw string) (datamodel.DataValue, error) {
			return datamodel.NewStringValue(raw), nil
		}), nil
	}
	return nil, fmt.Errorf("localrepo: unsupported data type %q", dataType)
}

// AssignFreshID implements reconcile.EntityStore, numbering items
// sequentially.
func (r *Repository) AssignFreshID(_ context.Context, item *datamodel.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = datamodel.EntityID(fmt.Sprintf("Q%d", r.nextID))
	r.nextID++
	return nil
}

// SaveNew implements reconcile.SavePipeline by recording the item and
// writing its JSON to the configured output.
func (r *Repository) SaveNew(_ context.Context, item datamodel.Item, _, _ string) error {
	r.mu.Lock()
	r.saved = append(r.saved, item)
	r.mu.Unlock()

	if r.cfg.Output == nil {
		return nil
	}
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("localrepo: encode item %s: %w", item.ID, err)
	}
	if _, err := fmt.Fprintf(r.cfg.Output, "%s\n", data); err != nil {
		return fmt.Errorf("localrepo: write item %s: %w", item.ID, err)
	}
	return nil
}

// EntityURL implements reconcile.TitleLookup.
func (r *Repository) EntityURL(_ context.Context, id datamodel.EntityID) (string, error) {
	base := r.cfg.BaseURL
	if base == "" {
		base = "/wiki/Item:"
	}
	return base + id.String(), nil
}

// Saved returns the items saved so far.
func (r *Repository) Saved() []datamodel.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]datamodel.Item, len(r.saved))
	copy(out, r.saved)
	return out
}

type parserFunc func(ctx context.Context, raw string) (datamodel.DataValue, error)

func (fn parserFunc) Parse(ctx context.Context, raw string) (datamodel.DataValue, error) {
	return fn(ctx, raw)
}

func parseItemReference(_ context.Context, raw string) (datamodel.DataValue, error) {
	id, err := datamodel.ParseEntityID(strings.TrimSpace(raw))
	if err != nil {
		return datamodel.DataValue{}, fmt.Errorf("not a valid entity id: %q", raw)
	}
	return datamodel.NewEntityIDValue(id), nil
}
