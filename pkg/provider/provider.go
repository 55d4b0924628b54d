// Package provider resolves form names to form definition text. A provider
// is the storage side of the system: the wiki pages, files, or database rows
// that hold form definitions live behind this interface.
package provider

import (
	"context"
	"errors"
	"sort"
)

// ErrNotFound reports that no form definition exists under the requested
// name. Callers translate it into their own not-found surface.
var ErrNotFound = errors.New("provider: form not found")

// Provider hands out the raw definition text of a named form.
type Provider interface {
	GetForm(ctx context.Context, name string) (string, error)
}

// Memory is a fixed in-memory provider, mostly for tests and the offline
// tooling.
type Memory map[string]string

// GetForm implements Provider.
func (m Memory) GetForm(_ context.Context, name string) (string, error) {
	text, ok := m[name]
	if !ok {
		return "", ErrNotFound
	}
	return text, nil
}

// Names lists the forms the provider knows, sorted.
func (m Memory) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
