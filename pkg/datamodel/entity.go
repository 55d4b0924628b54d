package datamodel

import (
	"fmt"
	"regexp"
	"strings"
)

// EntityID identifies a Wikibase entity by its serialized id, for example
// "Q42" for an item or "P31" for a property.
type EntityID string

var entityIDPattern = regexp.MustCompile(`^[PQ][1-9][0-9]*$`)

// ParseEntityID validates and normalises a serialized entity id.
func ParseEntityID(raw string) (EntityID, error) {
	trimmed := strings.TrimSpace(raw)
	if !entityIDPattern.MatchString(trimmed) {
		return "", fmt.Errorf("datamodel: invalid entity id %q", raw)
	}
	return EntityID(trimmed), nil
}

// String returns the canonical serialization.
func (id EntityID) String() string {
	return string(id)
}

// IsProperty reports whether the id names a property ("P" prefix).
func (id EntityID) IsProperty() bool {
	return strings.HasPrefix(string(id), "P")
}

// IsItem reports whether the id names an item ("Q" prefix).
func (id EntityID) IsItem() bool {
	return strings.HasPrefix(string(id), "Q")
}
