package datamodel

import "github.com/google/uuid"

// Snak is a property/value pair, the atomic unit statements and qualifiers
// are built from.
type Snak struct {
	Property EntityID  `json:"property"`
	Value    DataValue `json:"datavalue"`
}

// Statement is one claim about an item: a main snak, an ordered list of
// qualifier snaks and a statement guid.
type Statement struct {
	Snak       Snak   `json:"mainsnak"`
	Qualifiers []Snak `json:"qualifiers,omitempty"`
	GUID       string `json:"id,omitempty"`
}

// Item is the entity a form submission creates: an id plus an ordered
// statement list.
type Item struct {
	ID         EntityID    `json:"id,omitempty"`
	Statements []Statement `json:"claims,omitempty"`
}

// NewGUID generates a statement guid in the Wikibase convention of
// "<entity-id>$<uuid>".
func NewGUID(entity EntityID) string {
	return entity.String() + "$" + uuid.NewString()
}
