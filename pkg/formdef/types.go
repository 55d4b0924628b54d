// Package formdef holds the in-memory representation of a parsed form
// definition and the parser for the wiki-page mini-language that describes
// one.
package formdef

import "github.com/goliatone/go-wbforms/pkg/datamodel"

// Quantifier states how often a section or slot may repeat.
type Quantifier string

const (
	// One marks a section or slot that appears exactly once.
	One Quantifier = "1"
	// Many marks a repeatable section or slot ("+" in the definition).
	Many Quantifier = "+"
)

// SnakSlot is the template for a single statement or qualifier value: the
// property to fill, whether the slot repeats, and an optional fixed set of
// allowed values. An empty ValidValues set means free input.
type SnakSlot struct {
	Property    datamodel.EntityID
	Quantifier  Quantifier
	ValidValues []datamodel.EntityID
}

// Repeatable reports whether the slot may hold more than one value.
func (s SnakSlot) Repeatable() bool {
	return s.Quantifier == Many
}

// FixedChoice reports whether the slot restricts input to a value set.
func (s SnakSlot) FixedChoice() bool {
	return len(s.ValidValues) > 0
}

// SectionKind tags the two section variants.
type SectionKind int

const (
	// KindStatement is a section collecting one main statement plus
	// qualifiers that attach to it.
	KindStatement SectionKind = iota
	// KindStatements is a section collecting independent statements, one per
	// slot value.
	KindStatements
)

// Section is one labeled group of statement slots. The Kind tag decides which
// slot fields are meaningful: a KindStatement section carries Main and
// Qualifiers, a KindStatements section carries Statements.
type Section struct {
	Kind       SectionKind
	Label      string
	Quantifier Quantifier
	Main       SnakSlot
	Qualifiers []SnakSlot
	Statements []SnakSlot
}

// Repeatable reports whether the whole section may repeat.
func (s Section) Repeatable() bool {
	return s.Quantifier == Many
}

// Slots returns the indexable slots of the section: qualifiers for a
// KindStatement section, statement slots otherwise. The main slot of a
// KindStatement section is addressed separately.
func (s Section) Slots() []SnakSlot {
	if s.Kind == KindStatement {
		return s.Qualifiers
	}
	return s.Statements
}

// Form is a parsed form definition: an ordered list of sections. Forms are
// built once per request and never mutated afterwards.
type Form struct {
	Name     string
	Sections []Section
}
