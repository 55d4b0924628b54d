package materialize

import (
	"context"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
	"github.com/goliatone/go-wbforms/pkg/fieldkey"
	"github.com/goliatone/go-wbforms/pkg/formdef"
)

// Widget names the input kind a descriptor renders as.
type Widget string

const (
	// WidgetText is a free-form text input handled by the value widget layer.
	WidgetText Widget = "text"
	// WidgetSelect is a fixed-choice dropdown.
	WidgetSelect Widget = "select"
	// WidgetHidden is the companion field mirroring a visible input's
	// structured value as a JSON envelope.
	WidgetHidden Widget = "hidden"
	// WidgetSubmit is an "add another" submit button.
	WidgetSubmit Widget = "submit"
)

// Choice is one option of a fixed-choice slot.
type Choice struct {
	Label string
	Value string
}

// FieldDescriptor describes one rendered input. Key and Slot together are
// everything the validation and serialization passes need, so descriptors
// can be handed to stateless functions instead of capturing per-field
// closures.
type FieldDescriptor struct {
	Key      fieldkey.Key
	Name     string
	Label    string
	Widget   Widget
	Choices  []Choice
	Slot     formdef.SnakSlot
	DataType string
	CSSClass string
}

// SectionInstance groups the descriptors of one concrete repetition of a
// section.
type SectionInstance struct {
	// Key is the "<section>_<instance>" pair fields of this repetition share.
	Key     string
	Section int
	Ordinal string
	Legend  string
	// AddSectionName carries the submit name of the "add another section"
	// control, or "" when the section does not repeat that way.
	AddSectionName string
	Fields         []FieldDescriptor
}

// FormView is the materialized form: every active section instance with its
// fields, in definition order.
type FormView struct {
	Name     string
	Sections []SectionInstance
}

// Fields returns all concrete input descriptors (skipping submit buttons) in
// render order.
func (v FormView) Fields() []FieldDescriptor {
	var fields []FieldDescriptor
	for _, section := range v.Sections {
		for _, field := range section.Fields {
			if field.Widget == WidgetSubmit {
				continue
			}
			fields = append(fields, field)
		}
	}
	return fields
}

// LabelLookup resolves display labels for entities. The second return value
// reports whether a label exists; callers fall back to the id serialization.
type LabelLookup interface {
	Label(ctx context.Context, id datamodel.EntityID) (string, bool)
}

// DataTypeLookup resolves the data type name of a property, which selects
// the value parser, validator and client-side widget for its fields.
type DataTypeLookup interface {
	DataTypeFor(ctx context.Context, property datamodel.EntityID) (string, error)
}
