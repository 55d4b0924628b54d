package reconcile

import (
	"context"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
)

// DataTypeLookup resolves the data type name of a property.
type DataTypeLookup interface {
	DataTypeFor(ctx context.Context, property datamodel.EntityID) (string, error)
}

// ValueParser turns raw user text into a structured data value. Parse
// failures carry the message shown next to the offending input.
type ValueParser interface {
	Parse(ctx context.Context, raw string) (datamodel.DataValue, error)
}

// ParserFactory builds a value parser for a data type name.
type ParserFactory interface {
	ParserFor(ctx context.Context, dataType string) (ValueParser, error)
}

// Validator checks a parsed value against the constraints of its data type.
type Validator interface {
	Validate(ctx context.Context, value datamodel.DataValue) error
}

// ValidatorFactory supplies the validator of a data type. A nil validator
// means the data type has no constraints beyond parsing.
type ValidatorFactory interface {
	ValidatorFor(dataType string) Validator
}

// EntityStore assigns a fresh id to a not-yet-persisted item.
type EntityStore interface {
	AssignFreshID(ctx context.Context, item *datamodel.Item) error
}

// SavePipeline persists a newly assembled item. Failures are reported back
// to the submitting user verbatim.
type SavePipeline interface {
	SaveNew(ctx context.Context, item datamodel.Item, summary, editToken string) error
}

// TitleLookup resolves the page URL of an entity, used as the redirect
// target after a successful save.
type TitleLookup interface {
	EntityURL(ctx context.Context, id datamodel.EntityID) (string, error)
}
