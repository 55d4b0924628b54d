// Package reconcile folds a flat posted submission back into the ordered
// statement list of a new item. It runs in two passes over the same snak
// cache: a validation pass that parses and checks every filled field, and an
// assembly pass that regroups fields by section and instance and builds
// statements in form-definition order regardless of the order fields were
// posted in.
package reconcile

import (
	"context"
	"fmt"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
	"github.com/goliatone/go-wbforms/pkg/fieldkey"
	"github.com/goliatone/go-wbforms/pkg/formdef"
	"github.com/goliatone/go-wbforms/pkg/snakcache"
	"github.com/goliatone/go-wbforms/pkg/submission"
)

// Config wires the external collaborators a Reconciler needs.
type Config struct {
	DataTypes  DataTypeLookup
	Parsers    ParserFactory
	Validators ValidatorFactory
	Store      EntityStore
	Saver      SavePipeline
	Titles     TitleLookup
}

// Reconciler validates submissions and assembles items from them.
type Reconciler struct {
	cfg Config
}

// New constructs a Reconciler.
func New(cfg Config) *Reconciler {
	return &Reconciler{cfg: cfg}
}

// Result reports a completed submission: the saved item and the URL the
// user is redirected to.
type Result struct {
	Item        datamodel.Item
	RedirectURL string
}

// Validate parses and checks every filled form field of the submission,
// populating the cache as it goes. It returns per-field problems keyed by
// field name; one failing field does not stop the others from being
// checked. Empty values are always acceptable here, a slot is optional
// unless the surrounding UI says otherwise.
func (r *Reconciler) Validate(ctx context.Context, form formdef.Form, posted submission.Fields, cache *snakcache.Cache) (map[string]string, error) {
	problems := make(map[string]string)

	for _, field := range posted {
		key, ok := fieldkey.Decode(field.Name)
		if !ok || key.Kind != fieldkey.KindField || key.Hidden {
			continue
		}
		slot, ok := slotFor(form, key)
		if !ok || field.Value == "" {
			continue
		}

		snak, err := r.parseField(ctx, cache, field.Name, slot, field.Value)
		if err != nil {
			problems[field.Name] = err.Error()
			continue
		}

		dataType, err := r.cfg.DataTypes.DataTypeFor(ctx, slot.Property)
		if err != nil {
			return nil, fmt.Errorf("reconcile: data type of %s: %w", slot.Property, err)
		}
		if r.cfg.Validators == nil {
			continue
		}
		if validator := r.cfg.Validators.ValidatorFor(dataType); validator != nil {
			if err := validator.Validate(ctx, snak.Value); err != nil {
				problems[field.Name] = err.Error()
			}
		}
	}

	if len(problems) == 0 {
		return nil, nil
	}
	return problems, nil
}

// Assemble regroups the posted fields by section and instance and builds the
// new item's ordered statement list. Validate must have run over the same
// cache first; Assemble never reparses raw text.
func (r *Reconciler) Assemble(ctx context.Context, form formdef.Form, posted submission.Fields, cache *snakcache.Cache) (datamodel.Item, error) {
	var item datamodel.Item
	if err := r.cfg.Store.AssignFreshID(ctx, &item); err != nil {
		return datamodel.Item{}, fmt.Errorf("reconcile: assign item id: %w", err)
	}

	instances := fieldkey.Collect(posted.Names())

	for idx, section := range form.Sections {
		// The collected ordinal lists keep every non-adjacent mention, so an
		// interleaved submission names the same instance more than once.
		// Each instance is assembled exactly once, in first-seen order.
		for _, ordinal := range firstSeen(instances.Sections[idx]) {
			instanceKey := fieldkey.Main(idx, ordinal).InstanceKey()
			switch section.Kind {
			case formdef.KindStatement:
				statement, ok, err := r.statementInstance(ctx, posted, cache, item.ID, idx, ordinal, instanceKey, section, instances)
				if err != nil {
					return datamodel.Item{}, err
				}
				if ok {
					item.Statements = append(item.Statements, statement)
				}
			case formdef.KindStatements:
				statements, err := r.standaloneStatements(ctx, posted, cache, item.ID, idx, ordinal, instanceKey, section, instances)
				if err != nil {
					return datamodel.Item{}, err
				}
				item.Statements = append(item.Statements, statements...)
			}
		}
	}

	return item, nil
}

// statementInstance builds the single statement of one StatementSection
// instance. An empty main value yields no statement at all, qualifiers
// included.
func (r *Reconciler) statementInstance(ctx context.Context, posted submission.Fields, cache *snakcache.Cache, itemID datamodel.EntityID, idx int, ordinal, instanceKey string, section formdef.Section, instances fieldkey.Instances) (datamodel.Statement, bool, error) {
	mainName := fieldkey.Main(idx, ordinal).Encode()
	mainSnak, ok, err := r.resolveSnak(ctx, posted, cache, mainName, section.Main)
	if err != nil {
		return datamodel.Statement{}, false, err
	}
	if !ok {
		return datamodel.Statement{}, false, nil
	}

	statement := datamodel.Statement{Snak: mainSnak, GUID: datamodel.NewGUID(itemID)}

	// Qualifiers are attached in slot declaration order, not posted order.
	for slotIdx, slot := range section.Qualifiers {
		for _, slotOrdinal := range firstSeen(instances.Slots[instanceKey][slotIdx]) {
			name := fieldkey.Slot(idx, ordinal, slotIdx, slotOrdinal).Encode()
			snak, ok, err := r.resolveSnak(ctx, posted, cache, name, slot)
			if err != nil {
				return datamodel.Statement{}, false, err
			}
			if ok {
				statement.Qualifiers = append(statement.Qualifiers, snak)
			}
		}
	}

	return statement, true, nil
}

// standaloneStatements builds one statement per non-empty slot value of a
// plain section instance.
func (r *Reconciler) standaloneStatements(ctx context.Context, posted submission.Fields, cache *snakcache.Cache, itemID datamodel.EntityID, idx int, ordinal, instanceKey string, section formdef.Section, instances fieldkey.Instances) ([]datamodel.Statement, error) {
	var statements []datamodel.Statement
	for slotIdx, slot := range section.Statements {
		for _, slotOrdinal := range firstSeen(instances.Slots[instanceKey][slotIdx]) {
			name := fieldkey.Slot(idx, ordinal, slotIdx, slotOrdinal).Encode()
			snak, ok, err := r.resolveSnak(ctx, posted, cache, name, slot)
			if err != nil {
				return nil, err
			}
			if ok {
				statements = append(statements, datamodel.Statement{
					Snak: snak,
					GUID: datamodel.NewGUID(itemID),
				})
			}
		}
	}
	return statements, nil
}

// resolveSnak turns one field into its structured value. A plain field
// posted empty means the user cleared it, which suppresses the snak even
// when a stale hidden companion is still around. Otherwise a non-empty
// hidden companion wins: the browser-side widget already validated that
// payload. A filled plain value must already sit in the cache from the
// validation pass.
func (r *Reconciler) resolveSnak(ctx context.Context, posted submission.Fields, cache *snakcache.Cache, name string, slot formdef.SnakSlot) (datamodel.Snak, bool, error) {
	raw, present := posted.Get(name)
	if present && raw == "" {
		return datamodel.Snak{}, false, nil
	}

	if hidden := posted.Value(name + "-hidden"); hidden != "" {
		value, err := datamodel.ParseDataValue([]byte(hidden))
		if err != nil {
			return datamodel.Snak{}, false, fmt.Errorf("reconcile: hidden value of %s: %w", name, err)
		}
		return datamodel.Snak{Property: slot.Property, Value: value}, true, nil
	}

	if !present {
		return datamodel.Snak{}, false, nil
	}

	snak, ok := cache.Get(name)
	if !ok {
		return datamodel.Snak{}, false, fmt.Errorf("reconcile: field %s was not validated before assembly", name)
	}
	return snak, true, nil
}

func (r *Reconciler) parseField(ctx context.Context, cache *snakcache.Cache, name string, slot formdef.SnakSlot, raw string) (datamodel.Snak, error) {
	return cache.GetOrParse(name, func() (datamodel.Snak, error) {
		dataType, err := r.cfg.DataTypes.DataTypeFor(ctx, slot.Property)
		if err != nil {
			return datamodel.Snak{}, fmt.Errorf("reconcile: data type of %s: %w", slot.Property, err)
		}
		parser, err := r.cfg.Parsers.ParserFor(ctx, dataType)
		if err != nil {
			return datamodel.Snak{}, fmt.Errorf("reconcile: parser for %s: %w", dataType, err)
		}
		value, err := parser.Parse(ctx, raw)
		if err != nil {
			return datamodel.Snak{}, err
		}
		return datamodel.Snak{Property: slot.Property, Value: value}, nil
	})
}

// Submit assembles the item and hands it to the save pipeline. Save
// failures are returned exactly as the pipeline reported them; nothing has
// been persisted at that point, so there is nothing to roll back. On
// success the redirect target of the new entity is resolved and returned.
func (r *Reconciler) Submit(ctx context.Context, form formdef.Form, formName string, posted submission.Fields, cache *snakcache.Cache, editToken string) (Result, error) {
	item, err := r.Assemble(ctx, form, posted, cache)
	if err != nil {
		return Result{}, err
	}

	summary := fmt.Sprintf("Created with form %s", formName)
	if err := r.cfg.Saver.SaveNew(ctx, item, summary, editToken); err != nil {
		return Result{}, err
	}

	target, err := r.cfg.Titles.EntityURL(ctx, item.ID)
	if err != nil {
		return Result{}, fmt.Errorf("reconcile: resolve entity url of %s: %w", item.ID, err)
	}
	return Result{Item: item, RedirectURL: target}, nil
}

func slotFor(form formdef.Form, key fieldkey.Key) (formdef.SnakSlot, bool) {
	if key.Section < 0 || key.Section >= len(form.Sections) {
		return formdef.SnakSlot{}, false
	}
	section := form.Sections[key.Section]
	if key.Slot == fieldkey.MainSlot {
		if section.Kind != formdef.KindStatement {
			return formdef.SnakSlot{}, false
		}
		return section.Main, true
	}
	slots := section.Slots()
	if key.Slot < 0 || key.Slot >= len(slots) {
		return formdef.SnakSlot{}, false
	}
	return slots[key.Slot], true
}

// firstSeen drops repeated ordinals, keeping the position of the first
// mention of each.
func firstSeen(ordinals []string) []string {
	seen := make(map[string]struct{}, len(ordinals))
	out := ordinals[:0:0]
	for _, ordinal := range ordinals {
		if _, ok := seen[ordinal]; ok {
			continue
		}
		seen[ordinal] = struct{}{}
		out = append(out, ordinal)
	}
	return out
}
