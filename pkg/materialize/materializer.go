// Package materialize expands a form definition into the concrete set of
// input fields to render, taking into account how many repetitions of each
// repeatable section and slot the current submission already carries.
package materialize

import (
	"context"
	"fmt"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
	"github.com/goliatone/go-wbforms/pkg/fieldkey"
	"github.com/goliatone/go-wbforms/pkg/formdef"
)

// Materializer walks a form definition and emits field descriptors.
type Materializer struct {
	labels    LabelLookup
	datatypes DataTypeLookup
}

// New constructs a Materializer from its two external lookups.
func New(labels LabelLookup, datatypes DataTypeLookup) *Materializer {
	return &Materializer{labels: labels, datatypes: datatypes}
}

// Materialize produces the active field descriptors of a form, in definition
// order. The instances argument tells it which repetitions a previous
// submission already contained; pass the result of collecting an empty name
// list for a fresh form, which yields one instance of everything.
func (m *Materializer) Materialize(ctx context.Context, form formdef.Form, instances fieldkey.Instances) (FormView, error) {
	view := FormView{Name: form.Name}

	for idx, section := range form.Sections {
		for _, ordinal := range instances.SectionOrdinals(idx) {
			instance, err := m.sectionInstance(ctx, idx, ordinal, section, instances)
			if err != nil {
				return FormView{}, err
			}
			view.Sections = append(view.Sections, instance)
		}
	}

	return view, nil
}

func (m *Materializer) sectionInstance(ctx context.Context, idx int, ordinal string, section formdef.Section, instances fieldkey.Instances) (SectionInstance, error) {
	instance := SectionInstance{
		Key:     fieldkey.Main(idx, ordinal).InstanceKey(),
		Section: idx,
		Ordinal: ordinal,
		Legend:  section.Label,
	}
	if section.Kind == formdef.KindStatement && section.Repeatable() {
		instance.AddSectionName = fieldkey.SectionPlus(idx, ordinal).Encode()
	}

	if section.Kind == formdef.KindStatement {
		main, err := m.fieldFor(ctx, fieldkey.Main(idx, ordinal), section.Main)
		if err != nil {
			return SectionInstance{}, err
		}
		instance.Fields = append(instance.Fields, main, hiddenCompanion(main))
	}

	for slotIdx, slot := range section.Slots() {
		for _, slotOrdinal := range instances.SlotOrdinals(instance.Key, slotIdx) {
			if slot.Repeatable() {
				plus := fieldkey.SlotPlus(idx, ordinal, slotIdx, slotOrdinal)
				instance.Fields = append(instance.Fields, FieldDescriptor{
					Key:    plus,
					Name:   plus.Encode(),
					Label:  "+",
					Widget: WidgetSubmit,
					Slot:   slot,
				})
			}
			field, err := m.fieldFor(ctx, fieldkey.Slot(idx, ordinal, slotIdx, slotOrdinal), slot)
			if err != nil {
				return SectionInstance{}, err
			}
			instance.Fields = append(instance.Fields, field, hiddenCompanion(field))
		}
	}

	return instance, nil
}

func (m *Materializer) fieldFor(ctx context.Context, key fieldkey.Key, slot formdef.SnakSlot) (FieldDescriptor, error) {
	dataType, err := m.datatypes.DataTypeFor(ctx, slot.Property)
	if err != nil {
		return FieldDescriptor{}, fmt.Errorf("materialize: data type of %s: %w", slot.Property, err)
	}

	field := FieldDescriptor{
		Key:      key,
		Name:     key.Encode(),
		Label:    m.entityLabel(ctx, slot.Property),
		Slot:     slot,
		DataType: dataType,
		CSSClass: fmt.Sprintf("wb-forms-valueview wb-forms-property-%s wb-forms-datatype-%s", slot.Property, dataType),
	}

	if slot.FixedChoice() {
		field.Widget = WidgetSelect
		field.Choices = append(field.Choices, Choice{})
		for _, value := range slot.ValidValues {
			field.Choices = append(field.Choices, Choice{
				Label: m.entityLabel(ctx, value),
				Value: value.String(),
			})
		}
	} else {
		field.Widget = WidgetText
	}

	return field, nil
}

func (m *Materializer) entityLabel(ctx context.Context, id datamodel.EntityID) string {
	if label, ok := m.labels.Label(ctx, id); ok && label != "" {
		return label
	}
	return id.String()
}

func hiddenCompanion(field FieldDescriptor) FieldDescriptor {
	hidden := field.Key.WithHidden()
	return FieldDescriptor{
		Key:      hidden,
		Name:     hidden.Encode(),
		Widget:   WidgetHidden,
		Slot:     field.Slot,
		DataType: field.DataType,
	}
}
