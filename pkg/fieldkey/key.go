// Package fieldkey implements the naming convention that flattens the nested
// section/instance/slot structure of a rendered form into the field names of
// an HTML submission, and turns posted names back into structured keys.
//
// The grammar is the wire protocol between the rendered form and the
// submission handler and must round-trip exactly:
//
//	wp<section>_<instance>-main[-hidden]                  main slot of a statement section
//	wp<section>_<instance>-<slot>_<slotInstance>[-hidden] qualifier or statement slot
//	wpplus-<section>_<instance>                           "add another section instance"
//	wpplus-<section>_<instance>-<slot>_<slotInstance>     "add another slot instance"
//
// The "-hidden" suffix names the companion field mirroring a visible input's
// structured value.
package fieldkey

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind distinguishes the shapes a posted field name can take.
type Kind int

const (
	// KindField names a concrete input inside a section instance.
	KindField Kind = iota
	// KindSectionPlus asks for one more instance of a repeatable section.
	KindSectionPlus
	// KindSlotPlus asks for one more instance of a repeatable slot.
	KindSlotPlus
)

// MainSlot is the Slot value addressing the main slot of a statement
// section; qualifier and statement slots use their declaration index.
const MainSlot = -1

// Key is the decoded form of a field name. Section and Slot index into the
// form definition; Instance and SlotInstance are the textual ordinals of the
// repetition the field belongs to.
type Key struct {
	Kind         Kind
	Section      int
	Instance     string
	Slot         int
	SlotInstance string
	Hidden       bool
}

// Main returns the key of a statement section's main input.
func Main(section int, instance string) Key {
	return Key{Kind: KindField, Section: section, Instance: instance, Slot: MainSlot}
}

// Slot returns the key of a qualifier or statement slot input.
func Slot(section int, instance string, slot int, slotInstance string) Key {
	return Key{Kind: KindField, Section: section, Instance: instance, Slot: slot, SlotInstance: slotInstance}
}

// SectionPlus returns the key of an "add another section instance" control.
func SectionPlus(section int, instance string) Key {
	return Key{Kind: KindSectionPlus, Section: section, Instance: instance}
}

// SlotPlus returns the key of an "add another slot instance" control.
func SlotPlus(section int, instance string, slot int, slotInstance string) Key {
	return Key{Kind: KindSlotPlus, Section: section, Instance: instance, Slot: slot, SlotInstance: slotInstance}
}

// WithHidden returns the companion hidden-field key of a concrete field.
func (k Key) WithHidden() Key {
	k.Hidden = true
	return k
}

// InstanceKey returns the "<section>_<instance>" pair grouping all fields of
// one section instance.
func (k Key) InstanceKey() string {
	return fmt.Sprintf("%d_%s", k.Section, k.Instance)
}

// Encode renders the key in the submission name grammar.
func (k Key) Encode() string {
	switch k.Kind {
	case KindSectionPlus:
		return fmt.Sprintf("wpplus-%d_%s", k.Section, k.Instance)
	case KindSlotPlus:
		return fmt.Sprintf("wpplus-%d_%s-%d_%s", k.Section, k.Instance, k.Slot, k.SlotInstance)
	default:
		var name string
		if k.Slot == MainSlot {
			name = fmt.Sprintf("wp%d_%s-main", k.Section, k.Instance)
		} else {
			name = fmt.Sprintf("wp%d_%s-%d_%s", k.Section, k.Instance, k.Slot, k.SlotInstance)
		}
		if k.Hidden {
			name += "-hidden"
		}
		return name
	}
}

var (
	sectionPlusPattern = regexp.MustCompile(`^wpplus-([0-9]+)_([0-9]+)$`)
	slotPlusPattern    = regexp.MustCompile(`^wpplus-([0-9]+)_([0-9]+)-([0-9]+)_([0-9]+)$`)
	mainFieldPattern   = regexp.MustCompile(`^wp([0-9]+)_([0-9]+)-main(-hidden)?$`)
	slotFieldPattern   = regexp.MustCompile(`^wp([0-9]+)_([0-9]+)-([0-9]+)_([0-9]+)(-hidden)?$`)
)

// Decode parses a posted field name. Names that do not match any shape of the
// grammar report ok == false: submissions routinely carry unrelated form
// machinery (submit buttons, tokens) and those names are skipped, not
// errored.
func Decode(name string) (Key, bool) {
	if m := sectionPlusPattern.FindStringSubmatch(name); m != nil {
		return SectionPlus(mustInt(m[1]), m[2]), true
	}
	if m := slotPlusPattern.FindStringSubmatch(name); m != nil {
		return SlotPlus(mustInt(m[1]), m[2], mustInt(m[3]), m[4]), true
	}
	if m := mainFieldPattern.FindStringSubmatch(name); m != nil {
		key := Main(mustInt(m[1]), m[2])
		key.Hidden = m[3] != ""
		return key, true
	}
	if m := slotFieldPattern.FindStringSubmatch(name); m != nil {
		key := Slot(mustInt(m[1]), m[2], mustInt(m[3]), m[4])
		key.Hidden = m[5] != ""
		return key, true
	}
	return Key{}, false
}

func mustInt(digits string) int {
	n, _ := strconv.Atoi(digits)
	return n
}
