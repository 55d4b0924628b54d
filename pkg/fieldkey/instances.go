package fieldkey

import (
	"slices"
	"strconv"
)

// PlusOrdinal is the marker recorded when a submission contains an "add
// another" request; ExpandPlus replaces it with a fresh ordinal.
const PlusOrdinal = "plus"

// Instances records which repetitions of sections and slots a submission
// already contains. Ordinal lists keep the first-seen order of the posted
// field names, which is what keeps re-rendered forms stable.
type Instances struct {
	// Sections maps a section index to its instance ordinals.
	Sections map[int][]string
	// Slots maps an instance key ("<section>_<instance>") and slot index to
	// that slot's instance ordinals.
	Slots map[string]map[int][]string
	// HasPlus is set when any plus marker was posted; such a submission asks
	// for a re-render with one more instance instead of an actual submit.
	HasPlus bool
}

// Collect scans posted field names, in the order they were submitted, and
// gathers the instance ordinals they mention. Repeated mentions of the same
// ordinal are collapsed only when adjacent, preserving the first-seen order
// even when one instance shows up in several unrelated names.
func Collect(names []string) Instances {
	instances := Instances{
		Sections: make(map[int][]string),
		Slots:    make(map[string]map[int][]string),
	}

	for _, name := range names {
		key, ok := Decode(name)
		if !ok {
			continue
		}
		switch key.Kind {
		case KindField:
			instances.Sections[key.Section] = appendAdjacentDedup(instances.Sections[key.Section], key.Instance)
			if key.Slot != MainSlot {
				slots := instances.slotsFor(key.InstanceKey())
				slots[key.Slot] = appendAdjacentDedup(slots[key.Slot], key.SlotInstance)
			}
		case KindSectionPlus:
			instances.Sections[key.Section] = append(instances.Sections[key.Section], PlusOrdinal)
			instances.HasPlus = true
		case KindSlotPlus:
			slots := instances.slotsFor(key.InstanceKey())
			slots[key.Slot] = append(slots[key.Slot], PlusOrdinal)
			instances.HasPlus = true
		}
	}

	return instances
}

func (in Instances) slotsFor(instanceKey string) map[int][]string {
	slots := in.Slots[instanceKey]
	if slots == nil {
		slots = make(map[int][]string)
		in.Slots[instanceKey] = slots
	}
	return slots
}

// SectionOrdinals returns the expanded, active instance ordinals of a
// section. A section nothing was posted for has the single default instance
// "0".
func (in Instances) SectionOrdinals(section int) []string {
	ordinals := in.Sections[section]
	if len(ordinals) == 0 {
		return []string{"0"}
	}
	return ExpandPlus(ordinals)
}

// SlotOrdinals returns the expanded, active instance ordinals of a slot
// within one section instance, defaulting to the single instance "0".
func (in Instances) SlotOrdinals(instanceKey string, slot int) []string {
	ordinals := in.Slots[instanceKey][slot]
	if len(ordinals) == 0 {
		return []string{"0"}
	}
	return ExpandPlus(ordinals)
}

func appendAdjacentDedup(ordinals []string, ordinal string) []string {
	if n := len(ordinals); n > 0 && ordinals[n-1] == ordinal {
		return ordinals
	}
	return append(ordinals, ordinal)
}

// ExpandPlus resolves an "add another" marker in an ordinal list: the first
// marker is spliced out and a fresh ordinal, numbered by the count of
// remaining ordinals, is inserted where the marker sat. Each click therefore
// grows the form by exactly one repetition.
func ExpandPlus(ordinals []string) []string {
	pos := slices.Index(ordinals, PlusOrdinal)
	if pos < 0 {
		return ordinals
	}
	out := slices.Delete(slices.Clone(ordinals), pos, pos+1)
	fresh := strconv.Itoa(len(out))
	at := min(pos+1, len(out))
	return slices.Insert(out, at, fresh)
}
