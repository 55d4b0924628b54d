package datamodel

import (
	"encoding/json"
	"fmt"
)

// Well-known data value types.
const (
	ValueTypeString   = "string"
	ValueTypeEntityID = "wikibase-entityid"
)

// DataValue is a typed structured value. Its JSON form is exactly the
// {"type": ..., "value": ...} envelope that browser-side value widgets write
// into the hidden companion field of a form input, so the same type serves as
// both the in-memory representation and the wire format.
type DataValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// NewStringValue wraps a plain string as a DataValue.
func NewStringValue(s string) DataValue {
	raw, _ := json.Marshal(s)
	return DataValue{Type: ValueTypeString, Value: raw}
}

// NewEntityIDValue wraps an entity id as a DataValue.
func NewEntityIDValue(id EntityID) DataValue {
	raw, _ := json.Marshal(struct {
		ID string `json:"id"`
	}{ID: id.String()})
	return DataValue{Type: ValueTypeEntityID, Value: raw}
}

// ParseDataValue decodes a JSON envelope into a DataValue. The payload must
// carry a non-empty type and a value member.
func ParseDataValue(raw []byte) (DataValue, error) {
	var value DataValue
	if err := json.Unmarshal(raw, &value); err != nil {
		return DataValue{}, fmt.Errorf("datamodel: decode data value: %w", err)
	}
	if value.Type == "" {
		return DataValue{}, fmt.Errorf("datamodel: data value envelope is missing a type")
	}
	if len(value.Value) == 0 {
		return DataValue{}, fmt.Errorf("datamodel: data value envelope is missing a value")
	}
	return value, nil
}

// Encode serialises the value back into its JSON envelope.
func (v DataValue) Encode() ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("datamodel: encode data value: %w", err)
	}
	return raw, nil
}

// EntityID extracts the entity id from a wikibase-entityid value.
func (v DataValue) EntityID() (EntityID, error) {
	if v.Type != ValueTypeEntityID {
		return "", fmt.Errorf("datamodel: value of type %q carries no entity id", v.Type)
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(v.Value, &payload); err != nil {
		return "", fmt.Errorf("datamodel: decode entity id value: %w", err)
	}
	return ParseEntityID(payload.ID)
}
