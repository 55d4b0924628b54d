// Package submission carries a posted form body as an ordered list of
// name/value pairs. The instance-ordinal collection in fieldkey depends on
// seeing posted names in wire order, which Go maps (and url.Values) do not
// preserve, so the order is made an explicit part of the type.
package submission

import (
	"fmt"
	"net/url"
	"strings"
)

// Field is one posted name/value pair.
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered submission. The zero value is an empty submission.
type Fields []Field

// ParseForm decodes an application/x-www-form-urlencoded body, preserving
// the order pairs appear on the wire.
func ParseForm(body string) (Fields, error) {
	if body == "" {
		return nil, nil
	}
	var fields Fields
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, fmt.Errorf("submission: decode field name %q: %w", rawName, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("submission: decode value of %q: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return fields, nil
}

// Get returns the first posted value for a name.
func (f Fields) Get(name string) (string, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Value returns the first posted value for a name, or "".
func (f Fields) Value(name string) string {
	value, _ := f.Get(name)
	return value
}

// Names returns the posted names in wire order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// Encode renders the submission back into a urlencoded body, in order.
func (f Fields) Encode() string {
	var b strings.Builder
	for i, field := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(field.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(field.Value))
	}
	return b.String()
}
