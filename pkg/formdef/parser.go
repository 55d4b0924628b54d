package formdef

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
)

// ParseError reports a structural problem in a form definition, with the
// 1-based line it occurred on.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("formdef: line %d: %s", e.Line, e.Msg)
}

// Parse reads a form definition in the wiki mini-language. The grammar is
// line oriented:
//
//	Statement(P31)+ Instance of
//	- P580
//	- P1932(Q2,Q5)+
//
//	Statements External links
//	- P856+
//
// A "Statement(<property>)" header opens a section collecting one main
// statement, with following "-" lines as qualifier slots. A "Statements"
// header opens a section of independent statement slots. A "+" after the
// header or a slot makes it repeatable, a parenthesised id list restricts the
// slot to those values, and the rest of a header line is the section label.
// Blank lines end the current section.
func Parse(text string) (Form, error) {
	var form Form
	var current *Section

	flush := func() {
		if current != nil {
			form.Sections = append(form.Sections, *current)
			current = nil
		}
	}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		lineNo := i + 1

		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "-"):
			if current == nil {
				return Form{}, &ParseError{Line: lineNo, Msg: "slot line outside of a section"}
			}
			slot, err := parseSlot(strings.TrimSpace(line[1:]), lineNo)
			if err != nil {
				return Form{}, err
			}
			if current.Kind == KindStatement {
				current.Qualifiers = append(current.Qualifiers, slot)
			} else {
				current.Statements = append(current.Statements, slot)
			}
		default:
			flush()
			section, err := parseHeader(line, lineNo)
			if err != nil {
				return Form{}, err
			}
			current = &section
		}
	}
	flush()

	return form, nil
}

func parseHeader(line string, lineNo int) (Section, error) {
	if rest, ok := strings.CutPrefix(line, "Statements"); ok {
		quantifier, label := splitHeaderSuffix(rest)
		return Section{Kind: KindStatements, Label: label, Quantifier: quantifier}, nil
	}
	if rest, ok := strings.CutPrefix(line, "Statement("); ok {
		idPart, tail, found := strings.Cut(rest, ")")
		if !found {
			return Section{}, &ParseError{Line: lineNo, Msg: "unterminated property reference in section header"}
		}
		property, err := datamodel.ParseEntityID(idPart)
		if err != nil {
			return Section{}, &ParseError{Line: lineNo, Msg: err.Error()}
		}
		if !property.IsProperty() {
			return Section{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("%s is not a property id", property)}
		}
		quantifier, label := splitHeaderSuffix(tail)
		return Section{
			Kind:       KindStatement,
			Label:      label,
			Quantifier: quantifier,
			Main:       SnakSlot{Property: property, Quantifier: One},
		}, nil
	}
	return Section{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unrecognized section header %q", line)}
}

// splitHeaderSuffix consumes an optional repeat marker and the remaining
// label text after a section header keyword.
func splitHeaderSuffix(rest string) (Quantifier, string) {
	quantifier := One
	if trimmed, ok := strings.CutPrefix(rest, "+"); ok {
		quantifier = Many
		rest = trimmed
	}
	return quantifier, strings.TrimSpace(rest)
}

func parseSlot(spec string, lineNo int) (SnakSlot, error) {
	if spec == "" {
		return SnakSlot{}, &ParseError{Line: lineNo, Msg: "empty slot line"}
	}

	quantifier := One
	if trimmed, ok := strings.CutSuffix(spec, "+"); ok {
		quantifier = Many
		spec = trimmed
	}

	idPart := spec
	var values []datamodel.EntityID
	if open := strings.Index(spec, "("); open >= 0 {
		if !strings.HasSuffix(spec, ")") {
			return SnakSlot{}, &ParseError{Line: lineNo, Msg: "unterminated value list"}
		}
		idPart = spec[:open]
		for _, item := range strings.Split(spec[open+1:len(spec)-1], ",") {
			value, err := datamodel.ParseEntityID(item)
			if err != nil {
				return SnakSlot{}, &ParseError{Line: lineNo, Msg: err.Error()}
			}
			values = append(values, value)
		}
	}

	property, err := datamodel.ParseEntityID(idPart)
	if err != nil {
		return SnakSlot{}, &ParseError{Line: lineNo, Msg: err.Error()}
	}
	if !property.IsProperty() {
		return SnakSlot{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("%s is not a property id", property)}
	}

	return SnakSlot{Property: property, Quantifier: quantifier, ValidValues: values}, nil
}
