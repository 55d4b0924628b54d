package materialize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-wbforms/pkg/fieldkey"
	"github.com/goliatone/go-wbforms/pkg/formdef"
	"github.com/goliatone/go-wbforms/pkg/materialize"
	"github.com/goliatone/go-wbforms/pkg/testsupport"
)

func materializeNames(t *testing.T, definition string, posted []string) materialize.FormView {
	t.Helper()

	form, err := formdef.Parse(definition)
	require.NoError(t, err)
	form.Name = "Test"

	m := materialize.New(
		testsupport.Labels{"P1": "instance of", "Q2": "human", "Q5": "organization"},
		testsupport.DataTypes{Default: "wikibase-item"},
	)
	view, err := m.Materialize(context.Background(), form, fieldkey.Collect(posted))
	require.NoError(t, err)
	return view
}

func fieldNames(view materialize.FormView) []string {
	var names []string
	for _, section := range view.Sections {
		for _, field := range section.Fields {
			names = append(names, field.Name)
		}
	}
	return names
}

func TestMaterializeFreshForm(t *testing.T) {
	view := materializeNames(t, "Statement(P1) People\n- P1(Q2,Q5)", nil)

	require.Len(t, view.Sections, 1)
	section := view.Sections[0]
	require.Equal(t, "People", section.Legend)
	require.Empty(t, section.AddSectionName)

	require.Equal(t, []string{
		"wp0_0-main",
		"wp0_0-main-hidden",
		"wp0_0-0_0",
		"wp0_0-0_0-hidden",
	}, fieldNames(view))

	main := section.Fields[0]
	require.Equal(t, materialize.WidgetText, main.Widget)
	require.Equal(t, "instance of", main.Label)
	require.Equal(t, "wikibase-item", main.DataType)
	require.Contains(t, main.CSSClass, "wb-forms-property-P1")

	qualifier := section.Fields[2]
	require.Equal(t, materialize.WidgetSelect, qualifier.Widget)
	// First choice is the empty "no value" option.
	require.Len(t, qualifier.Choices, 3)
	require.Equal(t, "", qualifier.Choices[0].Value)
	require.Equal(t, "human", qualifier.Choices[1].Label)
	require.Equal(t, "Q5", qualifier.Choices[2].Value)
}

func TestMaterializeRepeatableSectionControl(t *testing.T) {
	view := materializeNames(t, "Statement(P1)+", nil)

	require.Len(t, view.Sections, 1)
	require.Equal(t, "wpplus-0_0", view.Sections[0].AddSectionName)
}

func TestMaterializeGrowsOnPlusMarker(t *testing.T) {
	view := materializeNames(t, "Statement(P1)+", []string{"wp0_0-main", "wpplus-0_0"})

	require.Len(t, view.Sections, 2)
	require.Equal(t, "wp0_0-main", view.Sections[0].Fields[0].Name)
	require.Equal(t, "wp0_1-main", view.Sections[1].Fields[0].Name)
}

func TestMaterializeRepeatableSlotEmitsPlusButton(t *testing.T) {
	view := materializeNames(t, "Statements\n- P1+", nil)

	require.Equal(t, []string{
		"wpplus-0_0-0_0",
		"wp0_0-0_0",
		"wp0_0-0_0-hidden",
	}, fieldNames(view))
	require.Equal(t, materialize.WidgetSubmit, view.Sections[0].Fields[0].Widget)

	grown := materializeNames(t, "Statements\n- P1+", []string{"wp0_0-0_0", "wpplus-0_0-0_0"})
	require.Equal(t, []string{
		"wpplus-0_0-0_0",
		"wp0_0-0_0",
		"wp0_0-0_0-hidden",
		"wpplus-0_0-0_1",
		"wp0_0-0_1",
		"wp0_0-0_1-hidden",
	}, fieldNames(grown))
}

func TestMaterializeFallsBackToIDLabel(t *testing.T) {
	view := materializeNames(t, "Statement(P99)", nil)

	require.Equal(t, "P99", view.Sections[0].Fields[0].Label)
}

func TestFormViewFieldsSkipsSubmitButtons(t *testing.T) {
	view := materializeNames(t, "Statements\n- P1+", nil)

	for _, field := range view.Fields() {
		require.NotEqual(t, materialize.WidgetSubmit, field.Widget)
	}
	require.Len(t, view.Fields(), 2)
}
