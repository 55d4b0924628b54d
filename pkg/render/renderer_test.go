package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-wbforms/pkg/fieldkey"
	"github.com/goliatone/go-wbforms/pkg/formdef"
	"github.com/goliatone/go-wbforms/pkg/materialize"
	"github.com/goliatone/go-wbforms/pkg/render"
	"github.com/goliatone/go-wbforms/pkg/submission"
	"github.com/goliatone/go-wbforms/pkg/testsupport"
)

func materializeForm(t *testing.T, definition string, posted submission.Fields) materialize.FormView {
	t.Helper()

	form, err := formdef.Parse(definition)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	form.Name = "Event"

	m := materialize.New(
		testsupport.Labels{"P1": "instance of", "Q2": "human", "Q5": "organization"},
		testsupport.DataTypes{Default: "wikibase-item"},
	)
	view, err := m.Materialize(context.Background(), form, fieldkey.Collect(posted.Names()))
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	return view
}

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.NewRenderer(nil)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderEmitsFieldsAndCompanions(t *testing.T) {
	view := materializeForm(t, "Statement(P1) People", nil)
	r := newRenderer(t)

	html, err := r.Render(view, render.Options{
		Action:    "/wiki/Special:NewFromForm/Event",
		EditToken: "+\\",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	page := string(html)
	for _, want := range []string{
		`action="/wiki/Special:NewFromForm/Event"`,
		`<legend>People</legend>`,
		`name="wp0_0-main"`,
		`id="mw-input-wp0_0-main"`,
		`type="hidden" name="wp0_0-main-hidden"`,
		`name="wpEditToken" value="+\"`,
		`instance of`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("rendered page is missing %q:\n%s", want, page)
		}
	}
}

func TestRenderEchoesValuesAndErrors(t *testing.T) {
	posted := submission.Fields{{Name: "wp0_0-main", Value: "bogus"}}
	view := materializeForm(t, "Statement(P1)", posted)
	r := newRenderer(t)

	html, err := r.Render(view, render.Options{
		Values:      posted,
		FieldErrors: map[string]string{"wp0_0-main": "not a valid item id"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	page := string(html)
	if !strings.Contains(page, `value="bogus"`) {
		t.Errorf("posted value was not echoed back:\n%s", page)
	}
	if !strings.Contains(page, "not a valid item id") {
		t.Errorf("field error missing:\n%s", page)
	}
	if !strings.Contains(page, "mw-htmlform-invalid-input") {
		t.Errorf("invalid-input class missing:\n%s", page)
	}
}

func TestRenderMarksSelectedChoice(t *testing.T) {
	posted := submission.Fields{{Name: "wp0_0-0_0", Value: "Q5"}}
	view := materializeForm(t, "Statement(P1)\n- P1(Q2,Q5)", submission.Fields{{Name: "wp0_0-main", Value: ""}})
	r := newRenderer(t)

	html, err := r.Render(view, render.Options{Values: posted})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	page := string(html)
	if !strings.Contains(page, `<option value="Q5" selected>organization</option>`) {
		t.Errorf("selected option missing:\n%s", page)
	}
	if !strings.Contains(page, `<option value="Q2">human</option>`) {
		t.Errorf("unselected option missing:\n%s", page)
	}
}

func TestRenderAddAnotherControls(t *testing.T) {
	view := materializeForm(t, "Statement(P1)+\n- P1+", nil)
	r := newRenderer(t)

	html, err := r.Render(view, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	page := string(html)
	if !strings.Contains(page, `name="wpplus-0_0"`) {
		t.Errorf("add-section control missing:\n%s", page)
	}
	if !strings.Contains(page, `name="wpplus-0_0-0_0"`) {
		t.Errorf("add-statement control missing:\n%s", page)
	}
}

func TestRenderSanitizesLabels(t *testing.T) {
	view := materializeForm(t, "Statement(P1) <script>alert(1)</script>Title", nil)
	r := newRenderer(t)

	html, err := r.Render(view, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(string(html), "<script>") {
		t.Errorf("markup survived sanitization:\n%s", html)
	}
}
