package server

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-wbforms/pkg/orchestrator"
	"github.com/goliatone/go-wbforms/pkg/provider"
	"github.com/goliatone/go-wbforms/pkg/submission"
)

// anonToken is the edit token of sessions without CSRF state, matching the
// wiki convention for anonymous edits.
const anonToken = `+\`

// Handler serves the form page routes.
type Handler struct {
	orchestrator *orchestrator.Orchestrator
}

// NewHandler builds the HTTP handler tree for the form page.
func NewHandler(o *orchestrator.Orchestrator) http.Handler {
	h := &Handler{orchestrator: o}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get(BasePath+"/{form}", h.show)
	r.Post(BasePath+"/{form}", h.submit)
	return r
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	formName := chi.URLParam(r, "form")

	html, err := h.orchestrator.Show(r.Context(), orchestrator.ShowRequest{
		FormName:  formName,
		Action:    BasePath + "/" + formName,
		EditToken: anonToken,
	})
	if err != nil {
		h.fail(w, formName, err)
		return
	}
	h.page(w, http.StatusOK, html)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	formName := chi.URLParam(r, "form")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read request body", http.StatusBadRequest)
		return
	}
	posted, err := submission.ParseForm(string(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	editToken := posted.Value("wpEditToken")
	outcome, err := h.orchestrator.Submit(r.Context(), orchestrator.SubmitRequest{
		FormName:  formName,
		Posted:    posted,
		EditToken: editToken,
	})
	if err != nil {
		h.fail(w, formName, err)
		return
	}

	switch {
	case outcome.Result != nil:
		http.Redirect(w, r, outcome.Result.RedirectURL, http.StatusSeeOther)
	default:
		// Plus click or validation problems: show the form again with the
		// posted values carried over.
		html, err := h.orchestrator.Show(r.Context(), orchestrator.ShowRequest{
			FormName:    formName,
			Posted:      posted,
			Action:      BasePath + "/" + formName,
			EditToken:   editToken,
			FieldErrors: outcome.FieldErrors,
		})
		if err != nil {
			h.fail(w, formName, err)
			return
		}
		h.page(w, http.StatusOK, html)
	}
}

func (h *Handler) page(w http.ResponseWriter, status int, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(html)
}

func (h *Handler) fail(w http.ResponseWriter, formName string, err error) {
	if errors.Is(err, provider.ErrNotFound) {
		http.Error(w, "form "+formName+" does not exist", http.StatusNotFound)
		return
	}
	log.Printf("form %s: %v", formName, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
