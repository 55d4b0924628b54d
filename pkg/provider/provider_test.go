package provider_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-wbforms/pkg/provider"
)

func TestMemoryProvider(t *testing.T) {
	p := provider.Memory{"Event": "Statement(P1)"}

	text, err := p.GetForm(context.Background(), "Event")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	if text != "Statement(P1)" {
		t.Errorf("definition = %q", text)
	}

	if _, err := p.GetForm(context.Background(), "Missing"); !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("missing form error = %v, want ErrNotFound", err)
	}
}

func TestFSProvider(t *testing.T) {
	files := fstest.MapFS{
		"Event.form": &fstest.MapFile{Data: []byte("Statement(P1)+ Speakers")},
	}
	p := provider.NewFS(files, ".form")

	text, err := p.GetForm(context.Background(), "Event")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	if text != "Statement(P1)+ Speakers" {
		t.Errorf("definition = %q", text)
	}

	if _, err := p.GetForm(context.Background(), "Missing"); !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("missing form error = %v, want ErrNotFound", err)
	}
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/forms/Event":
			_, _ = w.Write([]byte("Statements\n- P856+"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := provider.NewHTTP(srv.URL+"/forms/", provider.WithHTTPClient(srv.Client()))

	text, err := p.GetForm(context.Background(), "Event")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	if text != "Statements\n- P856+" {
		t.Errorf("definition = %q", text)
	}

	if _, err := p.GetForm(context.Background(), "Missing"); !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("missing form error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteProvider(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	p := provider.NewSQLite(db)
	ctx := context.Background()
	if err := p.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	if err := p.Put(ctx, "Event", "Statement(P1)"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := p.Put(ctx, "Event", "Statement(P1)+"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	text, err := p.GetForm(ctx, "Event")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	if text != "Statement(P1)+" {
		t.Errorf("definition = %q, want the overwritten text", text)
	}

	if _, err := p.GetForm(ctx, "Missing"); !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("missing form error = %v, want ErrNotFound", err)
	}
}
