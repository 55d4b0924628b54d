// Package server exposes the form page over HTTP: a GET renders the form, a
// POST either re-renders it (plus clicks, validation problems) or saves the
// new item and redirects to it.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/goliatone/go-wbforms/pkg/orchestrator"
)

// BasePath is the path prefix the form page is served under, mirroring the
// special page title of the wiki surface.
const BasePath = "/wiki/Special:NewFromForm"

// Config holds server configuration.
type Config struct {
	Port         int
	Orchestrator *orchestrator.Orchestrator
}

// Run starts the HTTP server and shuts it down when the context is
// cancelled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Orchestrator == nil {
		return fmt.Errorf("server: orchestrator is required")
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("serving %s on %s", BasePath, addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(cfg.Orchestrator),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
