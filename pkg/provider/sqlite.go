package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite stores form definitions in a form_pages table, keyed by name. It
// backs self-contained deployments that keep forms next to the service
// instead of on a wiki.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database handle. The caller owns the handle and
// its lifecycle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// EnsureSchema creates the form_pages table when it does not exist yet.
func (p *SQLite) EnsureSchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS form_pages (
		name TEXT PRIMARY KEY,
		definition TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("provider: ensure schema: %w", err)
	}
	return nil
}

// Put inserts or replaces a form definition.
func (p *SQLite) Put(ctx context.Context, name, definition string) error {
	const upsert = `INSERT INTO form_pages (name, definition, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT (name) DO UPDATE SET
			definition = excluded.definition,
			updated_at = excluded.updated_at`
	if _, err := p.db.ExecContext(ctx, upsert, name, definition); err != nil {
		return fmt.Errorf("provider: store form %q: %w", name, err)
	}
	return nil
}

// GetForm implements Provider.
func (p *SQLite) GetForm(ctx context.Context, name string) (string, error) {
	const query = `SELECT definition FROM form_pages WHERE name = ?`
	var definition string
	err := p.db.QueryRowContext(ctx, query, name).Scan(&definition)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("provider: load form %q: %w", name, err)
	}
	return definition, nil
}
