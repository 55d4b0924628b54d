package main

import (
	"database/sql"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-wbforms/pkg/datamodel"
	"github.com/goliatone/go-wbforms/pkg/provider"
)

// config is the YAML configuration of the CLI: where form definitions live
// and the static entity knowledge the local repository serves.
type config struct {
	// Forms holds inline form definitions, keyed by name.
	Forms map[string]string `yaml:"forms"`
	// FormsDir points at a directory of <name>.form files.
	FormsDir string `yaml:"forms_dir"`
	// FormsURL points at an HTTP endpoint serving raw definitions.
	FormsURL string `yaml:"forms_url"`
	// FormsDB points at a SQLite database with a form_pages table.
	FormsDB string `yaml:"forms_db"`

	Labels          map[datamodel.EntityID]string `yaml:"labels"`
	DataTypes       map[datamodel.EntityID]string `yaml:"datatypes"`
	DefaultDataType string                        `yaml:"default_datatype"`

	FirstItemID int    `yaml:"first_item_id"`
	BaseURL     string `yaml:"base_url"`
	Port        int    `yaml:"port"`
}

func loadConfig(path string) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	return cfg, nil
}

// formProvider picks the form source the configuration names. cleanup is
// non-nil when the provider holds resources to release.
func (c config) formProvider() (p provider.Provider, cleanup func() error, err error) {
	switch {
	case c.FormsDB != "":
		db, err := sql.Open("sqlite", c.FormsDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open forms database: %w", err)
		}
		return provider.NewSQLite(db), db.Close, nil
	case c.FormsURL != "":
		return provider.NewHTTP(c.FormsURL), nil, nil
	case c.FormsDir != "":
		return provider.NewFS(os.DirFS(c.FormsDir), ".form"), nil, nil
	case len(c.Forms) > 0:
		return provider.Memory(c.Forms), nil, nil
	}
	return nil, nil, fmt.Errorf("config names no form source (forms, forms_dir, forms_url or forms_db)")
}
