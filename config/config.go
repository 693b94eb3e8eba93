// Package config reads the budget generator settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"budgetsummary/services"
)

// Config holds the defaults applied when a request or command leaves a
// setting out.
type Config struct {
	DefaultLang     string `env:"BUDGET_DEFAULT_LANG"      envDefault:"es"`
	DefaultFormat   string `env:"BUDGET_DEFAULT_FORMAT"    envDefault:"docx"`
	OutputDir       string `env:"BUDGET_OUTPUT_DIR"        envDefault:"."`
	RecordExports   bool   `env:"BUDGET_RECORD_EXPORTS"    envDefault:"true"`
	ExportListLimit int    `env:"BUDGET_EXPORT_LIST_LIMIT" envDefault:"50"`

	Language services.Language
	Format   services.ExportFormat
}

// Load parses the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate resolves the default language and format and rejects values the
// generator does not support.
func (c *Config) Validate() error {
	lang, err := services.ParseLanguage(c.DefaultLang)
	if err != nil {
		return fmt.Errorf("BUDGET_DEFAULT_LANG: %w", err)
	}
	format, err := services.ParseExportFormat(c.DefaultFormat)
	if err != nil {
		return fmt.Errorf("BUDGET_DEFAULT_FORMAT: %w", err)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.ExportListLimit < 0 {
		return fmt.Errorf("BUDGET_EXPORT_LIST_LIMIT must not be negative, got %d", c.ExportListLimit)
	}
	c.Language = lang
	c.Format = format
	return nil
}
