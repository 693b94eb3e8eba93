package config

import (
	"errors"
	"testing"

	"budgetsummary/services"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Language != services.LangES {
		t.Errorf("Language = %q, want es", cfg.Language)
	}
	if cfg.Format != services.FormatDocx {
		t.Errorf("Format = %q, want docx", cfg.Format)
	}
	if cfg.OutputDir != "." || !cfg.RecordExports || cfg.ExportListLimit != 50 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"BUDGET_DEFAULT_LANG":      "en-US",
		"BUDGET_DEFAULT_FORMAT":    "PDF",
		"BUDGET_OUTPUT_DIR":        "/tmp/budgets",
		"BUDGET_RECORD_EXPORTS":    "false",
		"BUDGET_EXPORT_LIST_LIMIT": "10",
	})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Language != services.LangEN || cfg.Format != services.FormatPDF {
		t.Errorf("got language %q format %q", cfg.Language, cfg.Format)
	}
	if cfg.OutputDir != "/tmp/budgets" || cfg.RecordExports || cfg.ExportListLimit != 10 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		target  error
	}{
		{"unknown language", map[string]string{"BUDGET_DEFAULT_LANG": "fr"}, services.ErrUnsupportedLanguage},
		{"unknown format", map[string]string{"BUDGET_DEFAULT_FORMAT": "odt"}, services.ErrUnsupportedFormat},
		{"bad bool", map[string]string{"BUDGET_RECORD_EXPORTS": "maybe"}, nil},
		{"negative limit", map[string]string{"BUDGET_EXPORT_LIST_LIMIT": "-1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.environ)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}
