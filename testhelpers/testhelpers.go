// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestExport inserts a budget_exports record and returns it.
func CreateTestExport(t *testing.T, app *pocketbase.PocketBase, fileName, lang, format string, grandTotal float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.BudgetExports)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collections.BudgetExports, err)
	}

	record := core.NewRecord(col)
	record.Set("file_name", fileName)
	record.Set("project_name", strings.TrimSuffix(fileName, "_"+lang+"."+format))
	record.Set("language", lang)
	record.Set("format", format)
	record.Set("grand_total", grandTotal)
	record.Set("size_bytes", 1024)
	record.Set("source", "http")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test export: %v", err)
	}
	return record
}

// CountExports returns the number of records in budget_exports.
func CountExports(t *testing.T, app *pocketbase.PocketBase) int {
	t.Helper()

	records, err := app.FindAllRecords(collections.BudgetExports)
	if err != nil {
		t.Fatalf("failed to list exports: %v", err)
	}
	return len(records)
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
