package services

import (
	"testing"

	"budgetsummary/testhelpers"
)

func TestRecordBudgetExport(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	artifact, err := RenderBudget(sampleBudget(), LangES, FormatDocx)
	if err != nil {
		t.Fatalf("RenderBudget() error = %v", err)
	}

	record, err := RecordBudgetExport(app, artifact, "  Cocina Nueva ", "http")
	if err != nil {
		t.Fatalf("RecordBudgetExport() error = %v", err)
	}

	if got := record.GetString("file_name"); got != "Cocina_Nueva_es.docx" {
		t.Errorf("file_name = %q", got)
	}
	if got := record.GetString("project_name"); got != "Cocina Nueva" {
		t.Errorf("project_name = %q, want trimmed name", got)
	}
	if got := record.GetFloat("grand_total"); got != 686.75 {
		t.Errorf("grand_total = %v, want 686.75", got)
	}
	if got := record.GetInt("size_bytes"); got != len(artifact.Data) {
		t.Errorf("size_bytes = %d, want %d", got, len(artifact.Data))
	}
	if testhelpers.CountExports(t, app) != 1 {
		t.Error("expected exactly one export log entry")
	}
}

func TestRecordBudgetExport_InvalidSource(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	artifact := Artifact{FileName: "x_es.pdf", Format: FormatPDF, Language: LangES}
	if _, err := RecordBudgetExport(app, artifact, "x", "email"); err == nil {
		t.Error("expected an error for an unknown source")
	}
	if testhelpers.CountExports(t, app) != 0 {
		t.Error("invalid record should not be stored")
	}
}

func TestListBudgetExports(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestExport(t, app, "Patio_es.docx", "es", "docx", 100)
	testhelpers.CreateTestExport(t, app, "Patio_en.pdf", "en", "pdf", 100)
	testhelpers.CreateTestExport(t, app, "Baño_es.xlsx", "es", "xlsx", 250.5)

	all, err := ListBudgetExports(app, 0)
	if err != nil {
		t.Fatalf("ListBudgetExports() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}

	names := make([]string, len(all))
	for i, e := range all {
		names[i] = e.FileName
		if e.Created == "" {
			t.Errorf("entry %s has no created time", e.FileName)
		}
	}
	if !containsText(names, "Baño_es.xlsx") {
		t.Errorf("missing entry, got %v", names)
	}

	limited, err := ListBudgetExports(app, 2)
	if err != nil {
		t.Fatalf("ListBudgetExports(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(limited))
	}
}

func TestListBudgetExports_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	entries, err := ListBudgetExports(app, 10)
	if err != nil {
		t.Fatalf("ListBudgetExports() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
