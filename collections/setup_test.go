package collections_test

import (
	"testing"

	"budgetsummary/collections"
	"budgetsummary/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

func TestSetup_BudgetExportsExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, err := app.FindCollectionByNameOrId(collections.BudgetExports)
	if err != nil {
		t.Fatalf("collection %q not found after Setup(): %v", collections.BudgetExports, err)
	}
	if col.Name != collections.BudgetExports {
		t.Errorf("expected collection name %q, got %q", collections.BudgetExports, col.Name)
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	col, _ := app.FindCollectionByNameOrId(collections.BudgetExports)
	id := col.Id

	collections.Setup(app)

	col, err := app.FindCollectionByNameOrId(collections.BudgetExports)
	if err != nil {
		t.Fatalf("collection missing after second Setup(): %v", err)
	}
	if col.Id != id {
		t.Errorf("collection id changed after second Setup(): %s -> %s", id, col.Id)
	}
}

func TestSetup_BudgetExportsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(collections.BudgetExports)

	fields := []string{"file_name", "project_name", "language", "format", "grand_total", "size_bytes", "source", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("budget_exports: missing field %q", f)
		}
	}

	format, ok := col.Fields.GetByName("format").(*core.SelectField)
	if !ok {
		t.Fatal("format should be a select field")
	}
	if len(format.Values) != 3 {
		t.Errorf("format values = %v", format.Values)
	}
}

func TestSetup_RejectsUnknownFormat(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(collections.BudgetExports)

	record := core.NewRecord(col)
	record.Set("file_name", "x.odt")
	record.Set("language", "es")
	record.Set("format", "odt")
	record.Set("source", "cli")
	if err := app.Save(record); err == nil {
		t.Error("expected validation error for an unknown format")
	}
}
