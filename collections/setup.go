package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// BudgetExports is the collection that logs every generated budget
// document. Only metadata is stored.
const BudgetExports = "budget_exports"

// ExportSources are the surfaces that can produce a budget document.
var ExportSources = []string{"http", "cli"}

// ExportFormats and ExportLanguages mirror the values the generator accepts.
var (
	ExportFormats   = []string{"docx", "xlsx", "pdf"}
	ExportLanguages = []string{"es", "en"}
)

// Setup programmatically creates/ensures the budget_exports collection
// exists.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, BudgetExports, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "file_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "project_name", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "language",
			Required:  true,
			Values:    ExportLanguages,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "format",
			Required:  true,
			Values:    ExportFormats,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "grand_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "size_bytes", Required: false, OnlyInt: true})
		c.Fields.Add(&core.SelectField{
			Name:      "source",
			Required:  true,
			Values:    ExportSources,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_budget_exports_created", false, "created", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
