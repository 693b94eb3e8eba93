package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/collections"
	"budgetsummary/commands"
	"budgetsummary/config"
	"budgetsummary/handlers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := pocketbase.New()

	// Create the export log collection on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Resolve the document language once per request
		se.Router.BindFunc(handlers.LanguageMiddleware(cfg.Language))

		// ── Budget documents ─────────────────────────────────────
		se.Router.POST("/budget/export/{format}", handlers.HandleBudgetExport(app, cfg))
		se.Router.POST("/budget/preview", handlers.HandleBudgetPreview())
		se.Router.GET("/budget/exports", handlers.HandleExportList(app, cfg))

		// ── Form data ────────────────────────────────────────────
		se.Router.GET("/budget/template", handlers.HandleBudgetTemplate(time.Now))
		se.Router.GET("/budget/units", handlers.HandleUnits())
		se.Router.GET("/budget/labels/{lang}", handlers.HandleLabels())
		se.Router.POST("/budget/materials/import", handlers.HandleMaterialImport())

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/budget/template")
		})

		return se.Next()
	})

	commands.Register(app, cfg)

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
