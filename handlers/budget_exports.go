package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/config"
	"budgetsummary/services"
)

// HandleExportList returns the most recent export log entries. The "limit"
// query parameter overrides the configured page size.
func HandleExportList(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		limit := cfg.ExportListLimit
		if raw := e.Request.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return e.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			}
			limit = n
		}

		entries, err := services.ListBudgetExports(app, limit)
		if err != nil {
			log.Printf("export_list: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load export history"})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"items": entries,
			"count": len(entries),
		})
	}
}
