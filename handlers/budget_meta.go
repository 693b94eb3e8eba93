package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/services"
)

// HandleUnits lists the selectable material units.
func HandleUnits() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"default": services.DefaultUnit,
			"units":   services.UnitOptions,
		})
	}
}

// HandleLabels returns the label table of the language named by the {lang}
// path value.
func HandleLabels() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lang, err := services.ParseLanguage(e.Request.PathValue("lang"))
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		labels, err := services.LabelsFor(lang)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"language":     lang,
			"labels":       labels.Map(),
			"observations": services.ObservationsLabel,
			"placeholder":  services.Placeholder,
		})
	}
}

// HandleBudgetTemplate returns the blank budget a new form starts from.
func HandleBudgetTemplate(now func() time.Time) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, services.NewBlankBudgetInput(now()))
	}
}
