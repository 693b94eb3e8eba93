package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/services"
	"budgetsummary/templates"
)

// HandleBudgetPreview renders the submitted budget as HTML. HTMX requests
// get the document fragment; other requests get a full page.
func HandleBudgetPreview() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lang := GetLanguage(e.Request)

		in, err := parseBudgetRequest(e.Response, e.Request)
		if err != nil {
			log.Printf("budget_preview: invalid request: %v", err)
			return ErrorToast(e, http.StatusBadRequest, NoticeInvalidBudget.Message(lang))
		}

		doc, err := services.BuildBudgetDocument(in.ToBudget(), lang)
		if err != nil {
			log.Printf("budget_preview: failed to assemble (%s): %v", lang, err)
			return ErrorToast(e, http.StatusInternalServerError, NoticeGenerationFailed.Message(lang))
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.PreviewContent(doc)
		} else {
			component = templates.PreviewPage(doc)
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return component.Render(e.Request.Context(), e.Response)
	}
}
