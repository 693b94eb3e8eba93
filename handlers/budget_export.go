package handlers

import (
	"context"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/config"
	"budgetsummary/services"
)

// responseSaver delivers a finished document as an HTTP attachment.
type responseSaver struct {
	w           http.ResponseWriter
	contentType string
}

func (s responseSaver) Save(_ context.Context, fileName string, data []byte) error {
	h := s.w.Header()
	h.Set("Content-Type", s.contentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	_, err := s.w.Write(data)
	return err
}

// HandleBudgetExport returns a handler that generates a budget document in
// the format named by the {format} path value and sends it as a download.
func HandleBudgetExport(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lang := GetLanguage(e.Request)

		format := cfg.Format
		if raw := e.Request.PathValue("format"); raw != "" {
			f, err := services.ParseExportFormat(raw)
			if err != nil {
				log.Printf("budget_export: %v", err)
				return ErrorToast(e, http.StatusBadRequest, NoticeInvalidBudget.Message(lang))
			}
			format = f
		}

		in, err := parseBudgetRequest(e.Response, e.Request)
		if err != nil {
			log.Printf("budget_export: invalid request: %v", err)
			return ErrorToast(e, http.StatusBadRequest, NoticeInvalidBudget.Message(lang))
		}
		budget := in.ToBudget()

		saver := responseSaver{w: e.Response, contentType: format.ContentType()}
		artifact, err := services.GenerateBudgetDocument(e.Request.Context(), budget, lang, format, saver)
		if err != nil {
			log.Printf("budget_export: failed to generate %s (%s): %v", format, lang, err)
			if artifact.FileName != "" {
				// The attachment may already be partially written.
				return nil
			}
			return ErrorToast(e, http.StatusInternalServerError, NoticeGenerationFailed.Message(lang))
		}

		if cfg.RecordExports {
			if _, err := services.RecordBudgetExport(app, artifact, budget.Project.ProjectName, "http"); err != nil {
				log.Printf("budget_export: failed to record export %s: %v", artifact.FileName, err)
			}
		}
		return nil
	}
}
