package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/services"
)

// Notice names a user-facing message. Messages are generic: details go to
// the log, never to the user.
type Notice string

const (
	NoticeGenerationFailed Notice = "generationFailed"
	NoticeInvalidBudget    Notice = "invalidBudget"
	NoticeRowsSkipped      Notice = "rowsSkipped"
	NoticeNoFile           Notice = "noFile"
	NoticeBadSheet         Notice = "badSheet"
)

var notices = map[Notice]map[services.Language]string{
	NoticeGenerationFailed: {
		services.LangES: "Error al generar el documento. Inténtelo de nuevo.",
		services.LangEN: "Error generating the document. Please try again.",
	},
	NoticeInvalidBudget: {
		services.LangES: "Los datos del presupuesto no son válidos.",
		services.LangEN: "The budget data is not valid.",
	},
	NoticeRowsSkipped: {
		services.LangES: "Algunas filas no se importaron.",
		services.LangEN: "Some rows were not imported.",
	},
	NoticeNoFile: {
		services.LangES: "Seleccione un archivo .csv o .xlsx.",
		services.LangEN: "Please select a .csv or .xlsx file.",
	},
	NoticeBadSheet: {
		services.LangES: "No se pudo leer la hoja de materiales.",
		services.LangEN: "The material sheet could not be read.",
	},
}

// Message returns the notice in lang, falling back to Spanish.
func (n Notice) Message(lang services.Language) string {
	if msg, ok := notices[n][lang]; ok {
		return msg
	}
	return notices[n][services.LangES]
}

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX, merging into any existing HX-Trigger JSON object.
// It also sets a flash cookie so toasts survive regular (non-HTMX) redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = payload

	data, err := json.Marshal(trigger)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	cookieVal, err := json.Marshal(payload)
	if err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "flash_toast",
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // JS needs to read it
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
