package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"budgetsummary/services"
	"budgetsummary/testhelpers"
)

func newExportRequest(format, body string, lang services.Language) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/budget/export/"+format, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("format", format)
	return withLanguage(req, lang)
}

func TestHandleBudgetExport_Docx(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBudgetExport(app, testConfig())

	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, newExportRequest("docx", testBudgetJSON, services.LangES), rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "Cocina_Nueva_es.docx") {
		t.Errorf("unexpected Content-Disposition %q", disposition)
	}
	if got := rec.Header().Get("Content-Type"); got != services.FormatDocx.ContentType() {
		t.Errorf("Content-Type = %q", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body is not a zip package")
	}

	if testhelpers.CountExports(t, app) != 1 {
		t.Fatal("expected the export to be recorded")
	}
	entries, err := services.ListBudgetExports(app, 1)
	if err != nil {
		t.Fatalf("ListBudgetExports() error = %v", err)
	}
	if entries[0].GrandTotal != 686.75 || entries[0].Source != "http" {
		t.Errorf("recorded entry = %+v", entries[0])
	}
}

func TestHandleBudgetExport_Formats(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testConfig()
	cfg.RecordExports = false
	handler := HandleBudgetExport(app, cfg)

	tests := []struct {
		format   string
		lang     services.Language
		fileName string
		magic    string
	}{
		{"pdf", services.LangEN, "Cocina_Nueva_en.pdf", "%PDF"},
		{"xlsx", services.LangES, "Cocina_Nueva_es.xlsx", "PK"},
		{"DOCX", services.LangEN, "Cocina_Nueva_en.docx", "PK"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, newExportRequest(tt.format, testBudgetJSON, tt.lang), rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			if !strings.Contains(rec.Header().Get("Content-Disposition"), tt.fileName) {
				t.Errorf("expected %s in %q", tt.fileName, rec.Header().Get("Content-Disposition"))
			}
			if !strings.HasPrefix(rec.Body.String(), tt.magic) {
				t.Errorf("body does not start with %q", tt.magic)
			}
		})
	}

	if testhelpers.CountExports(t, app) != 0 {
		t.Error("exports should not be recorded when recording is disabled")
	}
}

func TestHandleBudgetExport_BadRequests(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBudgetExport(app, testConfig())

	tests := []struct {
		name   string
		format string
		body   string
	}{
		{"unknown format", "odt", testBudgetJSON},
		{"malformed json", "docx", `{"project":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, newExportRequest(tt.format, tt.body, services.LangEN), rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Header().Get("HX-Trigger"), "showToast") {
				t.Error("expected an error toast")
			}
			if rec.Header().Get("Content-Disposition") != "" {
				t.Error("no attachment should be sent")
			}
		})
	}

	if testhelpers.CountExports(t, app) != 0 {
		t.Error("failed requests should not be recorded")
	}
}

func TestHandleBudgetExport_GenerationFailure(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBudgetExport(app, testConfig())

	// Finite inputs whose line total overflows.
	body := `{"materials": [{"description": "x", "quantity": 1e308, "unitPrice": 1e308}]}`
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, newExportRequest("docx", body, services.LangEN), rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), NoticeGenerationFailed.Message(services.LangEN)) {
		t.Errorf("expected the generic failure message, got %q", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "unitPrice") {
		t.Error("internal details should not reach the user")
	}
	if testhelpers.CountExports(t, app) != 0 {
		t.Error("failed generation should not be recorded")
	}
}

func TestHandleBudgetExport_FormBody(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBudgetExport(app, testConfig())

	form := url.Values{}
	form.Set("projectName", "  Baño / Patio ")
	form.Set("workers[0].name", "Luis")
	form.Set("workers[0].role", "Principal")
	form.Set("materials[0].description", "Cemento")
	form.Set("materials[0].quantity", "2")
	form.Set("materials[0].unit", "bolsa")
	form.Set("materials[0].unitPrice", "10")

	req := httptest.NewRequest(http.MethodPost, "/budget/export/xlsx", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("format", "xlsx")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, withLanguage(req, services.LangES), rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	entries, err := services.ListBudgetExports(app, 1)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one recorded export, got %v (err %v)", entries, err)
	}
	if entries[0].FileName != "Baño_-_Patio_es.xlsx" {
		t.Errorf("file name = %q", entries[0].FileName)
	}
	if entries[0].GrandTotal != 20 {
		t.Errorf("grand total = %v, want 20", entries[0].GrandTotal)
	}
}

func TestResponseSaver(t *testing.T) {
	rec := httptest.NewRecorder()
	s := responseSaver{w: rec, contentType: "application/pdf"}

	if err := s.Save(t.Context(), "Cocina Nueva_es.pdf", []byte("%PDF-1.4")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := rec.Header().Get("Content-Length"); got != "8" {
		t.Errorf("Content-Length = %q, want 8", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="Cocina Nueva_es.pdf"` {
		t.Errorf("Content-Disposition = %q", got)
	}
}
