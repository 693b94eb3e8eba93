package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"budgetsummary/services"
)

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		acceptLanguage string
		fallback       services.Language
		want           services.Language
	}{
		{"query wins", "?lang=en", "es-ES,es;q=0.9", services.LangES, services.LangEN},
		{"query is case insensitive", "?lang=ES", "", services.LangEN, services.LangES},
		{"unknown query falls through to header", "?lang=fr", "en-US,en;q=0.8", services.LangES, services.LangEN},
		{"header regional variant", "", "es-MX", services.LangEN, services.LangES},
		{"header weighted", "", "de;q=0.9,en;q=0.5", services.LangES, services.LangEN},
		{"unsupported header uses fallback", "", "ja", services.LangEN, services.LangEN},
		{"nothing uses fallback", "", "", services.LangEN, services.LangEN},
		{"malformed header uses fallback", "", ";;;q=abc", services.LangES, services.LangES},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/budget/labels"+tt.query, nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			if got := ResolveLanguage(req, tt.fallback); got != tt.want {
				t.Errorf("ResolveLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetLanguage_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetLanguage(req); got != services.LangES {
		t.Errorf("GetLanguage() = %q, want es", got)
	}
	if got := GetLanguage(withLanguage(req, services.LangEN)); got != services.LangEN {
		t.Errorf("GetLanguage() = %q, want en", got)
	}
}

func TestLanguageMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/budget/units?lang=en", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(nil, req, rec)

	if err := LanguageMiddleware(services.LangES)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if got := GetLanguage(e.Request); got != services.LangEN {
		t.Errorf("stored language = %q, want en", got)
	}
	if rec.Header().Get("Vary") != "Accept-Language" {
		t.Errorf("expected Vary: Accept-Language, got %q", rec.Header().Get("Vary"))
	}
}
