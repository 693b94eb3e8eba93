package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/config"
	"budgetsummary/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withLanguage stores lang in the request context the way
// LanguageMiddleware does.
func withLanguage(req *http.Request, lang services.Language) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), LanguageKey, lang))
}

// testConfig returns the default configuration.
func testConfig() config.Config {
	cfg, err := config.LoadFrom(map[string]string{})
	if err != nil {
		panic(err)
	}
	return cfg
}

const testBudgetJSON = `{
  "project": {"projectName": "Cocina Nueva", "beneficiary": "María", "approvalDate": "2024-03-15"},
  "workers": [{"name": "Luis", "role": "Principal"}, {"name": "Pedro", "role": "Ayudante"}],
  "materials": [{"description": "Cemento", "quantity": 3, "unit": "bolsa", "unitPrice": 10.5}, {"description": "Arena", "quantity": 1, "unit": "m3", "unitPrice": 5}],
  "labor": [{"description": "Colado", "cost": 100}, {"description": "Repello", "cost": 50.25}],
  "diet": {"workersCount": 4, "days": 5, "costPerDay": 25}
}`
