package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"budgetsummary/services"
)

func TestNoticeMessage(t *testing.T) {
	notices := []Notice{NoticeGenerationFailed, NoticeInvalidBudget, NoticeRowsSkipped, NoticeNoFile, NoticeBadSheet}
	for _, n := range notices {
		es := n.Message(services.LangES)
		en := n.Message(services.LangEN)
		if es == "" || en == "" {
			t.Errorf("%s: missing message (es=%q en=%q)", n, es, en)
		}
		if es == en {
			t.Errorf("%s: expected distinct translations", n)
		}
		if got := n.Message("fr"); got != es {
			t.Errorf("%s: unknown language should fall back to Spanish, got %q", n, got)
		}
	}
}

func TestSetToast_MergesTrigger(t *testing.T) {
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(nil, httptest.NewRequest(http.MethodPost, "/", nil), rec)
	rec.Header().Set("HX-Trigger", `{"budgetSaved":true}`)

	SetToast(e, "success", "ok")

	var trigger map[string]any
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger); err != nil {
		t.Fatalf("HX-Trigger is not JSON: %v", err)
	}
	if trigger["budgetSaved"] != true {
		t.Error("existing trigger was dropped")
	}
	toast, ok := trigger["showToast"].(map[string]any)
	if !ok || toast["message"] != "ok" || toast["type"] != "success" {
		t.Errorf("unexpected showToast payload %v", trigger["showToast"])
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a flash cookie")
	}
}

func TestErrorToast(t *testing.T) {
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(nil, httptest.NewRequest(http.MethodPost, "/", nil), rec)

	if err := ErrorToast(e, http.StatusBadRequest, "bad"); err != nil {
		t.Fatalf("ErrorToast returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap: none")
	}
	if rec.Body.String() != "bad" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
