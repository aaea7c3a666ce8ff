package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	h := newService(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 10).Handler()
	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestTransactionsAndDashboard(t *testing.T) {
	h := newService(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 10).Handler()

	for _, body := range []string{
		`{"date":"2025-06-01","type":"Income","category":"Income","amount":"50000"}`,
		`{"date":"2025-06-02","type":"Expense","category":"Food","amount":20000}`,
	} {
		if rec := do(t, h, http.MethodPost, "/v1/transactions", body); rec.Code != http.StatusCreated {
			t.Fatalf("POST /v1/transactions = %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := do(t, h, http.MethodGet, "/v1/dashboard?period=all&granularity=monthly", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/dashboard = %d %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	metrics := body["metrics"].(map[string]any)
	if metrics["balance"] != "30000" {
		t.Fatalf("balance = %v, want 30000", metrics["balance"])
	}
	if metrics["days_until_payday"] != float64(15) {
		t.Fatalf("days_until_payday = %v, want 15", metrics["days_until_payday"])
	}
	if body["period"] != "All Time" {
		t.Fatalf("period = %v, want All Time", body["period"])
	}

	rec = do(t, h, http.MethodGet, "/v1/events", "")
	var events []Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
}

func TestValidationErrorsAre400(t *testing.T) {
	h := newService(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 10).Handler()

	tests := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/v1/transactions", `{"date":"2025-06-01","type":"Expense","category":"Food","amount":"0"}`},
		{http.MethodPost, "/v1/transactions", `{"date":"2025-06-01","type":"Refund","category":"Food","amount":"10"}`},
		{http.MethodPost, "/v1/transactions", `{"date":"01/06/2025","type":"Expense","category":"Food","amount":"10"}`},
		{http.MethodPost, "/v1/transactions", `{"bogus":true}`},
		{http.MethodPost, "/v1/fixed-expenses", `{"name":"","amount":"100"}`},
		{http.MethodPost, "/v1/goals", `{"name":"Trip","target":"0","frequency":"Weekly"}`},
		{http.MethodPut, "/v1/plans/June/income", `{"amount":"100"}`},
		{http.MethodGet, "/v1/dashboard?period=decade", ""},
		{http.MethodGet, "/v1/entries?view=hourly", ""},
	}
	for _, tt := range tests {
		rec := do(t, h, tt.method, tt.path, tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s %s %s = %d %s, want 400", tt.method, tt.path, tt.body, rec.Code, rec.Body.String())
		}
		if _, ok := decodeBody(t, rec)["error"]; !ok {
			t.Fatalf("%s %s: body has no error field", tt.method, tt.path)
		}
	}
}

func TestGoalContributions(t *testing.T) {
	h := newService(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 10).Handler()

	rec := do(t, h, http.MethodPost, "/v1/goals", `{"name":"Trip","target":"10000","target_date":"2025-09-18","frequency":"Weekly"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /v1/goals = %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, http.MethodPost, "/v1/goals/Trip/contributions", `{"amount":"2500"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST contributions = %d %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["message"]; got != "Saved ฿2,500.00 to Trip" {
		t.Fatalf("message = %v", got)
	}

	rec = do(t, h, http.MethodGet, "/v1/goals", "")
	var gs []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &gs); err != nil {
		t.Fatal(err)
	}
	if len(gs) != 1 || gs[0]["saved"] != "2500" || gs[0]["required_per_frequency"] != "525" {
		t.Fatalf("goals = %v", gs)
	}

	rec = do(t, h, http.MethodPost, "/v1/goals/Nope/contributions", `{"amount":"10"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown goal = %d, want 404", rec.Code)
	}
}

func TestPlanRoutes(t *testing.T) {
	h := newService(t, time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC), 10).Handler()

	if rec := do(t, h, http.MethodPost, "/v1/fixed-expenses", `{"name":"Rent","amount":"8000"}`); rec.Code != http.StatusCreated {
		t.Fatalf("POST fixed = %d %s", rec.Code, rec.Body.String())
	}
	rec := do(t, h, http.MethodPut, "/v1/plans/2025-06/income", `{"amount":"40000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT income = %d %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["payment_window_open"] != true {
		t.Fatalf("payment_window_open = %v, want true", body["payment_window_open"])
	}
	expenses := body["expenses"].([]any)
	if len(expenses) != 1 {
		t.Fatalf("expenses = %v, want the merged fixed expense", expenses)
	}
	rentID := expenses[0].(map[string]any)["id"].(string)

	rec = do(t, h, http.MethodPost, "/v1/plans/2025-06/payments", `{"ids":["`+rentID+`"]}`)
	if rec.Code != http.StatusOK || decodeBody(t, rec)["paid"] != float64(1) {
		t.Fatalf("POST payments = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/v1/plans/2025-07/payments", `{"ids":["x"]}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("future month payments = %d, want 409", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/v1/plans", "")
	if got := decodeBody(t, rec)["default"]; got != "2025-07" {
		t.Fatalf("default month = %v, want 2025-07", got)
	}
}

func TestExportRoute(t *testing.T) {
	h := newService(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 10).Handler()

	rec := do(t, h, http.MethodGet, "/v1/export/transactions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "budget_data.xlsx") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("empty workbook")
	}

	if rec := do(t, h, http.MethodGet, "/v1/export/receipts", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown table export = %d, want 404", rec.Code)
	}
}
