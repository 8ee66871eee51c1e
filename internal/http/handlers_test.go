package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/auth"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/balance"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/catalog"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/config"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/directory"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/exchange"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/ledger"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/obs"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/order"
)

const adminToken = "test-admin-token"

type testApp struct {
	app       *App
	mux       http.Handler
	thinMints string
	famA      string
	famB      string
}

// setupApp builds the full stack with a seeded catalog, two families and
// 10 Thin Mints on hand centrally.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	obs.InitLogger()
	cfg := config.Config{HTTPAddr: ":0", AdminToken: adminToken}

	led := ledger.New()
	cat := catalog.New()
	dir := directory.New()
	orders := order.New(led, cat, dir)
	exchanges := exchange.New(led, cat, dir)
	balances := balance.NewView(orders, dir)
	gate := auth.NewGate(cfg.AdminToken)

	tm, err := cat.Create("Thin Mints", decimal.RequireFromString("6.00"))
	require.NoError(t, err)
	famA, err := dir.Create("Abara", "")
	require.NoError(t, err)
	famB, err := dir.Create("Baker", "")
	require.NoError(t, err)
	require.NoError(t, led.Credit(model.CentralPool(), tm.ID, model.StockOnHand, 10, model.ReasonCouncilDelivery))

	app := NewApp(cfg, gate, led, cat, dir, orders, exchanges, balances)
	return &testApp{
		app:       app,
		mux:       NewRouter(app),
		thinMints: tm.ID,
		famA:      famA.ID,
		famB:      famB.ID,
	}
}

func (ta *testApp) do(t *testing.T, method, path, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if admin {
		r.Header.Set("X-Admin-Token", adminToken)
	}
	w := httptest.NewRecorder()
	ta.mux.ServeHTTP(w, r)
	return w
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func TestHealthzOK(t *testing.T) {
	ta := setupApp(t)
	rr := ta.do(t, http.MethodGet, "/healthz", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestOpenAPIServed(t *testing.T) {
	ta := setupApp(t)
	rr := ta.do(t, http.MethodGet, "/openapi.yaml", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "openapi:")
}

func TestDocsServed(t *testing.T) {
	ta := setupApp(t)
	rr := ta.do(t, http.MethodGet, "/docs", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "swagger-ui")
}

func TestRequestIDEchoed(t *testing.T) {
	ta := setupApp(t)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set("X-Request-Id", "req-42")
	w := httptest.NewRecorder()
	ta.mux.ServeHTTP(w, r)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-Id"))
}

func TestAdminGateRejectsMissingToken(t *testing.T) {
	ta := setupApp(t)
	gated := []struct{ method, path string }{
		{http.MethodPost, "/cookies"},
		{http.MethodPost, "/families"},
		{http.MethodPost, "/inventory/central"},
		{http.MethodPost, "/inventory/adjust"},
		{http.MethodGet, "/inventory/transactions"},
		{http.MethodGet, "/orders"},
		{http.MethodPut, "/orders/x/status"},
		{http.MethodPost, "/orders/x/payment"},
		{http.MethodPut, "/orders/x/payments"},
		{http.MethodDelete, "/orders/x"},
		{http.MethodGet, "/exchanges"},
		{http.MethodPut, "/exchanges/x/resolve"},
	}
	for _, g := range gated {
		rr := ta.do(t, g.method, g.path, "", false)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", g.method, g.path)
	}
}

func TestAdminGateRejectsWrongToken(t *testing.T) {
	ta := setupApp(t)
	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.Header.Set("X-Admin-Token", "wrong")
	w := httptest.NewRecorder()
	ta.mux.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCookieAndDuplicate(t *testing.T) {
	ta := setupApp(t)
	rr := ta.do(t, http.MethodPost, "/cookies", `{"name":"Samoas","price_per_box":"6.00"}`, true)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ta.do(t, http.MethodPost, "/cookies", `{"name":"Samoas","price_per_box":"7.00"}`, true)
	require.Equal(t, http.StatusConflict, rr.Code)
	e := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "constraint_violation", e["error"])
}

func TestBodyShapeRejectedBeforeLedger(t *testing.T) {
	ta := setupApp(t)
	rr := ta.do(t, http.MethodPost, "/orders", `{"family_id":"x","items":[],"extra":true}`, false)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{}"))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	ta.mux.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestCreateOrderHappyPath(t *testing.T) {
	ta := setupApp(t)
	body := fmt.Sprintf(`{"family_id":%q,"items":[{"cookie_variety_id":%q,"quantity":2}]}`, ta.famA, ta.thinMints)
	rr := ta.do(t, http.MethodPost, "/orders", body, false)
	require.Equal(t, http.StatusCreated, rr.Code)

	o := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "pending", o["status"])
	assert.Equal(t, "12", o["amount_owed"])

	// central stock untouched until pickup
	rows := decodeBody[[]model.PoolQuantity](t, ta.do(t, http.MethodGet, "/inventory/central", "", false))
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].Quantity)
}

func TestCreateOrderInsufficientDetail(t *testing.T) {
	ta := setupApp(t)
	body := fmt.Sprintf(`{"family_id":%q,"items":[{"cookie_variety_id":%q,"quantity":20}]}`, ta.famA, ta.thinMints)
	rr := ta.do(t, http.MethodPost, "/orders", body, false)
	require.Equal(t, http.StatusConflict, rr.Code)

	var e struct {
		Error      string            `json:"error"`
		Shortfalls []model.Shortfall `json:"insufficient_items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	assert.Equal(t, "insufficient_inventory", e.Error)
	require.Len(t, e.Shortfalls, 1)
	assert.Equal(t, 20, e.Shortfalls[0].Requested)
	assert.Equal(t, 10, e.Shortfalls[0].Available)
}

func TestOrderStatusFlowOverHTTP(t *testing.T) {
	ta := setupApp(t)
	body := fmt.Sprintf(`{"family_id":%q,"items":[{"cookie_variety_id":%q,"quantity":3}]}`, ta.famA, ta.thinMints)
	created := decodeBody[map[string]any](t, ta.do(t, http.MethodPost, "/orders", body, false))
	id := created["id"].(string)

	// skipping straight to picked_up is rejected
	rr := ta.do(t, http.MethodPut, "/orders/"+id+"/status", `{"status":"picked_up"}`, true)
	require.Equal(t, http.StatusConflict, rr.Code)
	e := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "invalid_transition", e["error"])

	for _, next := range []string{"approved", "ready_for_pickup", "picked_up"} {
		rr = ta.do(t, http.MethodPut, "/orders/"+id+"/status", fmt.Sprintf(`{"status":%q}`, next), true)
		require.Equal(t, http.StatusOK, rr.Code, "transition to %s: %s", next, rr.Body.String())
	}

	rows := decodeBody[[]model.PoolQuantity](t, ta.do(t, http.MethodGet, "/inventory/family/"+ta.famA, "", false))
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Quantity)
}

func TestRecordPaymentOverHTTP(t *testing.T) {
	ta := setupApp(t)
	body := fmt.Sprintf(`{"family_id":%q,"items":[{"cookie_variety_id":%q,"quantity":2}]}`, ta.famA, ta.thinMints)
	created := decodeBody[map[string]any](t, ta.do(t, http.MethodPost, "/orders", body, false))
	id := created["id"].(string)

	rr := ta.do(t, http.MethodPost, "/orders/"+id+"/payment", `{"payment_type":"cash","amount":"10","notes":"dropoff"}`, true)
	require.Equal(t, http.StatusOK, rr.Code)
	o := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "10", o["cash_paid"])
	assert.Equal(t, "2", o["balance"])

	rr = ta.do(t, http.MethodPost, "/orders/"+id+"/payment", `{"payment_type":"cash","amount":"0"}`, true)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	e := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "invalid_amount", e["error"])
}

func TestExchangeFlowOverHTTP(t *testing.T) {
	ta := setupApp(t)
	// give family B stock via the self-report endpoint
	body := fmt.Sprintf(`{"items":[{"cookie_variety_id":%q,"quantity":5}]}`, ta.thinMints)
	rr := ta.do(t, http.MethodPut, "/inventory/family/"+ta.famB, body, false)
	require.Equal(t, http.StatusOK, rr.Code)

	exBody := fmt.Sprintf(`{"requesting_family_id":%q,"providing_family_id":%q,"cookie_variety_id":%q,"quantity":5}`, ta.famA, ta.famB, ta.thinMints)
	created := decodeBody[model.Exchange](t, ta.do(t, http.MethodPost, "/exchanges", exBody, false))
	require.Equal(t, model.ExchangeRequested, created.Status)

	rr = ta.do(t, http.MethodPut, "/exchanges/"+created.ID+"/resolve", `{"decision":"approve"}`, true)
	require.Equal(t, http.StatusOK, rr.Code)
	resolved := decodeBody[model.Exchange](t, rr)
	assert.Equal(t, model.ExchangeCompleted, resolved.Status)

	// second approve must not transfer again
	rr = ta.do(t, http.MethodPut, "/exchanges/"+created.ID+"/resolve", `{"decision":"approve"}`, true)
	require.Equal(t, http.StatusConflict, rr.Code)

	holdings := decodeBody[[]model.FamilyHolding](t, ta.do(t, http.MethodGet, "/inventory/all-families", "", false))
	require.Len(t, holdings, 1)
	assert.Equal(t, ta.famA, holdings[0].FamilyID)
	assert.Equal(t, 5, holdings[0].Quantity)
}

func TestFamilyBalanceOverHTTP(t *testing.T) {
	ta := setupApp(t)
	body := fmt.Sprintf(`{"family_id":%q,"items":[{"cookie_variety_id":%q,"quantity":2}]}`, ta.famA, ta.thinMints)
	created := decodeBody[map[string]any](t, ta.do(t, http.MethodPost, "/orders", body, false))
	id := created["id"].(string)
	rr := ta.do(t, http.MethodPut, "/orders/"+id+"/status", `{"status":"approved"}`, true)
	require.Equal(t, http.StatusOK, rr.Code)

	b := decodeBody[map[string]any](t, ta.do(t, http.MethodGet, "/families/"+ta.famA+"/balance", "", false))
	assert.Equal(t, "12", b["owed"])
	assert.Equal(t, "12", b["balance"])
}

func TestGetOrderNotFound(t *testing.T) {
	ta := setupApp(t)
	rr := ta.do(t, http.MethodGet, "/orders/unknown", "", false)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsHandler(t *testing.T) {
	ta := setupApp(t)
	rr := ta.do(t, http.MethodGet, "/debug/metrics", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	m := decodeBody[map[string]any](t, rr)
	assert.Contains(t, m, "orders")
	assert.Contains(t, m, "inventory_transactions")
}
