package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/auth"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/balance"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/catalog"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/config"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/directory"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/exchange"
	httpopenapi "github.com/aishnaga/cookie-ordering-system-2026/internal/http/openapi"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/ledger"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/order"
)

// App bundles the services behind the HTTP surface.
type App struct {
	Cfg       config.Config
	Gate      *auth.Gate
	Ledger    *ledger.Ledger
	Catalog   *catalog.Service
	Directory *directory.Service
	Orders    *order.Service
	Exchanges *exchange.Service
	Balances  *balance.View
	started   time.Time
}

// NewApp wires the HTTP layer to the services.
func NewApp(cfg config.Config, gate *auth.Gate, l *ledger.Ledger, c *catalog.Service, d *directory.Service, o *order.Service, e *exchange.Service, b *balance.View) *App {
	return &App{
		Cfg:       cfg,
		Gate:      gate,
		Ledger:    l,
		Catalog:   c,
		Directory: d,
		Orders:    o,
		Exchanges: e,
		Balances:  b,
		started:   time.Now(),
	}
}

// authContext builds the request's capability claim from the admin token
// header. The session state of the old system is gone on purpose: the
// claim travels with the request.
func (a *App) authContext(r *http.Request) auth.Context {
	return a.Gate.ContextForToken(r.Header.Get("X-Admin-Token"))
}

// requireAdmin enforces the admin capability, writing the error response
// itself. Returns false when the caller must stop.
func (a *App) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := a.Gate.Check(a.authContext(r)); err != nil {
		WriteDomainError(w, err)
		return false
	}
	return true
}

// decodeJSON enforces the JSON content type and strict field checking,
// rejecting shape mismatches before any service call.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	orders, _ := a.Orders.List("")
	m := map[string]any{
		"orders":                 len(orders),
		"exchanges":              len(a.Exchanges.List()),
		"inventory_transactions": len(a.Ledger.Transactions()),
		"uptime_sec":             time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}

// orderView decorates an order with its derived money values.
type orderView struct {
	model.Order
	AmountOwedTotal decimal.Decimal `json:"amount_owed"`
	AmountPaidTotal decimal.Decimal `json:"amount_paid"`
	BalanceDue      decimal.Decimal `json:"balance"`
}

func viewOrder(o model.Order) orderView {
	return orderView{
		Order:           o,
		AmountOwedTotal: o.AmountOwed(),
		AmountPaidTotal: o.AmountPaid(),
		BalanceDue:      o.Balance(),
	}
}

func viewOrders(orders []model.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, viewOrder(o))
	}
	return out
}
