package httpapi

import (
	"expvar"
	"net/http"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /cookies", app.listCookiesHandler)
	mux.HandleFunc("POST /cookies", app.createCookieHandler)
	mux.HandleFunc("PUT /cookies/{id}", app.updateCookieHandler)

	mux.HandleFunc("GET /families", app.listFamiliesHandler)
	mux.HandleFunc("POST /families", app.createFamilyHandler)
	mux.HandleFunc("PUT /families/{id}", app.updateFamilyHandler)
	mux.HandleFunc("DELETE /families/{id}", app.deleteFamilyHandler)
	mux.HandleFunc("GET /families/{id}/balance", app.familyBalanceHandler)

	mux.HandleFunc("GET /inventory/central", app.centralInventoryHandler)
	mux.HandleFunc("POST /inventory/central", app.addCentralStockHandler)
	mux.HandleFunc("GET /inventory/family/{id}", app.familyInventoryHandler)
	mux.HandleFunc("PUT /inventory/family/{id}", app.setFamilyInventoryHandler)
	mux.HandleFunc("GET /inventory/all-families", app.allFamilyInventoryHandler)
	mux.HandleFunc("POST /inventory/adjust", app.adjustInventoryHandler)
	mux.HandleFunc("GET /inventory/transactions", app.inventoryTransactionsHandler)

	mux.HandleFunc("GET /orders", app.listOrdersHandler)
	mux.HandleFunc("POST /orders", app.createOrderHandler)
	mux.HandleFunc("GET /orders/family/{id}", app.familyOrdersHandler)
	mux.HandleFunc("GET /orders/{id}", app.getOrderHandler)
	mux.HandleFunc("PUT /orders/{id}", app.editOrderItemsHandler)
	mux.HandleFunc("DELETE /orders/{id}", app.deleteOrderHandler)
	mux.HandleFunc("PUT /orders/{id}/status", app.orderStatusHandler)
	mux.HandleFunc("POST /orders/{id}/payment", app.recordPaymentHandler)
	mux.HandleFunc("PUT /orders/{id}/payments", app.setPaymentsHandler)

	mux.HandleFunc("GET /exchanges", app.listExchangesHandler)
	mux.HandleFunc("POST /exchanges", app.createExchangeHandler)
	mux.HandleFunc("GET /exchanges/family/{id}", app.familyExchangesHandler)
	mux.HandleFunc("PUT /exchanges/{id}/resolve", app.resolveExchangeHandler)

	mux.HandleFunc("GET /healthz", app.healthHandler)
	mux.HandleFunc("GET /debug/metrics", app.metricsHandler)
	mux.Handle("GET /debug/vars", expvar.Handler())
	mux.HandleFunc("GET /openapi.yaml", app.openapiHandler)
	mux.HandleFunc("GET /docs", app.docsHandler)

	return WithRequestID(WithLogging(mux))
}
