// Package main boots the cookie troop ledger HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/auth"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/balance"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/catalog"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/config"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/directory"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/exchange"
	httpapi "github.com/aishnaga/cookie-ordering-system-2026/internal/http"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/ledger"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/obs"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/order"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("service_starting")
	if cfg.AdminToken == "" {
		obs.Logger.Warn("admin_token_unset", "detail", "admin-gated endpoints will reject every request")
	}

	led := ledger.New()
	cat := catalog.New()
	dir := directory.New()
	orders := order.New(led, cat, dir)
	exchanges := exchange.New(led, cat, dir)
	balances := balance.NewView(orders, dir)
	gate := auth.NewGate(cfg.AdminToken)

	app := httpapi.NewApp(cfg, gate, led, cat, dir, orders, exchanges, balances)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
