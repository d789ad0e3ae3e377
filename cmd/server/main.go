package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hss-gateway/internal/catalog"
	"hss-gateway/internal/keygen"
	"hss-gateway/internal/platform/config"
	"hss-gateway/internal/platform/httpserver"
	"hss-gateway/internal/platform/logger"
	"hss-gateway/internal/platform/middleware"
	"hss-gateway/internal/registry"
	"hss-gateway/internal/subscriber/builder"
	"hss-gateway/internal/subscriber/handler"
	"hss-gateway/internal/subscriber/metrics"
	"hss-gateway/internal/subscriber/service"
)

const shutdownTimeout = 10 * time.Second

// main wires the dependencies and keeps the server lifecycle small.
// Business logic lives in the internal subscriber packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	keys := keygen.New()
	cat := catalog.Default()
	b := builder.New(keys, cat)

	client := registry.NewClient(cfg.Registry, log)
	gateway := registry.NewGateway(client, log)
	m := metrics.New(prometheus.DefaultRegisterer)

	svc := service.New(gateway, b, keys, cat, log, m)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.TransactionID)
	router.Use(middleware.Logger(log))

	handler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", "addr", cfg.Addr, "registry", cfg.Registry.EndpointURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
