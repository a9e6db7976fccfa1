package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/commercekit/monext-connector/internal/config"
	"github.com/commercekit/monext-connector/internal/interfaces/rest/handlers"
	"github.com/commercekit/monext-connector/internal/interfaces/rest/middleware"
	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/monext"
	"github.com/commercekit/monext-connector/internal/payments"
	"github.com/commercekit/monext-connector/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting monext connector",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ledgerClient := ledger.NewClient(cfg.Ledger)
	monextClient := monext.NewClient(cfg.Monext, logger)

	paymentService := payments.NewService(ledgerClient, monextClient, cfg.Monext, cfg.URLs, logger)

	h := handlers.NewHandlers(paymentService, cfg.HealthCheck.Timeout, logger)

	router := chi.NewRouter()
	h.Routes(router)
	router.Handle("/metrics", promhttp.Handler())

	handler := middleware.Recovery(logger)(router)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthMonitor := worker.NewHealthMonitor(
		monextClient,
		config.ParseStoreScoped(cfg.Monext.Environment).Default(),
		cfg.HealthCheck.Interval,
		cfg.HealthCheck.Timeout,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go healthMonitor.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
