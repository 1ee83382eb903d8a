package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/joust/internal/adapters/http/api"
	"github.com/okian/joust/internal/adapters/http/site"
	"github.com/okian/joust/internal/adapters/http/swagger"
	service "github.com/okian/joust/internal/app"
	"github.com/okian/joust/internal/config"
	"github.com/okian/joust/pkg/logger"
	"github.com/okian/joust/pkg/metrics"
)

// Fixed HTTP server timeouts. Read-header and shutdown timeouts come
// from configuration instead.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not up yet, so initialization errors go to stderr.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logging with the configured encoding, then apply the
	// level, falling back to info on invalid input.
	if err := logger.Init(logger.WithFormat(cfg.Log.Format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.Log.Level); err != nil {
		log.Warn(ctx, "invalid log.level; falling back to info",
			logger.String("level", cfg.Log.Level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the ranking service with configuration options.
	svc := service.New(
		service.WithLogger(log),
		service.WithStoreDriver(cfg.Store.Driver),
		service.WithStoreDSN(cfg.Store.DSN),
		service.WithCatalogCSV(cfg.Catalog.CSV),
		service.WithRetryAttempts(cfg.Engine.RetryAttempts),
		service.WithShareBaseURL(cfg.Engine.ShareBaseURL),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Keep service-derived gauges fresh.
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Landing page and share viewer at /.
	site.Register(ctx, mux)

	// API reference under /api-docs.
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	// Start the HTTP server.
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater periodically refreshes gauges derived
// from service stats.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateServiceMetrics refreshes service gauges. GetStats updates the
// stored-sessions gauge as a side effect; the catalog gauge is pushed
// from the stats snapshot here.
func updateServiceMetrics(svc *service.Service) {
	stats := svc.GetStats()

	if items, ok := stats["catalog_items"].(int); ok {
		metrics.UpdateCatalogItems(items)
	}
}
