// Package main is the entrypoint for the tabstats API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/tabstats/internal/analysis"
	"github.com/kiranshivaraju/tabstats/internal/api"
	"github.com/kiranshivaraju/tabstats/internal/api/handler"
	mw "github.com/kiranshivaraju/tabstats/internal/api/middleware"
	"github.com/kiranshivaraju/tabstats/internal/api/response"
	"github.com/kiranshivaraju/tabstats/internal/cache"
	"github.com/kiranshivaraju/tabstats/internal/config"
	"github.com/kiranshivaraju/tabstats/internal/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	slog.SetDefault(logging.New(os.Stdout, "info", "json"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// 1. Load config; fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format))
	slog.Info("config loaded", "env", cfg.Server.Env, "log_level", cfg.Log.Level)

	// 2. Optional Redis for rate limiting
	var (
		counter   cache.Cache
		rateLimit *mw.RateLimit
	)
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected", "requests_per_minute", cfg.RateLimit.RequestsPerMinute)

		counter = redisCache
		rateLimit = mw.NewRateLimit(redisCache, cfg.RateLimit.RequestsPerMinute)
	} else {
		slog.Info("REDIS_URL not set, rate limiting disabled")
	}

	// 3. Build router with dependencies
	deps := api.Dependencies{
		RateLimit:         rateLimit,
		Concurrency:       mw.NewConcurrencyLimit(cfg.Analyze.MaxConcurrent, cfg.Analyze.QueueTimeout),
		CORSOrigins:       cfg.CORS.AllowedOrigins,
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,

		HealthHandler:  healthHandler(counter),
		CatalogHandler: handler.NewCatalogHandler(),
		AnalyzeHandler: handler.NewAnalyzeHandler(analysis.NewDispatcher(), handler.AnalyzeLimits{
			MaxBodyBytes: cfg.Analyze.MaxBodyBytes,
			MaxAnalyses:  cfg.Analyze.MaxAnalyses,
		}),
	}

	router := api.NewRouter(deps)

	// 4. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler reports process health and, when configured, cache connectivity.
func healthHandler(c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"analysis": "ok",
			"cache":    "disabled",
		}

		if c != nil {
			checks["cache"] = "ok"
			if err := c.Ping(r.Context()); err != nil {
				logging.FromContext(r.Context()).Warn("cache ping failed", "error", err)
				checks["cache"] = "degraded"
				response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
					"One or more services degraded", checks)
				return
			}
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
