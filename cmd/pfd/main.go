package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/config"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/handler"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/cache"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/financeapi"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/observability"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/resilience"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/service"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("finance_api_url", cfg.FinanceAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("generate_guard_ttl", cfg.GenerateGuardTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "pf-dashboard-bff")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	overviewCache := cache.New[*domain.SpendOverview](cfg.CacheTTL)
	defer overviewCache.Stop()
	generateGuard := cache.New[bool](cfg.GenerateGuardTTL)
	defer generateGuard.Stop()

	// --- Finance backend client ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := financeapi.New(httpClient, cfg.FinanceAPIURL, resilienceCfg, metrics, logger)

	// --- Services ---
	dashSvc := service.NewDashboardService(store, overviewCache, metrics, logger)
	alertSvc := service.NewAlertService(store, generateGuard, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(cfg, dashSvc, alertSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
