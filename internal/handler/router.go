package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/config"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/observability"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/service"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// Everything under /v1 requires a bearer token; operational endpoints
// stay open.
func NewRouter(cfg *config.Config, dashSvc *service.DashboardService, alertSvc *service.AlertService, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(dashSvc, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 (authenticated) ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(JWTAuthMiddleware(cfg.JWTSecret, logger))

		// Combined landing-page payload
		r.Get("/dashboard", dashboardHandler(dashSvc, alertSvc, logger))

		// Spending
		r.Get("/spending/overview", spendOverviewHandler(dashSvc, logger))
		r.Get("/spending/breakdown", spendBreakdownHandler(dashSvc, logger))

		// Budgets
		r.Get("/budgets", listBudgetsHandler(dashSvc, logger))
		r.Get("/budgets/usage", budgetUsageHandler(dashSvc, logger))
		r.Post("/budgets", createBudgetHandler(dashSvc, logger))
		r.Put("/budgets/{budgetId}", updateBudgetHandler(dashSvc, logger))
		r.Delete("/budgets/{budgetId}", deleteBudgetHandler(dashSvc, logger))

		// Savings goals
		r.Get("/goals", listGoalsHandler(dashSvc, logger))
		r.Post("/goals", createGoalHandler(dashSvc, logger))
		r.Put("/goals/{goalId}", updateGoalHandler(dashSvc, logger))
		r.Post("/goals/{goalId}/progress", updateGoalProgressHandler(dashSvc, logger))
		r.Delete("/goals/{goalId}", deleteGoalHandler(dashSvc, logger))

		// Recurring charges
		r.Get("/recurring", recurringListHandler(dashSvc, logger))
		r.Get("/recurring/upcoming", recurringUpcomingHandler(dashSvc, logger))
		r.Get("/recurring/gray-charges", grayChargesHandler(dashSvc, logger))

		// Alerts
		r.Get("/alerts", listAlertsHandler(alertSvc, logger))
		r.Post("/alerts/{alertId}/select", toggleAlertSelectHandler(alertSvc, logger))
		r.Post("/alerts/mark-read", markAlertsReadHandler(alertSvc, logger))
		r.Post("/alerts/generate", generateAlertsHandler(alertSvc, logger))

		// Metrics snapshot
		r.Get("/metrics/summary", metricsSummaryHandler(metrics))
	})

	return r
}

// ============================================================
// Operational handlers
// ============================================================

// healthzHandler probes the finance backend with a cheap read and
// reports per-dependency status.
func healthzHandler(dashSvc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "pfd-bff", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		start := time.Now()
		_, err := dashSvc.GetSpendOverview(ctx)
		latency := time.Since(start).Milliseconds()
		status := "healthy"
		var unauthorized *domain.ErrUnauthorized
		if err != nil && !errors.As(err, &unauthorized) {
			// A 401 still proves the backend is up; anything else is a
			// real dependency problem.
			status = "degraded"
			logger.Warn("health probe against finance backend failed", zap.Error(err))
		}
		services = append(services, domain.ServiceHealth{
			Name: "finance-api", Status: status, LatencyMs: latency, LastChecked: now,
		})

		overall := "healthy"
		for _, s := range services {
			if s.Status != "healthy" {
				overall = "degraded"
			}
		}

		code := http.StatusOK
		if overall != "healthy" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, domain.HealthStatus{Status: overall, Services: services})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func metricsSummaryHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetSummary())
	}
}
