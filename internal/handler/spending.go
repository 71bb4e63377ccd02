package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/service"
)

// ============================================================
// Spending
// ============================================================

func spendOverviewHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/spending/overview")
		defer span.End()

		overview, err := svc.GetSpendOverview(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}

// spendBreakdownHandler serves both breakdown views. ?view=other selects
// the drilled-in Other detail; anything else yields the overview.
func spendBreakdownHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/spending/breakdown")
		defer span.End()

		mode := domain.BreakdownOverview
		if r.URL.Query().Get("view") == "other" {
			mode = domain.BreakdownOtherDetail
		}

		view, err := svc.GetBreakdown(ctx, mode)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func dashboardHandler(svc *service.DashboardService, alertSvc *service.AlertService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		dash, err := svc.GetDashboard(ctx, alertSvc)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, dash)
	}
}
