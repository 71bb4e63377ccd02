package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/service"
)

// ============================================================
// Alerts
// ============================================================

func listAlertsHandler(svc *service.AlertService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/alerts")
		defer span.End()

		unreadOnly := r.URL.Query().Get("unread_only") == "true"
		limit := parseLimit(r, 50)

		view, err := svc.List(ctx, unreadOnly, limit)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func toggleAlertSelectHandler(svc *service.AlertService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/alerts/{alertId}/select")
		defer span.End()

		view, err := svc.ToggleSelect(ctx, chi.URLParam(r, "alertId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// markAlertsReadHandler marks the posted ids read; with an empty body or
// empty id list, the current selection is submitted instead.
func markAlertsReadHandler(svc *service.AlertService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/alerts/mark-read")
		defer span.End()

		var req domain.MarkReadRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		view, err := svc.MarkRead(ctx, req.IDs)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func generateAlertsHandler(svc *service.AlertService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/alerts/generate")
		defer span.End()

		result, view, err := svc.Generate(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Result *domain.GenerateResult `json:"result"`
			Alerts domain.AlertListView   `json:"alerts"`
		}{Result: result, Alerts: view})
	}
}
