package service

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/alertview"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/auth"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/cache"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/observability"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/port"
)

var alertTracer = otel.Tracer("service/alerts")

// AlertService owns the alert list, read state, and selection set per
// user. The backend is the sole source of truth for alert contents;
// every mutation goes through it and ends in a refetch.
type AlertService struct {
	store   port.FinanceStore
	metrics *observability.Metrics
	logger  *zap.Logger

	// generateGuard debounces backend generation runs. Its cache TTL is
	// the guard window.
	generateGuard *cache.InMemory[bool]

	mu     sync.Mutex
	states map[string]*alertview.State
}

// NewAlertService creates an alert service. guard should be a cache
// whose TTL is the minimum interval between generation runs.
func NewAlertService(store port.FinanceStore, guard *cache.InMemory[bool], metrics *observability.Metrics, logger *zap.Logger) *AlertService {
	return &AlertService{
		store:         store,
		metrics:       metrics,
		logger:        logger,
		generateGuard: guard,
		states:        make(map[string]*alertview.State),
	}
}

// stateFor returns the per-user view state, creating it on first use.
// Callers must hold s.mu.
func (s *AlertService) stateFor(ctx context.Context) *alertview.State {
	userID, _ := auth.UserIDFrom(ctx)
	st, ok := s.states[userID]
	if !ok {
		st = alertview.NewState()
		s.states[userID] = st
	}
	return st
}

// List fetches alerts from the backend and replaces the local list.
// A full reload clears the selection set.
func (s *AlertService) List(ctx context.Context, unreadOnly bool, limit int) (domain.AlertListView, error) {
	ctx, span := alertTracer.Start(ctx, "AlertService.List")
	defer span.End()
	span.SetAttributes(attribute.Bool("alerts.unread_only", unreadOnly))

	alerts, err := s.store.ListAlerts(ctx, unreadOnly, limit)
	if err != nil {
		return domain.AlertListView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(ctx)
	st.Replace(alerts)
	return st.View(), nil
}

// ToggleSelect flips one alert in or out of the selection set. Purely
// local; no backend call.
func (s *AlertService) ToggleSelect(ctx context.Context, alertID string) (domain.AlertListView, error) {
	_, span := alertTracer.Start(ctx, "AlertService.ToggleSelect")
	defer span.End()

	if alertID == "" {
		return domain.AlertListView{}, &domain.ErrValidation{Field: "alert_id", Message: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(ctx)
	st.ToggleSelect(alertID)
	return st.View(), nil
}

// MarkRead marks the given alerts read on the backend, then refetches.
// With no explicit ids the current selection is submitted. The backend
// write is all-or-nothing; on failure local state is left untouched.
// Only the submitted ids leave the selection set, so an id selected
// while the request was in flight survives.
func (s *AlertService) MarkRead(ctx context.Context, ids []string) (domain.AlertListView, error) {
	ctx, span := alertTracer.Start(ctx, "AlertService.MarkRead")
	defer span.End()

	if len(ids) == 0 {
		s.mu.Lock()
		ids = s.stateFor(ctx).Selected()
		s.mu.Unlock()
	}
	if len(ids) == 0 {
		return domain.AlertListView{}, &domain.ErrValidation{Field: "ids", Message: "nothing selected"}
	}
	span.SetAttributes(attribute.Int("alerts.count", len(ids)))

	if err := s.store.MarkAlertsRead(ctx, ids); err != nil {
		return domain.AlertListView{}, err
	}
	s.metrics.AddAlertsMarked(len(ids))

	alerts, err := s.store.ListAlerts(ctx, false, 0)
	if err != nil {
		return domain.AlertListView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(ctx)
	st.SyncAfterMutation(alerts, ids)
	return st.View(), nil
}

// Generate triggers a backend alert generation run, then refetches the
// list. Runs inside the guard window are skipped, so a double-click
// cannot fan out into duplicate generation passes.
func (s *AlertService) Generate(ctx context.Context) (*domain.GenerateResult, domain.AlertListView, error) {
	ctx, span := alertTracer.Start(ctx, "AlertService.Generate")
	defer span.End()

	userID, _ := auth.UserIDFrom(ctx)
	guardKey := "generate:" + userID

	var result *domain.GenerateResult
	if _, active := s.generateGuard.Get(guardKey); active {
		s.logger.Debug("alert generation debounced", zap.String("user_id", userID))
		result = &domain.GenerateResult{Message: "generation already triggered recently"}
	} else {
		generated, err := s.store.GenerateAlerts(ctx)
		if err != nil {
			return nil, domain.AlertListView{}, err
		}
		s.generateGuard.Set(guardKey, true)
		s.metrics.IncrAlertGenerate()
		result = generated
	}

	view, err := s.List(ctx, false, 0)
	if err != nil {
		return nil, domain.AlertListView{}, err
	}
	return result, view, nil
}
