// Package service provides the business logic layer (use cases).
// DashboardService derives view-ready summaries from finance backend
// data; AlertService owns the alert read/selection lifecycle.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/auth"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/observability"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/port"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/summary"
)

var tracer = otel.Tracer("service/dashboard")

// DashboardService orchestrates spending, budget, goal, and recurring
// charge views over the finance backend.
type DashboardService struct {
	store         port.FinanceStore
	overviewCache port.Cache[*domain.SpendOverview]
	metrics       *observability.Metrics
	logger        *zap.Logger

	now func() time.Time
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(store port.FinanceStore, overviewCache port.Cache[*domain.SpendOverview], metrics *observability.Metrics, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:         store,
		overviewCache: overviewCache,
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
	}
}

// GetSpendOverview returns the user's aggregated spend picture, cached
// per user for the configured TTL.
func (s *DashboardService) GetSpendOverview(ctx context.Context) (*domain.SpendOverview, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetSpendOverview")
	defer span.End()

	userID, _ := auth.UserIDFrom(ctx)
	key := "overview:" + userID

	if cached, ok := s.overviewCache.Get(key); ok {
		s.metrics.IncrCacheHit("overview")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("overview")

	overview, err := s.store.GetSpendOverview(ctx)
	if err != nil {
		return nil, err
	}

	s.overviewCache.Set(key, overview)
	return overview, nil
}

// GetBreakdown returns the category breakdown in the requested mode.
// Overview mode carries the major slices plus the rolled-up Other;
// other-detail mode carries the minor categories with their shares.
func (s *DashboardService) GetBreakdown(ctx context.Context, mode domain.BreakdownMode) (*domain.BreakdownView, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetBreakdown")
	defer span.End()

	overview, err := s.GetSpendOverview(ctx)
	if err != nil {
		return nil, err
	}

	buckets := summary.Bucket(overview.Categories)

	view := &domain.BreakdownView{
		Mode:  mode,
		Total: buckets.Total(),
	}
	switch mode {
	case domain.BreakdownOtherDetail:
		view.OtherDetail = summary.DrillIn(buckets)
	default:
		view.Mode = domain.BreakdownOverview
		view.Major = buckets.Major
	}
	return view, nil
}

// GetDashboard assembles the combined landing-page payload. The five
// backend fetches run concurrently; any failure fails the whole call.
func (s *DashboardService) GetDashboard(ctx context.Context, alerts *AlertService) (*domain.Dashboard, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetDashboard")
	defer span.End()

	var dash domain.Dashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		breakdown, err := s.GetBreakdown(gctx, domain.BreakdownOverview)
		if err != nil {
			return err
		}
		overview, err := s.GetSpendOverview(gctx)
		if err != nil {
			return err
		}
		dash.Overview = overview
		dash.Breakdown = *breakdown
		return nil
	})
	g.Go(func() error {
		budgets, err := s.ListBudgets(gctx)
		if err != nil {
			return err
		}
		dash.Budgets = budgets
		return nil
	})
	g.Go(func() error {
		goals, err := s.ListGoals(gctx)
		if err != nil {
			return err
		}
		dash.Goals = goals
		return nil
	})
	g.Go(func() error {
		recurring, err := s.GetRecurringSummary(gctx)
		if err != nil {
			return err
		}
		dash.Recurring = *recurring
		return nil
	})
	g.Go(func() error {
		view, err := alerts.List(gctx, false, 20)
		if err != nil {
			return err
		}
		dash.Alerts = view
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dash, nil
}
