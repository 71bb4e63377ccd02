package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/summary"
)

// ListBudgets returns all budget usage rows decorated with progress
// toward the monthly limit.
func (s *DashboardService) ListBudgets(ctx context.Context) ([]domain.BudgetView, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListBudgets")
	defer span.End()

	usage, err := s.store.ListBudgetUsage(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]domain.BudgetView, 0, len(usage))
	for _, u := range usage {
		view := domain.BudgetView{BudgetUsage: u}

		progress, err := summary.Progress(u.SpentAmount, u.BudgetedAmount)
		if err != nil {
			// A non-positive limit is backend data corruption; surface
			// the row undecorated rather than hiding it.
			s.logger.Error("budget with non-positive limit",
				zap.String("budget_id", u.BudgetID),
				zap.Float64("budgeted_amount", u.BudgetedAmount),
			)
		} else {
			view.Progress = progress
			view.Label = summary.RemainingLabel(progress.Remaining)
		}
		views = append(views, view)
	}
	return views, nil
}

// ListBudgetUsage returns the backend's raw spent-vs-budgeted rows
// without decoration.
func (s *DashboardService) ListBudgetUsage(ctx context.Context) ([]domain.BudgetUsage, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListBudgetUsage")
	defer span.End()

	return s.store.ListBudgetUsage(ctx)
}

// CreateBudget validates and creates a budget. Validation failures
// never reach the network.
func (s *DashboardService) CreateBudget(ctx context.Context, req *domain.BudgetCreateRequest) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.CreateBudget")
	defer span.End()
	span.SetAttributes(attribute.String("budget.category", req.Category))

	if err := validateBudget(req); err != nil {
		return nil, err
	}
	return s.store.CreateBudget(ctx, req)
}

// UpdateBudget validates and replaces a budget's settings.
func (s *DashboardService) UpdateBudget(ctx context.Context, budgetID string, req *domain.BudgetCreateRequest) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.UpdateBudget")
	defer span.End()
	span.SetAttributes(attribute.String("budget.id", budgetID))

	if budgetID == "" {
		return nil, &domain.ErrValidation{Field: "budget_id", Message: "required"}
	}
	if err := validateBudget(req); err != nil {
		return nil, err
	}
	return s.store.UpdateBudget(ctx, budgetID, req)
}

func validateBudget(req *domain.BudgetCreateRequest) error {
	if req.AmountMonthly <= 0 {
		return &domain.ErrValidation{Field: "amount_monthly", Message: "must be positive"}
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Currency == "" {
		req.Currency = "USD"
	}
	return nil
}

// DeleteBudget removes a budget.
func (s *DashboardService) DeleteBudget(ctx context.Context, budgetID string) error {
	ctx, span := tracer.Start(ctx, "DashboardService.DeleteBudget")
	defer span.End()

	if budgetID == "" {
		return &domain.ErrValidation{Field: "budget_id", Message: "required"}
	}
	return s.store.DeleteBudget(ctx, budgetID)
}
