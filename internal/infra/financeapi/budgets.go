package financeapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
)

// ListBudgetUsage fetches spent-vs-budgeted rows for all active budgets.
func (c *Client) ListBudgetUsage(ctx context.Context) ([]domain.BudgetUsage, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListBudgetUsage")
	defer span.End()

	var usage []domain.BudgetUsage
	if err := c.call(ctx, "budget-usage", http.MethodGet, "/api/budgets/usage", nil, &usage); err != nil {
		return nil, err
	}
	if usage == nil {
		usage = []domain.BudgetUsage{}
	}
	return usage, nil
}

// CreateBudget creates a budget. The backend upserts per category, so
// posting the same category twice updates in place.
func (c *Client) CreateBudget(ctx context.Context, req *domain.BudgetCreateRequest) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.CreateBudget")
	defer span.End()
	span.SetAttributes(attribute.String("budget.category", req.Category))

	var budget domain.Budget
	if err := c.call(ctx, "budget-create", http.MethodPost, "/api/budgets/", req, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// UpdateBudget replaces the budget's amount, category, and currency.
func (c *Client) UpdateBudget(ctx context.Context, budgetID string, req *domain.BudgetCreateRequest) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdateBudget")
	defer span.End()
	span.SetAttributes(attribute.String("budget.id", budgetID))

	var budget domain.Budget
	if err := c.call(ctx, "budget-update", http.MethodPut, "/api/budgets/"+budgetID, req, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// DeleteBudget removes (deactivates) a budget.
func (c *Client) DeleteBudget(ctx context.Context, budgetID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.DeleteBudget")
	defer span.End()
	span.SetAttributes(attribute.String("budget.id", budgetID))

	return c.call(ctx, "budget-delete", http.MethodDelete, "/api/budgets/"+budgetID, nil, nil)
}
