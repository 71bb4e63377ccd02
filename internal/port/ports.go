// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
)

// FinanceStore defines all data operations against the finance backend.
// Implemented by the REST client adapter (or any other data source).
type FinanceStore interface {
	// Spending
	GetSpendOverview(ctx context.Context) (*domain.SpendOverview, error)

	// Budgets
	ListBudgetUsage(ctx context.Context) ([]domain.BudgetUsage, error)
	CreateBudget(ctx context.Context, req *domain.BudgetCreateRequest) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, budgetID string, req *domain.BudgetCreateRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error

	// Goals
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	CreateGoal(ctx context.Context, req *domain.GoalCreateRequest) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, goalID string, req *domain.GoalCreateRequest) (*domain.Goal, error)
	UpdateGoalProgress(ctx context.Context, goalID string, currentAmount float64) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error

	// Recurring charges
	ListRecurringCharges(ctx context.Context) ([]domain.RecurringCharge, error)
	GetGrayCharges(ctx context.Context) (*domain.GrayChargeReport, error)

	// Alerts
	ListAlerts(ctx context.Context, unreadOnly bool, limit int) ([]domain.Alert, error)
	MarkAlertsRead(ctx context.Context, ids []string) error
	GenerateAlerts(ctx context.Context) (*domain.GenerateResult, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
