package domain

import "github.com/mlehnert/pf-dashboard-bff-go/internal/summary"

// ============================================================
// Budgets
// ============================================================

// Budget is a monthly spending budget, optionally scoped to a category.
type Budget struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Category      string  `json:"category,omitempty"` // empty = overall budget
	AmountMonthly float64 `json:"amount_monthly"`
	Currency      string  `json:"currency"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// BudgetUsage is the backend's spent-vs-budgeted report for one budget.
type BudgetUsage struct {
	BudgetID        string  `json:"budget_id"`
	Category        string  `json:"category,omitempty"`
	BudgetedAmount  float64 `json:"budgeted_amount"`
	SpentAmount     float64 `json:"spent_amount"`
	PercentUsed     float64 `json:"percent_used"`
	RemainingAmount float64 `json:"remaining_amount"`
}

// BudgetCreateRequest is the payload for creating or updating a budget.
type BudgetCreateRequest struct {
	Category      string  `json:"category,omitempty"`
	AmountMonthly float64 `json:"amount_monthly"`
	Currency      string  `json:"currency,omitempty"`
}

// BudgetView decorates a usage row with the derived progress values and
// the display label ("$50.00 over" / "$120.00 left").
type BudgetView struct {
	BudgetUsage
	Progress summary.ProgressResult `json:"progress"`
	Label    string                 `json:"label"`
}
