package domain

import "github.com/mlehnert/pf-dashboard-bff-go/internal/summary"

// ============================================================
// Spending overview
// ============================================================

// SpendOverview is the aggregated spend picture returned by the finance
// backend. Ephemeral: recomputed on every fetch, never persisted here.
type SpendOverview struct {
	TotalIncome   float64            `json:"total_income"`
	TotalExpenses float64            `json:"total_expenses"`
	NetSavings    float64            `json:"net_savings"`
	Categories    map[string]float64 `json:"categories"`
	MonthlyTrend  []MonthlyTrend     `json:"monthly_trend"`
}

// MonthlyTrend is one month of income vs expenses.
type MonthlyTrend struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// ============================================================
// Breakdown view (presentation adapter)
// ============================================================

// BreakdownMode is the explicit view state of the category breakdown:
// the bucketed overview, or the expanded "Other" detail.
type BreakdownMode string

const (
	BreakdownOverview    BreakdownMode = "overview"
	BreakdownOtherDetail BreakdownMode = "other_detail"
)

// BreakdownView is the view-ready category breakdown. In overview mode
// Major carries the pie slices; in other_detail mode OtherDetail carries
// the drilled-in minor categories with their two percentages.
type BreakdownView struct {
	Mode        BreakdownMode                `json:"mode"`
	Total       float64                      `json:"total"`
	Major       []summary.BucketedCategory   `json:"major"`
	OtherDetail []summary.DrillEntry         `json:"other_detail,omitempty"`
}
