package financeapi

import (
	"context"
	"net/http"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
)

// wireOverview maps the backend's transactions overview payload.
type wireOverview struct {
	TotalIncome   float64            `json:"total_income"`
	TotalExpenses float64            `json:"total_expenses"`
	NetSavings    float64            `json:"net_savings"`
	Categories    map[string]float64 `json:"categories"`
	MonthlyTrend  []wireTrendPoint   `json:"monthly_trend"`
}

type wireTrendPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// GetSpendOverview fetches the aggregated spend picture for the
// authenticated user.
func (c *Client) GetSpendOverview(ctx context.Context) (*domain.SpendOverview, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GetSpendOverview")
	defer span.End()

	var w wireOverview
	if err := c.call(ctx, "overview", http.MethodGet, "/api/transactions/overview", nil, &w); err != nil {
		return nil, err
	}

	categories := w.Categories
	if categories == nil {
		categories = map[string]float64{}
	}

	trend := make([]domain.MonthlyTrend, 0, len(w.MonthlyTrend))
	for _, p := range w.MonthlyTrend {
		trend = append(trend, domain.MonthlyTrend{
			Month:    p.Month,
			Income:   p.Income,
			Expenses: p.Expenses,
		})
	}

	return &domain.SpendOverview{
		TotalIncome:   w.TotalIncome,
		TotalExpenses: w.TotalExpenses,
		NetSavings:    w.NetSavings,
		Categories:    categories,
		MonthlyTrend:  trend,
	}, nil
}
