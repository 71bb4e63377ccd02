package financeapi

import (
	"context"
	"net/http"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
)

// wireRecurring maps the backend's detected subscription payload.
type wireRecurring struct {
	ID               string  `json:"id"`
	Merchant         string  `json:"merchant"`
	AverageAmount    float64 `json:"average_amount"`
	FrequencyDays    int     `json:"frequency_days"`
	LastChargeDate   string  `json:"last_charge_date"`
	NextExpectedDate string  `json:"next_expected_date"`
	Category         string  `json:"category"`
	IsActive         bool    `json:"is_active"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

func (w wireRecurring) toDomain() domain.RecurringCharge {
	return domain.RecurringCharge{
		ID:               w.ID,
		Merchant:         w.Merchant,
		AverageAmount:    w.AverageAmount,
		FrequencyDays:    w.FrequencyDays,
		LastChargeDate:   parseDate(w.LastChargeDate),
		NextExpectedDate: parseDate(w.NextExpectedDate),
		Category:         w.Category,
		IsActive:         w.IsActive,
		ConfidenceScore:  w.ConfidenceScore,
	}
}

// ListRecurringCharges fetches backend-detected recurring payments.
func (c *Client) ListRecurringCharges(ctx context.Context) ([]domain.RecurringCharge, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListRecurringCharges")
	defer span.End()

	var rows []wireRecurring
	if err := c.call(ctx, "subscriptions", http.MethodGet, "/api/subscriptions", nil, &rows); err != nil {
		return nil, err
	}

	charges := make([]domain.RecurringCharge, 0, len(rows))
	for _, r := range rows {
		charges = append(charges, r.toDomain())
	}
	return charges, nil
}

// wireGrayReport maps the backend's gray-charge detection result.
type wireGrayReport struct {
	GrayCharges []struct {
		wireRecurring
		Reasons []string `json:"reasons"`
	} `json:"gray_charges"`
	Total                   int     `json:"total"`
	PotentialMonthlySavings float64 `json:"potential_monthly_savings"`
}

// GetGrayCharges fetches subscriptions flagged as possibly forgotten.
func (c *Client) GetGrayCharges(ctx context.Context) (*domain.GrayChargeReport, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GetGrayCharges")
	defer span.End()

	var w wireGrayReport
	if err := c.call(ctx, "gray-charges", http.MethodGet, "/api/subscriptions/gray-charges", nil, &w); err != nil {
		return nil, err
	}

	report := &domain.GrayChargeReport{
		GrayCharges:             make([]domain.GrayCharge, 0, len(w.GrayCharges)),
		Total:                   w.Total,
		PotentialMonthlySavings: w.PotentialMonthlySavings,
	}
	for _, g := range w.GrayCharges {
		report.GrayCharges = append(report.GrayCharges, domain.GrayCharge{
			RecurringCharge: g.toDomain(),
			Reasons:         g.Reasons,
		})
	}
	return report, nil
}
