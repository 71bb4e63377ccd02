package domain

import (
	"time"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/summary"
)

// ============================================================
// Recurring charges (subscriptions)
// ============================================================

// RecurringCharge is a backend-detected recurring payment pattern.
// NextExpectedDate is always >= LastChargeDate and is computed by the
// backend; the client never mutates it.
type RecurringCharge struct {
	ID               string    `json:"id"`
	Merchant         string    `json:"merchant"`
	AverageAmount    float64   `json:"average_amount"`
	FrequencyDays    int       `json:"frequency_days"`
	LastChargeDate   time.Time `json:"last_charge_date"`
	NextExpectedDate time.Time `json:"next_expected_date"`
	Category         string    `json:"category,omitempty"`
	IsActive         bool      `json:"is_active"`
	ConfidenceScore  float64   `json:"confidence_score"` // [0,1]
}

// RecurringChargeView decorates a charge with its classified frequency,
// due-date urgency and confidence tier for display.
type RecurringChargeView struct {
	RecurringCharge
	Frequency  string                 `json:"frequency"`
	DaysUntil  int                    `json:"days_until"`
	Urgency    summary.UrgencyTier    `json:"urgency"`
	Overdue    bool                   `json:"overdue"`
	Upcoming   bool                   `json:"upcoming"`
	Confidence summary.ConfidenceTier `json:"confidence"`
}

// RecurringSummary is the list view plus the monthly total across charges
// that bill at least monthly.
type RecurringSummary struct {
	Charges      []RecurringChargeView `json:"charges"`
	MonthlyTotal float64               `json:"monthly_total"`
}

// GrayCharge is a recurring charge flagged as possibly forgotten or
// underused, with the backend's opaque reasons.
type GrayCharge struct {
	RecurringCharge
	Reasons []string `json:"reasons"`
}

// GrayChargeReport is the backend's gray-charge detection result.
type GrayChargeReport struct {
	GrayCharges             []GrayCharge `json:"gray_charges"`
	Total                   int          `json:"total"`
	PotentialMonthlySavings float64      `json:"potential_monthly_savings"`
}
