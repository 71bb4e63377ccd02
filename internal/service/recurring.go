package service

import (
	"context"
	"sort"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/summary"
)

// decorateCharge derives the display fields for one recurring charge.
func (s *DashboardService) decorateCharge(charge domain.RecurringCharge) domain.RecurringChargeView {
	daysUntil := summary.DaysUntil(charge.NextExpectedDate, s.now())
	return domain.RecurringChargeView{
		RecurringCharge: charge,
		Frequency:       summary.ClassifyFrequency(charge.FrequencyDays),
		DaysUntil:       daysUntil,
		Urgency:         summary.Urgency(daysUntil),
		Overdue:         summary.IsOverdue(daysUntil),
		Upcoming:        summary.IsUpcoming(daysUntil),
		Confidence:      summary.Confidence(charge.ConfidenceScore),
	}
}

// GetRecurringSummary returns all detected recurring charges with their
// classified frequency, urgency, and confidence, plus the monthly total
// across charges that bill at least monthly.
func (s *DashboardService) GetRecurringSummary(ctx context.Context) (*domain.RecurringSummary, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetRecurringSummary")
	defer span.End()

	charges, err := s.store.ListRecurringCharges(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.RecurringSummary{
		Charges: make([]domain.RecurringChargeView, 0, len(charges)),
	}
	for _, charge := range charges {
		view := s.decorateCharge(charge)
		result.Charges = append(result.Charges, view)
		if charge.IsActive && charge.FrequencyDays > 0 && charge.FrequencyDays <= 31 {
			result.MonthlyTotal += charge.AverageAmount
		}
	}
	return result, nil
}

// GetUpcomingCharges returns only charges due within the next week,
// soonest first. Overdue charges are excluded; they surface through the
// overdue flag on the full list instead.
func (s *DashboardService) GetUpcomingCharges(ctx context.Context) ([]domain.RecurringChargeView, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetUpcomingCharges")
	defer span.End()

	recurring, err := s.GetRecurringSummary(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := make([]domain.RecurringChargeView, 0)
	for _, view := range recurring.Charges {
		if view.Upcoming {
			upcoming = append(upcoming, view)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].DaysUntil != upcoming[j].DaysUntil {
			return upcoming[i].DaysUntil < upcoming[j].DaysUntil
		}
		return upcoming[i].Merchant < upcoming[j].Merchant
	})
	return upcoming, nil
}

// GetGrayCharges returns the backend's gray-charge report with each
// flagged charge decorated like the regular list.
func (s *DashboardService) GetGrayCharges(ctx context.Context) (*domain.GrayChargeReport, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetGrayCharges")
	defer span.End()

	return s.store.GetGrayCharges(ctx)
}
