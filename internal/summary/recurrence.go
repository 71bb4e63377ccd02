package summary

import (
	"fmt"
	"math"
	"time"
)

// Frequency labels for recurring charges, bucketed by inclusive upper
// bounds on the charge interval in days.
const (
	FrequencyWeekly     = "Weekly"
	FrequencyBiweekly   = "Biweekly"
	FrequencyMonthly    = "Monthly"
	FrequencyQuarterly  = "Quarterly"
	FrequencySemiannual = "Semiannual"
	FrequencyAnnual     = "Annual"
)

// ClassifyFrequency maps a charge interval in days to a human label.
// Intervals beyond a year fall back to the verbatim "Every N days" form.
func ClassifyFrequency(days int) string {
	switch {
	case days <= 7:
		return FrequencyWeekly
	case days <= 14:
		return FrequencyBiweekly
	case days <= 31:
		return FrequencyMonthly
	case days <= 92:
		return FrequencyQuarterly
	case days <= 186:
		return FrequencySemiannual
	case days <= 366:
		return FrequencyAnnual
	default:
		return fmt.Sprintf("Every %d days", days)
	}
}

// UrgencyTier classifies how close a recurring charge's next expected date
// is to now.
type UrgencyTier string

const (
	UrgencyDueToday    UrgencyTier = "due_today"
	UrgencyDueTomorrow UrgencyTier = "due_tomorrow"
	UrgencyDueSoon     UrgencyTier = "due_soon"
	UrgencyScheduled   UrgencyTier = "scheduled"
)

// DaysUntil returns the whole days between now and the next expected date,
// rounded up. Negative values mean the charge is overdue and are preserved,
// never clamped, so overdue charges stay distinct from future ones.
func DaysUntil(next, now time.Time) int {
	return int(math.Ceil(next.Sub(now).Hours() / 24))
}

// Urgency maps a daysUntil value to its tier. Overdue charges fall into
// Scheduled here; callers flag them separately via IsOverdue.
func Urgency(daysUntil int) UrgencyTier {
	switch {
	case daysUntil == 0:
		return UrgencyDueToday
	case daysUntil == 1:
		return UrgencyDueTomorrow
	case daysUntil > 1 && daysUntil <= 3:
		return UrgencyDueSoon
	default:
		return UrgencyScheduled
	}
}

// IsOverdue reports whether the next expected date has already passed.
func IsOverdue(daysUntil int) bool {
	return daysUntil < 0
}

// IsUpcoming reports whether a charge belongs in the "upcoming" view:
// due within the next 7 days, today included. Independent of the urgency
// tiers but computed from the same DaysUntil value.
func IsUpcoming(daysUntil int) bool {
	return daysUntil >= 0 && daysUntil <= 7
}

// ConfidenceTier colors a backend-supplied confidence score for display.
// Never used for filtering or sorting.
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "high"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceLow    ConfidenceTier = "low"
)

// Confidence maps a score in [0,1] to its display tier.
func Confidence(score float64) ConfidenceTier {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
