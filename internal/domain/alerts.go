package domain

import "time"

// ============================================================
// Alerts
// ============================================================

// Alert types generated by the finance backend.
const (
	AlertGoalProgress         = "GOAL_PROGRESS"
	AlertBudgetWarning        = "BUDGET_WARNING"
	AlertAnomaly              = "ANOMALY"
	AlertSummary              = "SUMMARY"
	AlertSubscriptionReminder = "SUBSCRIPTION_REMINDER"
	AlertGrayCharge           = "GRAY_CHARGE"
)

// Alert is a backend-generated notification. Created server-side, mutated
// client-side only via mark-as-read (one-way unread->read), never deleted
// by the client. Metadata is passed through opaquely for the UI pills.
type Alert struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsRead      bool           `json:"is_read"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// AlertListView is the view-ready alert list. UnreadCount is always
// derived from the list, never cached independently, so the badge can
// never diverge from the rows.
type AlertListView struct {
	Alerts      []Alert  `json:"alerts"`
	UnreadCount int      `json:"unread_count"`
	Selected    []string `json:"selected"`
}

// MarkReadRequest is the batch mark-as-read payload.
type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

// GenerateResult is the backend's alert-generation summary.
type GenerateResult struct {
	Message     string `json:"message"`
	TotalAlerts int    `json:"total_alerts"`
}
