package domain

import (
	"time"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/summary"
)

// ============================================================
// Savings goals
// ============================================================

// Goal is a savings goal owned by the finance backend.
type Goal struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Deadline      time.Time `json:"deadline"`
	Description   string    `json:"description,omitempty"`
	IsActive      bool      `json:"is_active"`
}

// GoalCreateRequest is the payload for creating or updating a goal.
type GoalCreateRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline"` // YYYY-MM-DD
	Description  string  `json:"description,omitempty"`
}

// GoalView decorates a goal with derived progress and days remaining
// until the deadline.
type GoalView struct {
	Goal
	Progress      summary.ProgressResult `json:"progress"`
	Label         string                 `json:"label"`
	DaysRemaining int                    `json:"days_remaining"`
}
