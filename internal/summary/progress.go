package summary

import (
	"fmt"
	"math"
)

// ErrInvalidTarget indicates a progress computation against a non-positive
// target. Percent-of-zero is undefined, so this fails loudly instead of
// coercing to 0% or 100%.
type ErrInvalidTarget struct {
	Target float64
}

func (e *ErrInvalidTarget) Error() string {
	return fmt.Sprintf("invalid target amount: %.2f (must be positive)", e.Target)
}

// ProgressResult carries the derived progress values for a goal or budget.
// Percent is clamped to 100 for bar widths; Remaining is never clamped so
// overspend stays visible as a negative value.
type ProgressResult struct {
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
	IsOver    bool    `json:"is_over"`
}

// Progress derives percent-complete, remaining amount and over/under status
// from a current/target pair. The same arithmetic applies to savings goals
// and monthly budgets; only the label vocabulary differs at presentation
// time. Pure and idempotent.
func Progress(current, target float64) (ProgressResult, error) {
	if target <= 0 {
		return ProgressResult{}, &ErrInvalidTarget{Target: target}
	}
	remaining := target - current
	return ProgressResult{
		Percent:   math.Min(current/target*100, 100),
		Remaining: remaining,
		IsOver:    remaining < 0,
	}, nil
}

// RemainingLabel renders the display rule for a remaining amount:
// abs(remaining) plus "left" when non-negative, "over" otherwise.
// Display only; the signed Remaining value is what callers store.
func RemainingLabel(remaining float64) string {
	if remaining >= 0 {
		return fmt.Sprintf("$%.2f left", remaining)
	}
	return fmt.Sprintf("$%.2f over", -remaining)
}
