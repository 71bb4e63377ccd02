package financeapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
)

// wireGoal maps the backend's goal payload. Dates arrive as strings in
// either RFC 3339 or plain YYYY-MM-DD form.
type wireGoal struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      string  `json:"deadline"`
	Description   string  `json:"description"`
	IsActive      bool    `json:"is_active"`
}

func (w wireGoal) toDomain() domain.Goal {
	return domain.Goal{
		ID:            w.ID,
		Name:          w.Name,
		TargetAmount:  w.TargetAmount,
		CurrentAmount: w.CurrentAmount,
		Deadline:      parseDate(w.Deadline),
		Description:   w.Description,
		IsActive:      w.IsActive,
	}
}

// parseDate accepts RFC 3339 or YYYY-MM-DD. A malformed date yields the
// zero time rather than failing the whole list.
func parseDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// ListGoals fetches all savings goals for the authenticated user.
func (c *Client) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListGoals")
	defer span.End()

	var rows []wireGoal
	if err := c.call(ctx, "goals", http.MethodGet, "/api/goals/", nil, &rows); err != nil {
		return nil, err
	}

	goals := make([]domain.Goal, 0, len(rows))
	for _, r := range rows {
		goals = append(goals, r.toDomain())
	}
	return goals, nil
}

// CreateGoal creates a savings goal.
func (c *Client) CreateGoal(ctx context.Context, req *domain.GoalCreateRequest) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.CreateGoal")
	defer span.End()
	span.SetAttributes(attribute.String("goal.name", req.Name))

	var row wireGoal
	if err := c.call(ctx, "goal-create", http.MethodPost, "/api/goals/", req, &row); err != nil {
		return nil, err
	}
	goal := row.toDomain()
	return &goal, nil
}

// UpdateGoal replaces the goal's name, target, deadline, and description.
func (c *Client) UpdateGoal(ctx context.Context, goalID string, req *domain.GoalCreateRequest) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdateGoal")
	defer span.End()
	span.SetAttributes(attribute.String("goal.id", goalID))

	var row wireGoal
	if err := c.call(ctx, "goal-update", http.MethodPut, "/api/goals/"+goalID, req, &row); err != nil {
		return nil, err
	}
	goal := row.toDomain()
	return &goal, nil
}

// UpdateGoalProgress adds to the goal's saved amount. The backend takes
// the amount as a query parameter and answers with the updated totals,
// not the full goal record.
func (c *Client) UpdateGoalProgress(ctx context.Context, goalID string, amount float64) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdateGoalProgress")
	defer span.End()
	span.SetAttributes(attribute.String("goal.id", goalID))

	path := "/api/goals/" + goalID + "/progress?amount=" + strconv.FormatFloat(amount, 'f', -1, 64)

	var resp struct {
		Message       string  `json:"message"`
		CurrentAmount float64 `json:"current_amount"`
		TargetAmount  float64 `json:"target_amount"`
	}
	if err := c.call(ctx, "goal-progress", http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &domain.Goal{
		ID:            goalID,
		CurrentAmount: resp.CurrentAmount,
		TargetAmount:  resp.TargetAmount,
	}, nil
}

// DeleteGoal removes a savings goal.
func (c *Client) DeleteGoal(ctx context.Context, goalID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.DeleteGoal")
	defer span.End()
	span.SetAttributes(attribute.String("goal.id", goalID))

	return c.call(ctx, "goal-delete", http.MethodDelete, "/api/goals/"+goalID, nil, nil)
}
