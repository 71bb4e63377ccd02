package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/summary"
)

// ListGoals returns all savings goals decorated with progress and days
// remaining until the deadline.
func (s *DashboardService) ListGoals(ctx context.Context) ([]domain.GoalView, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListGoals")
	defer span.End()

	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]domain.GoalView, 0, len(goals))
	for _, g := range goals {
		view := domain.GoalView{Goal: g}

		progress, err := summary.Progress(g.CurrentAmount, g.TargetAmount)
		if err != nil {
			s.logger.Error("goal with non-positive target",
				zap.String("goal_id", g.ID),
				zap.Float64("target_amount", g.TargetAmount),
			)
		} else {
			view.Progress = progress
			view.Label = summary.RemainingLabel(progress.Remaining)
		}

		if !g.Deadline.IsZero() {
			// A lapsed deadline reads as 0 days, not negative.
			if days := summary.DaysUntil(g.Deadline, now); days > 0 {
				view.DaysRemaining = days
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// CreateGoal validates and creates a savings goal.
func (s *DashboardService) CreateGoal(ctx context.Context, req *domain.GoalCreateRequest) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.CreateGoal")
	defer span.End()
	span.SetAttributes(attribute.String("goal.name", req.Name))

	if err := s.validateGoal(req); err != nil {
		return nil, err
	}
	return s.store.CreateGoal(ctx, req)
}

// UpdateGoal validates and replaces a goal's name, target, and deadline.
func (s *DashboardService) UpdateGoal(ctx context.Context, goalID string, req *domain.GoalCreateRequest) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.UpdateGoal")
	defer span.End()
	span.SetAttributes(attribute.String("goal.id", goalID))

	if goalID == "" {
		return nil, &domain.ErrValidation{Field: "goal_id", Message: "required"}
	}
	if err := s.validateGoal(req); err != nil {
		return nil, err
	}
	return s.store.UpdateGoal(ctx, goalID, req)
}

func (s *DashboardService) validateGoal(req *domain.GoalCreateRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if req.TargetAmount <= 0 {
		return &domain.ErrValidation{Field: "target_amount", Message: "must be positive"}
	}
	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return &domain.ErrValidation{Field: "deadline", Message: "must be YYYY-MM-DD"}
		}
		if deadline.Before(s.now()) {
			return &domain.ErrValidation{Field: "deadline", Message: "must be in the future"}
		}
	}
	return nil
}

// UpdateGoalProgress sets the saved amount on a goal.
func (s *DashboardService) UpdateGoalProgress(ctx context.Context, goalID string, currentAmount float64) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.UpdateGoalProgress")
	defer span.End()
	span.SetAttributes(attribute.String("goal.id", goalID))

	if goalID == "" {
		return nil, &domain.ErrValidation{Field: "goal_id", Message: "required"}
	}
	if currentAmount < 0 {
		return nil, &domain.ErrValidation{Field: "current_amount", Message: "must not be negative"}
	}

	return s.store.UpdateGoalProgress(ctx, goalID, currentAmount)
}

// DeleteGoal removes a savings goal.
func (s *DashboardService) DeleteGoal(ctx context.Context, goalID string) error {
	ctx, span := tracer.Start(ctx, "DashboardService.DeleteGoal")
	defer span.End()

	if goalID == "" {
		return &domain.ErrValidation{Field: "goal_id", Message: "required"}
	}
	return s.store.DeleteGoal(ctx, goalID)
}
