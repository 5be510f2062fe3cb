// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*entity.GoalWithProgress
}

// ListGoalsUseCase handles listing goals with computed progress.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	output := &ListGoalsOutput{
		Goals: make([]*entity.GoalWithProgress, 0, len(goals)),
	}
	for _, goal := range goals {
		current, err := uc.goalRepo.GetProgress(ctx, goal)
		if err != nil {
			// Progress is best effort per goal; the listing still succeeds.
			slog.Warn("failed to compute goal progress",
				"goalID", goal.ID,
				"error", err,
			)
			current = decimal.Zero
		}
		output.Goals = append(output.Goals, &entity.GoalWithProgress{
			Goal:          goal,
			CurrentAmount: current,
			Percentage:    ProgressPercentage(goal.TargetAmount, current),
		})
	}

	return output, nil
}

// ProgressPercentage returns the progress toward the target in percent.
// A non-positive target yields 0.
func ProgressPercentage(target, current decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	pct, _ := current.Div(target).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}
