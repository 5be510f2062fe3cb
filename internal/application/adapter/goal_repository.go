// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUserID retrieves all goals for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// FindUnnotified retrieves all goals across users with AlertOnAchieved set
	// and AchievedNotified still false. Used by the alert evaluator tick.
	FindUnnotified(ctx context.Context) ([]*entity.Goal, error)

	// GetProgress returns the accumulated amount counting towards the goal.
	GetProgress(ctx context.Context, goal *entity.Goal) (decimal.Decimal, error)

	// Update updates an existing goal in the database.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete soft-deletes a goal from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkAchievedNotified sets the one-shot achievement flag with a
	// conditional single-row update (flag must still be false). Returns
	// domainerror.ErrGoalNotFound when the condition matched no row.
	MarkAchievedNotified(ctx context.Context, goalID uuid.UUID) error
}
