// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgetly/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database. Returns
	// domainerror.ErrBudgetAlreadyExists when a budget already exists for the
	// same (user, category, month, year).
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserAndPeriod retrieves all budgets for a user in (month, year),
	// with categories.
	FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.BudgetWithCategory, error)

	// FindByPeriod retrieves all budgets across users for (month, year).
	// Used by the alert evaluator tick.
	FindByPeriod(ctx context.Context, month, year int) ([]*entity.Budget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete soft-deletes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkAlertSent sets one threshold's sent flag with a conditional
	// single-row update (flag must still be false). Returns
	// domainerror.ErrStaleBudgetUpdate when another instance already set it.
	MarkAlertSent(ctx context.Context, budgetID uuid.UUID, threshold entity.AlertThreshold) error
}
