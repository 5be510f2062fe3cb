// Package recurring contains recurring-transaction use cases and the
// occurrence schedule logic consumed by the generator.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetly/backend/internal/application/adapter"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// DeleteRecurringInput represents the input for deleting a recurring definition.
type DeleteRecurringInput struct {
	UserID      uuid.UUID
	RecurringID uuid.UUID
}

// DeleteRecurringUseCase handles recurring definition deletion logic.
// Transactions already generated from the definition are kept.
type DeleteRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewDeleteRecurringUseCase creates a new DeleteRecurringUseCase instance.
func NewDeleteRecurringUseCase(recurringRepo adapter.RecurringRepository) *DeleteRecurringUseCase {
	return &DeleteRecurringUseCase{recurringRepo: recurringRepo}
}

// Execute performs the recurring definition deletion.
func (uc *DeleteRecurringUseCase) Execute(ctx context.Context, input DeleteRecurringInput) error {
	recurring, err := uc.recurringRepo.FindByID(ctx, input.RecurringID)
	if err != nil {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringNotFound,
			"recurring transaction not found",
			domainerror.ErrRecurringNotFound,
		)
	}
	if recurring.UserID != input.UserID {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeUnauthorizedRecurringAccess,
			"recurring transaction does not belong to user",
			domainerror.ErrUnauthorizedRecurringAccess,
		)
	}

	if err := uc.recurringRepo.Delete(ctx, input.RecurringID); err != nil {
		return fmt.Errorf("failed to delete recurring transaction: %w", err)
	}
	return nil
}
