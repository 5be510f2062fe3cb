// Package recurring contains recurring-transaction use cases and the
// occurrence schedule logic consumed by the generator.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
)

// ListRecurringInput represents the input for listing recurring definitions.
type ListRecurringInput struct {
	UserID uuid.UUID
}

// ListRecurringOutput represents the output of listing recurring definitions.
type ListRecurringOutput struct {
	Recurring []*entity.RecurringWithCategory
}

// ListRecurringUseCase handles listing recurring definitions.
type ListRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewListRecurringUseCase creates a new ListRecurringUseCase instance.
func NewListRecurringUseCase(recurringRepo adapter.RecurringRepository) *ListRecurringUseCase {
	return &ListRecurringUseCase{recurringRepo: recurringRepo}
}

// Execute lists all recurring definitions for the user.
func (uc *ListRecurringUseCase) Execute(ctx context.Context, input ListRecurringInput) (*ListRecurringOutput, error) {
	recurring, err := uc.recurringRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}
	return &ListRecurringOutput{Recurring: recurring}, nil
}
