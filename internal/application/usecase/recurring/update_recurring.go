// Package recurring contains recurring-transaction use cases and the
// occurrence schedule logic consumed by the generator.
package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// UpdateRecurringInput represents the input for updating a recurring
// definition. The schedule shape (frequency, day-of-month, day-of-week,
// start date) is immutable after creation; deactivation and a new definition
// replace a changed schedule so the watermark stays meaningful.
type UpdateRecurringInput struct {
	UserID      uuid.UUID
	RecurringID uuid.UUID

	Description *string
	Amount      *decimal.Decimal
	EndDate     *time.Time
	ClearEnd    bool
	IsActive    *bool
}

// UpdateRecurringOutput represents the output of updating a recurring definition.
type UpdateRecurringOutput struct {
	Recurring *entity.RecurringTransaction
}

// UpdateRecurringUseCase handles recurring definition update logic,
// including deactivation.
type UpdateRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewUpdateRecurringUseCase creates a new UpdateRecurringUseCase instance.
func NewUpdateRecurringUseCase(recurringRepo adapter.RecurringRepository) *UpdateRecurringUseCase {
	return &UpdateRecurringUseCase{recurringRepo: recurringRepo}
}

// Execute performs the recurring definition update.
func (uc *UpdateRecurringUseCase) Execute(ctx context.Context, input UpdateRecurringInput) (*UpdateRecurringOutput, error) {
	recurring, err := uc.recurringRepo.FindByID(ctx, input.RecurringID)
	if err != nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringNotFound,
			"recurring transaction not found",
			domainerror.ErrRecurringNotFound,
		)
	}
	if recurring.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeUnauthorizedRecurringAccess,
			"recurring transaction does not belong to user",
			domainerror.ErrUnauthorizedRecurringAccess,
		)
	}

	if input.Description != nil {
		if *input.Description == "" || len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeMissingRecurringFields,
				fmt.Sprintf("description is required and must not exceed %d characters", MaxDescriptionLength),
				nil,
			)
		}
		recurring.Description = *input.Description
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidRecurringAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidRecurringAmount,
			)
		}
		recurring.Amount = *input.Amount
	}

	switch {
	case input.ClearEnd:
		recurring.EndDate = nil
	case input.EndDate != nil:
		if input.EndDate.Before(recurring.StartDate) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidRecurringDateRange,
				"end date must not precede start date",
				domainerror.ErrInvalidDateRange,
			)
		}
		recurring.EndDate = input.EndDate
	}

	if input.IsActive != nil {
		recurring.IsActive = *input.IsActive
	}
	recurring.UpdatedAt = time.Now().UTC()

	if err := uc.recurringRepo.Update(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to update recurring transaction: %w", err)
	}

	return &UpdateRecurringOutput{Recurring: recurring}, nil
}
