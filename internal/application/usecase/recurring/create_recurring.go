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

// MaxDescriptionLength is the maximum allowed length for descriptions.
const MaxDescriptionLength = 255

// CreateRecurringInput represents the input for creating a recurring definition.
type CreateRecurringInput struct {
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	Frequency   entity.RecurringFrequency
	StartDate   time.Time
	EndDate     *time.Time
	DayOfMonth  *int
	DayOfWeek   *time.Weekday
}

// CreateRecurringOutput represents the output of creating a recurring definition.
type CreateRecurringOutput struct {
	Recurring *entity.RecurringTransaction
}

// CreateRecurringUseCase handles recurring definition creation logic.
type CreateRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
	categoryRepo  adapter.CategoryRepository
}

// NewCreateRecurringUseCase creates a new CreateRecurringUseCase instance.
func NewCreateRecurringUseCase(recurringRepo adapter.RecurringRepository, categoryRepo adapter.CategoryRepository) *CreateRecurringUseCase {
	return &CreateRecurringUseCase{
		recurringRepo: recurringRepo,
		categoryRepo:  categoryRepo,
	}
}

// Execute performs the recurring definition creation.
func (uc *CreateRecurringUseCase) Execute(ctx context.Context, input CreateRecurringInput) (*CreateRecurringOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidRecurringAmount,
		)
	}

	if input.Description == "" || len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRecurringFields,
			fmt.Sprintf("description is required and must not exceed %d characters", MaxDescriptionLength),
			nil,
		)
	}

	if input.Type != entity.TransactionTypeExpense && input.Type != entity.TransactionTypeIncome {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRecurringFields,
			"type must be 'expense' or 'income'",
			nil,
		)
	}

	if err := ValidateSchedule(input.Frequency, input.DayOfMonth, input.DayOfWeek, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		if category.UserID != input.UserID {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeUnauthorizedRecurringAccess,
				"category does not belong to user",
				domainerror.ErrUnauthorizedRecurringAccess,
			)
		}
	}

	recurring := entity.NewRecurringTransaction(
		input.UserID,
		input.Description,
		input.Amount,
		input.Type,
		input.CategoryID,
		input.Frequency,
		input.StartDate,
		input.EndDate,
		input.DayOfMonth,
		input.DayOfWeek,
	)

	if err := uc.recurringRepo.Create(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to create recurring transaction: %w", err)
	}

	return &CreateRecurringOutput{Recurring: recurring}, nil
}
