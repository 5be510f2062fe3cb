// Package goal contains goal-related use cases.
package goal

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

// MaxGoalNameLength is the maximum allowed length for goal names.
const MaxGoalNameLength = 100

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID          uuid.UUID
	Name            string
	CategoryID      *uuid.UUID
	TargetAmount    decimal.Decimal
	TargetDate      *time.Time
	AlertOnAchieved bool
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, categoryRepo adapter.CategoryRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if input.Name == "" || len(input.Name) > MaxGoalNameLength {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			fmt.Sprintf("goal name is required and must not exceed %d characters", MaxGoalNameLength),
			nil,
		)
	}

	if !input.TargetAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalCategoryNotFound,
				"category not found",
				domainerror.ErrGoalCategoryNotFound,
			)
		}
		if category.UserID != input.UserID {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalCategoryNotOwned,
				"category does not belong to user",
				domainerror.ErrGoalCategoryNotOwned,
			)
		}
	}

	goal := entity.NewGoal(
		input.UserID,
		input.Name,
		input.CategoryID,
		input.TargetAmount,
		input.TargetDate,
		input.AlertOnAchieved,
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{Goal: goal}, nil
}
