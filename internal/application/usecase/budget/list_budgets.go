// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// BudgetWithSnapshot pairs a budget with its category and derived analytics.
type BudgetWithSnapshot struct {
	Budget   *entity.Budget
	Category *entity.Category
	Snapshot BudgetSnapshot
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetWithSnapshot
}

// ListBudgetsUseCase handles listing budgets with their snapshots.
type ListBudgetsUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute lists the user's budgets for one period, each with a computed snapshot.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"month must be 1-12",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	budgets, err := uc.budgetRepo.FindByUserAndPeriod(ctx, input.UserID, input.Month, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	today := uc.clock.Now()
	result := make([]*BudgetWithSnapshot, 0, len(budgets))
	for _, bc := range budgets {
		snapshot, err := snapshotFor(ctx, uc.transactionRepo, bc.Budget, today)
		if err != nil {
			return nil, err
		}
		result = append(result, &BudgetWithSnapshot{
			Budget:   bc.Budget,
			Category: bc.Category,
			Snapshot: snapshot,
		})
	}

	return &ListBudgetsOutput{Budgets: result}, nil
}
