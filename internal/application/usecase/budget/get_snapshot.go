// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// GetSnapshotInput represents the input for fetching one budget snapshot.
type GetSnapshotInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// GetSnapshotOutput represents the output of fetching one budget snapshot.
type GetSnapshotOutput struct {
	Budget   *entity.Budget
	Snapshot BudgetSnapshot
}

// GetSnapshotUseCase computes the analytics snapshot for a single budget.
type GetSnapshotUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetSnapshotUseCase creates a new GetSnapshotUseCase instance.
func NewGetSnapshotUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GetSnapshotUseCase {
	return &GetSnapshotUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute fetches the budget and computes its snapshot.
func (uc *GetSnapshotUseCase) Execute(ctx context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}
	if budget.UserID != input.UserID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeUnauthorizedBudgetAccess,
			"budget does not belong to user",
			domainerror.ErrUnauthorizedBudgetAccess,
		)
	}

	snapshot, err := snapshotFor(ctx, uc.transactionRepo, budget, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	return &GetSnapshotOutput{Budget: budget, Snapshot: snapshot}, nil
}

// snapshotFor loads the budget period's transactions and trailing history,
// then delegates to the pure ComputeSnapshot.
func snapshotFor(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	budget *entity.Budget,
	today time.Time,
) (BudgetSnapshot, error) {
	start, end := budget.PeriodBounds()

	transactions, err := transactionRepo.FindForBudgetPeriod(ctx, budget.UserID, budget.CategoryID, start, end)
	if err != nil {
		return BudgetSnapshot{}, fmt.Errorf("failed to load budget transactions: %w", err)
	}

	history, err := transactionRepo.MonthlyExpenseHistory(ctx, budget.UserID, budget.CategoryID, budget.Month, budget.Year, historyMonths)
	if err != nil {
		return BudgetSnapshot{}, fmt.Errorf("failed to load spend history: %w", err)
	}

	return ComputeSnapshot(budget, transactions, history, today), nil
}
