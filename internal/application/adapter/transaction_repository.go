// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	Search      string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// MonthlySpend represents total expense spend for one calendar month.
type MonthlySpend struct {
	Month int
	Year  int
	Spent decimal.Decimal
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// GetTotals calculates income/expense/net totals for the filter.
	GetTotals(ctx context.Context, filter TransactionFilter) (*entity.TransactionTotals, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindForBudgetPeriod returns all expense transactions for a user and
	// category within [start, end]. Feeds the budget analytics engine.
	FindForBudgetPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// SumExpensesForPeriod returns the total expense amount for a user and
	// category within [start, end]. Used by budget analytics and alerting.
	SumExpensesForPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)

	// MonthlyExpenseHistory returns per-month expense totals for a user and
	// category over the months months preceding the given period, newest first.
	MonthlyExpenseHistory(ctx context.Context, userID, categoryID uuid.UUID, beforeMonth, beforeYear, months int) ([]MonthlySpend, error)

	// SumIncomeSince returns the total income for a user since the given date,
	// optionally restricted to one category. Used for goal progress.
	SumIncomeSince(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, since time.Time) (decimal.Decimal, error)

	// ExistsByRecurringAndDate checks whether an occurrence has already been
	// materialized for the (definition, calendar date) pair.
	ExistsByRecurringAndDate(ctx context.Context, recurringID uuid.UUID, date time.Time) (bool, error)

	// ListForExport returns all transactions with categories for a user within
	// [start, end], ordered by date ascending.
	ListForExport(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.TransactionWithCategory, error)

	// CategoryBreakdown returns per-category expense totals for a user within
	// [start, end].
	CategoryBreakdown(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CategorySpend, error)
}

// CategorySpend represents total expense spend for one category.
type CategorySpend struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Total        decimal.Decimal
	Count        int
}
