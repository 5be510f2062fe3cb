// Package report contains reporting and export use cases.
package report

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
)

// stubTransactionRepo implements adapter.TransactionRepository with
// overridable behavior per test.
type stubTransactionRepo struct {
	listForExport     func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.TransactionWithCategory, error)
	getTotals         func(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error)
	categoryBreakdown func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.CategorySpend, error)
}

func (s *stubTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (s *stubTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (s *stubTransactionRepo) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	if s.getTotals != nil {
		return s.getTotals(ctx, filter)
	}
	return &entity.TransactionTotals{}, nil
}

func (s *stubTransactionRepo) Update(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (s *stubTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (s *stubTransactionRepo) FindForBudgetPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionRepo) SumExpensesForPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *stubTransactionRepo) MonthlyExpenseHistory(ctx context.Context, userID, categoryID uuid.UUID, beforeMonth, beforeYear, months int) ([]adapter.MonthlySpend, error) {
	return nil, nil
}

func (s *stubTransactionRepo) SumIncomeSince(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, since time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *stubTransactionRepo) ExistsByRecurringAndDate(ctx context.Context, recurringID uuid.UUID, date time.Time) (bool, error) {
	return false, nil
}

func (s *stubTransactionRepo) ListForExport(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.TransactionWithCategory, error) {
	if s.listForExport != nil {
		return s.listForExport(ctx, userID, start, end)
	}
	return nil, nil
}

func (s *stubTransactionRepo) CategoryBreakdown(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.CategorySpend, error) {
	if s.categoryBreakdown != nil {
		return s.categoryBreakdown(ctx, userID, start, end)
	}
	return nil, nil
}

func TestExportCSV(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	groceries := &entity.Category{ID: uuid.New(), UserID: userID, Name: "Groceries"}

	repo := &stubTransactionRepo{
		listForExport: func(ctx context.Context, uid uuid.UUID, s, e time.Time) ([]*entity.TransactionWithCategory, error) {
			return []*entity.TransactionWithCategory{
				{
					Transaction: &entity.Transaction{
						Date:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
						Description: "Supermarket",
						Amount:      decimal.RequireFromString("52.40"),
						Type:        entity.TransactionTypeExpense,
						Notes:       "weekly run",
					},
					Category: groceries,
				},
				{
					Transaction: &entity.Transaction{
						Date:        time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
						Description: "Salary",
						Amount:      decimal.RequireFromString("3000"),
						Type:        entity.TransactionTypeIncome,
					},
				},
			}, nil
		},
	}

	uc := NewExportCSVUseCase(repo)

	t.Run("renders header and one row per transaction", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ExportCSVInput{
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(out.Content))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse produced CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header + 2 rows, got %d records", len(records))
		}
		if got := strings.Join(records[0], ","); got != "date,description,category,type,amount,notes" {
			t.Errorf("unexpected header: %s", got)
		}
		if records[1][2] != "Groceries" {
			t.Errorf("expected category name Groceries, got %s", records[1][2])
		}
		if records[1][4] != "52.40" {
			t.Errorf("expected amount 52.40, got %s", records[1][4])
		}
		if records[2][2] != "" {
			t.Errorf("expected empty category for uncategorized row, got %s", records[2][2])
		}
		if out.FileName != "transactions_20240601_20240630.csv" {
			t.Errorf("unexpected file name: %s", out.FileName)
		}
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ExportCSVInput{
			UserID:    userID,
			StartDate: end,
			EndDate:   start,
		})
		if err == nil {
			t.Fatal("expected error for inverted date range")
		}
	})
}

func TestMonthlySummary(t *testing.T) {
	userID := uuid.New()
	groceriesID := uuid.New()

	repo := &stubTransactionRepo{
		getTotals: func(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
			return &entity.TransactionTotals{
				IncomeTotal:  decimal.RequireFromString("3000"),
				ExpenseTotal: decimal.RequireFromString("400"),
				NetTotal:     decimal.RequireFromString("2600"),
			}, nil
		},
		categoryBreakdown: func(ctx context.Context, uid uuid.UUID, s, e time.Time) ([]adapter.CategorySpend, error) {
			return []adapter.CategorySpend{
				{CategoryID: &groceriesID, CategoryName: "Groceries", Total: decimal.RequireFromString("300"), Count: 4},
				{CategoryName: "", Total: decimal.RequireFromString("100"), Count: 1},
			}, nil
		},
	}

	uc := NewMonthlySummaryUseCase(repo)

	t.Run("computes breakdown percentages of total expenses", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), MonthlySummaryInput{UserID: userID, Month: 6, Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Categories) != 2 {
			t.Fatalf("expected 2 breakdown items, got %d", len(out.Categories))
		}
		if out.Categories[0].Percentage != 75 {
			t.Errorf("expected 75%% for Groceries, got %v", out.Categories[0].Percentage)
		}
		if out.Categories[1].Percentage != 25 {
			t.Errorf("expected 25%% for uncategorized, got %v", out.Categories[1].Percentage)
		}
		if !out.Net.Equal(decimal.RequireFromString("2600")) {
			t.Errorf("unexpected net total: %s", out.Net)
		}
	})

	t.Run("rejects invalid month", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), MonthlySummaryInput{UserID: userID, Month: 13, Year: 2024})
		if err == nil {
			t.Fatal("expected error for month 13")
		}
	})
}
