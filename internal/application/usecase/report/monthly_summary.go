// Package report contains reporting and export use cases.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/application/adapter"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// MonthlySummaryInput represents the input for the monthly summary report.
type MonthlySummaryInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// CategoryBreakdownItem represents one category in the expense breakdown.
type CategoryBreakdownItem struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
	Percentage   float64
	Count        int
}

// MonthlySummaryOutput represents the output of the monthly summary report.
type MonthlySummaryOutput struct {
	Month      int
	Year       int
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Net        decimal.Decimal
	Categories []CategoryBreakdownItem
}

// MonthlySummaryUseCase computes income/expense/net totals and the
// per-category expense breakdown for one calendar month.
type MonthlySummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewMonthlySummaryUseCase creates a new MonthlySummaryUseCase instance.
func NewMonthlySummaryUseCase(transactionRepo adapter.TransactionRepository) *MonthlySummaryUseCase {
	return &MonthlySummaryUseCase{transactionRepo: transactionRepo}
}

// Execute computes the monthly summary.
func (uc *MonthlySummaryUseCase) Execute(ctx context.Context, input MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	start, end, err := monthBounds(input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	filter := adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
	}
	totals, err := uc.transactionRepo.GetTotals(ctx, filter)
	if err != nil {
		return nil, err
	}

	breakdown, err := uc.transactionRepo.CategoryBreakdown(ctx, input.UserID, start, end)
	if err != nil {
		return nil, err
	}

	output := &MonthlySummaryOutput{
		Month:      input.Month,
		Year:       input.Year,
		Income:     totals.IncomeTotal,
		Expenses:   totals.ExpenseTotal,
		Net:        totals.NetTotal,
		Categories: make([]CategoryBreakdownItem, 0, len(breakdown)),
	}

	for _, item := range breakdown {
		pct := float64(0)
		if totals.ExpenseTotal.IsPositive() {
			pct, _ = item.Total.Div(totals.ExpenseTotal).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		}
		output.Categories = append(output.Categories, CategoryBreakdownItem{
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			Amount:       item.Total,
			Percentage:   pct,
			Count:        item.Count,
		})
	}

	return output, nil
}

// monthBounds returns the inclusive [first, last] day bounds of a month.
func monthBounds(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 1970 {
		return time.Time{}, time.Time{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportRange,
			"month must be in [1,12] and year at least 1970",
			domainerror.ErrInvalidReportRange,
		)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}
