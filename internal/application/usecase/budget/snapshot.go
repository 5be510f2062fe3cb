// Package budget contains budget-related use cases.
package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
)

// BudgetStatus represents the recommendation tier of a budget snapshot.
type BudgetStatus string

const (
	// StatusNotSet is the sentinel for a zero-amount budget: percentage used
	// is reported as 0 and the alert evaluator never fires for it.
	StatusNotSet   BudgetStatus = "not_set"
	StatusOnTrack  BudgetStatus = "on_track"
	StatusWarning  BudgetStatus = "warning"
	StatusExceeded BudgetStatus = "exceeded"
)

const (
	// warningPercent and exceededPercent are shared with the alert evaluator:
	// the snapshot tiers and the 80/100 alert thresholds must agree.
	warningPercent  = float64(entity.AlertThreshold80)
	exceededPercent = float64(entity.AlertThreshold100)

	// historyMonths is the trailing window used for the suggested budget.
	historyMonths = 6
)

// BudgetSnapshot holds the derived analytics for one budget. All values are
// pure functions of (budget, transactions, history, today); nothing here is
// persisted.
type BudgetSnapshot struct {
	BudgetID   uuid.UUID
	CategoryID uuid.UUID
	Month      int
	Year       int

	Amount         decimal.Decimal
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed float64

	DaysElapsed    int
	DaysRemaining  int
	BurnRate       decimal.Decimal
	ProjectedSpend decimal.Decimal
	DailyBudget    decimal.Decimal

	Status          BudgetStatus
	SuggestedBudget decimal.Decimal
	BudgetVariance  decimal.Decimal
	Recommendation  string
}

// ComputeSnapshot derives the analytics for a budget from its period's
// transactions, the trailing monthly spend history for the same category, and
// the reference date. It is side-effect free and safe to call concurrently.
func ComputeSnapshot(
	budget *entity.Budget,
	transactions []*entity.Transaction,
	history []adapter.MonthlySpend,
	today time.Time,
) BudgetSnapshot {
	spent := sumExpenses(budget, transactions)
	daysInMonth := daysIn(budget.Month, budget.Year)
	daysElapsed := elapsedDays(budget.Month, budget.Year, daysInMonth, today)

	// Burn rate divides by at least one day so a snapshot taken before the
	// period starts stays defined.
	burnDays := daysElapsed
	if burnDays < 1 {
		burnDays = 1
	}
	burnRate := spent.Div(decimal.NewFromInt(int64(burnDays))).Round(2)
	projected := burnRate.Mul(decimal.NewFromInt(int64(daysInMonth))).Round(2)

	snapshot := BudgetSnapshot{
		BudgetID:       budget.ID,
		CategoryID:     budget.CategoryID,
		Month:          budget.Month,
		Year:           budget.Year,
		Amount:         budget.Amount,
		Spent:          spent,
		Remaining:      budget.Amount.Sub(spent),
		DaysElapsed:    daysElapsed,
		DaysRemaining:  daysInMonth - daysElapsed,
		BurnRate:       burnRate,
		ProjectedSpend: projected,
	}

	if budget.Amount.IsPositive() {
		snapshot.PercentageUsed = percentageOf(spent, budget.Amount)
		snapshot.DailyBudget = budget.Amount.Div(decimal.NewFromInt(int64(daysInMonth))).Round(2)
		snapshot.Status = statusFor(snapshot.PercentageUsed)
	} else {
		// Zero-amount budget: percentage is the 0 sentinel, never a fault.
		snapshot.PercentageUsed = 0
		snapshot.DailyBudget = decimal.Zero
		snapshot.Status = StatusNotSet
	}

	snapshot.SuggestedBudget = suggestedBudget(budget.Amount, history)
	snapshot.BudgetVariance = snapshot.SuggestedBudget.Sub(budget.Amount)
	snapshot.Recommendation = recommendationFor(snapshot.Status, snapshot.BudgetVariance, snapshot.SuggestedBudget)

	return snapshot
}

// PercentageUsed computes the guarded percentage for one budget outside a
// full snapshot. The alert evaluator uses it so alerting and analytics agree
// on the zero-amount sentinel.
func PercentageUsed(amount, spent decimal.Decimal) float64 {
	if !amount.IsPositive() {
		return 0
	}
	return percentageOf(spent, amount)
}

func percentageOf(spent, amount decimal.Decimal) float64 {
	pct, _ := spent.Div(amount).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

func statusFor(percentageUsed float64) BudgetStatus {
	switch {
	case percentageUsed >= exceededPercent:
		return StatusExceeded
	case percentageUsed >= warningPercent:
		return StatusWarning
	default:
		return StatusOnTrack
	}
}

// sumExpenses totals expense transactions that fall inside the budget's
// period and category. The repository pre-filters, but the guard keeps the
// function total for arbitrary input.
func sumExpenses(budget *entity.Budget, transactions []*entity.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		if txn.Type != entity.TransactionTypeExpense {
			continue
		}
		if txn.CategoryID == nil || *txn.CategoryID != budget.CategoryID {
			continue
		}
		if int(txn.Date.Month()) != budget.Month || txn.Date.Year() != budget.Year {
			continue
		}
		total = total.Add(txn.Amount)
	}
	return total
}

// suggestedBudget is the mean of the trailing monthly spends. With no history
// the current amount is returned unchanged, so the variance is zero.
func suggestedBudget(amount decimal.Decimal, history []adapter.MonthlySpend) decimal.Decimal {
	if len(history) == 0 {
		return amount
	}

	window := history
	if len(window) > historyMonths {
		window = window[:historyMonths]
	}

	total := decimal.Zero
	for _, month := range window {
		total = total.Add(month.Spent)
	}
	return total.Div(decimal.NewFromInt(int64(len(window)))).Round(2)
}

// recommendationFor maps (status, variance sign) to a stable text. Same
// inputs always produce the same string.
func recommendationFor(status BudgetStatus, variance, suggested decimal.Decimal) string {
	switch status {
	case StatusNotSet:
		return "No budget amount set for this period."
	case StatusExceeded:
		if variance.IsPositive() {
			return "Budget exceeded. Historical spend suggests raising the budget to " + suggested.StringFixed(2) + "."
		}
		return "Budget exceeded. Review this category's spend or reallocate from another budget."
	case StatusWarning:
		return "Spending is on pace to exceed the budget before month end."
	default:
		if variance.IsNegative() {
			return "Spending is on track. Historical average suggests this budget could be lowered to " + suggested.StringFixed(2) + "."
		}
		return "Spending is on track."
	}
}

// daysIn returns the number of days in (month, year).
func daysIn(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// elapsedDays clamps today's day-of-month to the budget period: 0 before the
// period starts, daysInMonth after it ends.
func elapsedDays(month, year, daysInMonth int, today time.Time) int {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if today.Before(periodStart) {
		return 0
	}
	if today.Year() > year || (today.Year() == year && int(today.Month()) > month) {
		return daysInMonth
	}
	day := today.Day()
	if day > daysInMonth {
		day = daysInMonth
	}
	return day
}
