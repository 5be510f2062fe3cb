// Package budget contains budget-related use cases.
package budget

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
)

func testBudget(amount int64, month, year int) *entity.Budget {
	return entity.NewBudget(uuid.New(), uuid.New(), month, year, decimal.NewFromInt(amount))
}

func expense(b *entity.Budget, day int, amount int64) *entity.Transaction {
	categoryID := b.CategoryID
	return &entity.Transaction{
		ID:         uuid.New(),
		UserID:     b.UserID,
		Date:       time.Date(b.Year, time.Month(b.Month), day, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(amount),
		Type:       entity.TransactionTypeExpense,
		CategoryID: &categoryID,
	}
}

func TestComputeSnapshot_BasicMetrics(t *testing.T) {
	b := testBudget(1000, 6, 2024) // June 2024: 30 days
	txns := []*entity.Transaction{
		expense(b, 1, 100),
		expense(b, 5, 200),
	}
	today := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	snap := ComputeSnapshot(b, txns, nil, today)

	if !snap.Spent.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected spent 300, got %s", snap.Spent)
	}
	if !snap.Remaining.Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected remaining 700, got %s", snap.Remaining)
	}
	if snap.PercentageUsed != 30 {
		t.Errorf("expected 30%% used, got %v", snap.PercentageUsed)
	}
	if snap.DaysElapsed != 10 || snap.DaysRemaining != 20 {
		t.Errorf("expected 10 elapsed / 20 remaining, got %d / %d", snap.DaysElapsed, snap.DaysRemaining)
	}
	if !snap.BurnRate.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected burn rate 30, got %s", snap.BurnRate)
	}
	if !snap.ProjectedSpend.Equal(decimal.NewFromInt(900)) {
		t.Errorf("expected projected spend 900, got %s", snap.ProjectedSpend)
	}
	if !snap.DailyBudget.Equal(decimal.RequireFromString("33.33")) {
		t.Errorf("expected daily budget 33.33, got %s", snap.DailyBudget)
	}
	if snap.Status != StatusOnTrack {
		t.Errorf("expected on_track, got %s", snap.Status)
	}
}

func TestComputeSnapshot_StatusTiers(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		spent int64
		want  BudgetStatus
	}{
		{"below warning", 799, StatusOnTrack},
		{"at warning threshold", 800, StatusWarning},
		{"below exceeded", 999, StatusWarning},
		{"at exceeded threshold", 1000, StatusExceeded},
		{"over budget", 1200, StatusExceeded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := testBudget(1000, 6, 2024)
			snap := ComputeSnapshot(b, []*entity.Transaction{expense(b, 1, tc.spent)}, nil, today)
			if snap.Status != tc.want {
				t.Errorf("spent %d: expected %s, got %s", tc.spent, tc.want, snap.Status)
			}
		})
	}
}

func TestComputeSnapshot_ZeroAmountSentinel(t *testing.T) {
	b := testBudget(0, 6, 2024)
	txns := []*entity.Transaction{expense(b, 1, 500)}
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	snap := ComputeSnapshot(b, txns, nil, today)

	if snap.PercentageUsed != 0 {
		t.Errorf("expected 0%% sentinel for zero-amount budget, got %v", snap.PercentageUsed)
	}
	if snap.Status != StatusNotSet {
		t.Errorf("expected not_set status, got %s", snap.Status)
	}
	if !snap.DailyBudget.IsZero() {
		t.Errorf("expected zero daily budget, got %s", snap.DailyBudget)
	}
}

func TestComputeSnapshot_Deterministic(t *testing.T) {
	b := testBudget(1000, 2, 2024)
	txns := []*entity.Transaction{expense(b, 3, 410), expense(b, 7, 95)}
	history := []adapter.MonthlySpend{
		{Month: 1, Year: 2024, Spent: decimal.NewFromInt(600)},
		{Month: 12, Year: 2023, Spent: decimal.NewFromInt(700)},
	}
	today := time.Date(2024, time.February, 20, 8, 30, 0, 0, time.UTC)

	first := ComputeSnapshot(b, txns, history, today)
	second := ComputeSnapshot(b, txns, history, today)

	if first.Recommendation != second.Recommendation {
		t.Errorf("recommendation not stable: %q vs %q", first.Recommendation, second.Recommendation)
	}
	if !first.Spent.Equal(second.Spent) ||
		first.PercentageUsed != second.PercentageUsed ||
		!first.BurnRate.Equal(second.BurnRate) ||
		!first.ProjectedSpend.Equal(second.ProjectedSpend) ||
		!first.SuggestedBudget.Equal(second.SuggestedBudget) {
		t.Error("identical inputs produced different snapshots")
	}
}

func TestComputeSnapshot_SuggestedBudget(t *testing.T) {
	b := testBudget(500, 6, 2024)
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("mean of trailing months", func(t *testing.T) {
		history := []adapter.MonthlySpend{
			{Month: 5, Year: 2024, Spent: decimal.NewFromInt(700)},
			{Month: 4, Year: 2024, Spent: decimal.NewFromInt(500)},
			{Month: 3, Year: 2024, Spent: decimal.NewFromInt(600)},
		}
		snap := ComputeSnapshot(b, nil, history, today)
		if !snap.SuggestedBudget.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected suggested 600, got %s", snap.SuggestedBudget)
		}
		if !snap.BudgetVariance.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected variance 100, got %s", snap.BudgetVariance)
		}
	})

	t.Run("empty history falls back to current amount", func(t *testing.T) {
		snap := ComputeSnapshot(b, nil, nil, today)
		if !snap.SuggestedBudget.Equal(b.Amount) {
			t.Errorf("expected suggested %s, got %s", b.Amount, snap.SuggestedBudget)
		}
		if !snap.BudgetVariance.IsZero() {
			t.Errorf("expected zero variance, got %s", snap.BudgetVariance)
		}
	})

	t.Run("window capped at six months", func(t *testing.T) {
		history := make([]adapter.MonthlySpend, 8)
		for i := range history {
			history[i] = adapter.MonthlySpend{Spent: decimal.NewFromInt(600)}
		}
		// Older months outside the window would skew the mean if included.
		history[6].Spent = decimal.NewFromInt(9000)
		history[7].Spent = decimal.NewFromInt(9000)

		snap := ComputeSnapshot(b, nil, history, today)
		if !snap.SuggestedBudget.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected suggested 600, got %s", snap.SuggestedBudget)
		}
	})
}

func TestComputeSnapshot_DayClamping(t *testing.T) {
	b := testBudget(1000, 2, 2024) // February 2024: 29 days

	t.Run("today past period end clamps to month length", func(t *testing.T) {
		today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
		snap := ComputeSnapshot(b, nil, nil, today)
		if snap.DaysElapsed != 29 || snap.DaysRemaining != 0 {
			t.Errorf("expected 29 elapsed / 0 remaining, got %d / %d", snap.DaysElapsed, snap.DaysRemaining)
		}
	})

	t.Run("today before period start clamps to zero", func(t *testing.T) {
		today := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
		snap := ComputeSnapshot(b, nil, nil, today)
		if snap.DaysElapsed != 0 {
			t.Errorf("expected 0 elapsed, got %d", snap.DaysElapsed)
		}
	})
}

func TestComputeSnapshot_FiltersForeignTransactions(t *testing.T) {
	b := testBudget(1000, 6, 2024)
	otherCategory := uuid.New()
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	txns := []*entity.Transaction{
		expense(b, 5, 100),
		{ // income never counts as spend
			ID: uuid.New(), UserID: b.UserID, CategoryID: &b.CategoryID,
			Date:   time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
			Amount: decimal.NewFromInt(400), Type: entity.TransactionTypeIncome,
		},
		{ // different category
			ID: uuid.New(), UserID: b.UserID, CategoryID: &otherCategory,
			Date:   time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
			Amount: decimal.NewFromInt(400), Type: entity.TransactionTypeExpense,
		},
		{ // different month
			ID: uuid.New(), UserID: b.UserID, CategoryID: &b.CategoryID,
			Date:   time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC),
			Amount: decimal.NewFromInt(400), Type: entity.TransactionTypeExpense,
		},
	}

	snap := ComputeSnapshot(b, txns, nil, today)
	if !snap.Spent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected spent 100, got %s", snap.Spent)
	}
}

func TestPercentageUsed_Guarded(t *testing.T) {
	if got := PercentageUsed(decimal.Zero, decimal.NewFromInt(500)); got != 0 {
		t.Errorf("expected 0 for zero amount, got %v", got)
	}
	if got := PercentageUsed(decimal.NewFromInt(1000), decimal.NewFromInt(1200)); got != 120 {
		t.Errorf("expected 120, got %v", got)
	}
}
