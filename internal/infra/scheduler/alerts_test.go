// Package scheduler hosts the background workers: the recurring transaction
// generator and the budget/goal alert evaluator.
package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// fakeBudgetRepo is an in-memory BudgetRepository whose MarkAlertSent has the
// same conditional semantics as the real one.
type fakeBudgetRepo struct {
	budgets []*entity.Budget
}

func (r *fakeBudgetRepo) Create(ctx context.Context, budget *entity.Budget) error {
	r.budgets = append(r.budgets, budget)
	return nil
}

func (r *fakeBudgetRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	for _, b := range r.budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domainerror.ErrBudgetNotFound
}

func (r *fakeBudgetRepo) FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.BudgetWithCategory, error) {
	return nil, nil
}

func (r *fakeBudgetRepo) FindByPeriod(ctx context.Context, month, year int) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepo) Update(ctx context.Context, budget *entity.Budget) error { return nil }

func (r *fakeBudgetRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeBudgetRepo) MarkAlertSent(ctx context.Context, budgetID uuid.UUID, threshold entity.AlertThreshold) error {
	for _, b := range r.budgets {
		if b.ID != budgetID {
			continue
		}
		if b.AlertSent(threshold) {
			return domainerror.ErrStaleBudgetUpdate
		}
		switch threshold {
		case entity.AlertThreshold50:
			b.Alert50Sent = true
		case entity.AlertThreshold80:
			b.Alert80Sent = true
		case entity.AlertThreshold100:
			b.Alert100Sent = true
		}
		return nil
	}
	return domainerror.ErrBudgetNotFound
}

// spendTransactionRepo answers SumExpensesForPeriod from a fixed map and
// stubs the rest of TransactionRepository.
type spendTransactionRepo struct {
	spend map[uuid.UUID]decimal.Decimal // keyed by category
}

func (s *spendTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (s *spendTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (s *spendTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (s *spendTransactionRepo) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return &entity.TransactionTotals{}, nil
}

func (s *spendTransactionRepo) Update(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (s *spendTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *spendTransactionRepo) FindForBudgetPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	return nil, nil
}

func (s *spendTransactionRepo) SumExpensesForPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	if amount, ok := s.spend[categoryID]; ok {
		return amount, nil
	}
	return decimal.Zero, nil
}

func (s *spendTransactionRepo) MonthlyExpenseHistory(ctx context.Context, userID, categoryID uuid.UUID, beforeMonth, beforeYear, months int) ([]adapter.MonthlySpend, error) {
	return nil, nil
}

func (s *spendTransactionRepo) SumIncomeSince(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, since time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *spendTransactionRepo) ExistsByRecurringAndDate(ctx context.Context, recurringID uuid.UUID, date time.Time) (bool, error) {
	return false, nil
}

func (s *spendTransactionRepo) ListForExport(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.TransactionWithCategory, error) {
	return nil, nil
}

func (s *spendTransactionRepo) CategoryBreakdown(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.CategorySpend, error) {
	return nil, nil
}

// fakeGoalRepo is an in-memory GoalRepository with conditional
// MarkAchievedNotified semantics.
type fakeGoalRepo struct {
	goals    []*entity.Goal
	progress map[uuid.UUID]decimal.Decimal
}

func (r *fakeGoalRepo) Create(ctx context.Context, goal *entity.Goal) error {
	r.goals = append(r.goals, goal)
	return nil
}

func (r *fakeGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	for _, g := range r.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domainerror.ErrGoalNotFound
}

func (r *fakeGoalRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	return nil, nil
}

func (r *fakeGoalRepo) FindUnnotified(ctx context.Context) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range r.goals {
		if g.AlertOnAchieved && !g.AchievedNotified {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) GetProgress(ctx context.Context, goal *entity.Goal) (decimal.Decimal, error) {
	if amount, ok := r.progress[goal.ID]; ok {
		return amount, nil
	}
	return decimal.Zero, nil
}

func (r *fakeGoalRepo) Update(ctx context.Context, goal *entity.Goal) error { return nil }

func (r *fakeGoalRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeGoalRepo) MarkAchievedNotified(ctx context.Context, goalID uuid.UUID) error {
	for _, g := range r.goals {
		if g.ID == goalID && !g.AchievedNotified {
			g.AchievedNotified = true
			return nil
		}
	}
	return domainerror.ErrGoalNotFound
}

// fakeUserRepo serves a fixed set of users.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

// fakeCategoryRepo serves a fixed set of categories.
type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error { return nil }

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if category, ok := r.categories[id]; ok {
		return category, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error { return nil }

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeCategoryRepo) IsInUse(ctx context.Context, id uuid.UUID) (bool, error) {
	return false, nil
}

// recordingNotifier records every alert it accepts.
type recordingNotifier struct {
	budgetAlerts []adapter.BudgetAlertInput
	goalAlerts   []adapter.GoalAchievedInput
	fail         bool
}

func (n *recordingNotifier) SendBudgetAlert(ctx context.Context, input adapter.BudgetAlertInput) error {
	if n.fail {
		return fmt.Errorf("notifier unavailable")
	}
	n.budgetAlerts = append(n.budgetAlerts, input)
	return nil
}

func (n *recordingNotifier) SendGoalAchieved(ctx context.Context, input adapter.GoalAchievedInput) error {
	if n.fail {
		return fmt.Errorf("notifier unavailable")
	}
	n.goalAlerts = append(n.goalAlerts, input)
	return nil
}

type evaluatorFixture struct {
	budgetRepo *fakeBudgetRepo
	txnRepo    *spendTransactionRepo
	goalRepo   *fakeGoalRepo
	userRepo   *fakeUserRepo
	catRepo    *fakeCategoryRepo
	notifier   *recordingNotifier
	clock      *fakeClock
	evaluator  *AlertEvaluator
	user       *entity.User
	category   *entity.Category
}

func newEvaluatorFixture(now time.Time) *evaluatorFixture {
	user := entity.NewUser("ana@example.com", "Ana", "hash")
	category := entity.NewCategory(user.ID, "Groceries", "#FF0000", "cart", entity.CategoryTypeExpense)

	f := &evaluatorFixture{
		budgetRepo: &fakeBudgetRepo{},
		txnRepo:    &spendTransactionRepo{spend: map[uuid.UUID]decimal.Decimal{}},
		goalRepo:   &fakeGoalRepo{progress: map[uuid.UUID]decimal.Decimal{}},
		userRepo:   &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}},
		catRepo:    &fakeCategoryRepo{categories: map[uuid.UUID]*entity.Category{category.ID: category}},
		notifier:   &recordingNotifier{},
		clock:      &fakeClock{now: now},
		user:       user,
		category:   category,
	}
	f.evaluator = NewAlertEvaluator(
		f.budgetRepo, f.txnRepo, f.goalRepo, f.userRepo, f.catRepo,
		f.notifier, f.clock, time.Hour,
	)
	return f
}

func TestAlertEvaluator_ThresholdsFireOnceAscending(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	f := newEvaluatorFixture(now)

	b := entity.NewBudget(f.user.ID, f.category.ID, 6, 2024, decimal.RequireFromString("1000"))
	f.budgetRepo.budgets = append(f.budgetRepo.budgets, b)

	// Spend jumps straight past every threshold.
	f.txnRepo.spend[f.category.ID] = decimal.RequireFromString("1200")

	f.evaluator.RunPass(context.Background())

	if len(f.notifier.budgetAlerts) != 3 {
		t.Fatalf("expected 3 alerts (50, 80, 100), got %d", len(f.notifier.budgetAlerts))
	}
	for i, want := range []int{50, 80, 100} {
		if f.notifier.budgetAlerts[i].Threshold != want {
			t.Errorf("alert %d: expected threshold %d, got %d", i, want, f.notifier.budgetAlerts[i].Threshold)
		}
	}
	if !b.Alert50Sent || !b.Alert80Sent || !b.Alert100Sent {
		t.Error("expected all sent flags set")
	}

	// Second pass with unchanged spend fires nothing.
	f.evaluator.RunPass(context.Background())
	if len(f.notifier.budgetAlerts) != 3 {
		t.Fatalf("expected no new alerts on second pass, got %d total", len(f.notifier.budgetAlerts))
	}
}

func TestAlertEvaluator_PartialThreshold(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	f := newEvaluatorFixture(now)

	b := entity.NewBudget(f.user.ID, f.category.ID, 6, 2024, decimal.RequireFromString("1000"))
	f.budgetRepo.budgets = append(f.budgetRepo.budgets, b)
	f.txnRepo.spend[f.category.ID] = decimal.RequireFromString("600") // 60%

	f.evaluator.RunPass(context.Background())

	if len(f.notifier.budgetAlerts) != 1 {
		t.Fatalf("expected only the 50%% alert, got %d", len(f.notifier.budgetAlerts))
	}
	if f.notifier.budgetAlerts[0].Threshold != 50 {
		t.Errorf("expected threshold 50, got %d", f.notifier.budgetAlerts[0].Threshold)
	}
	if b.Alert80Sent || b.Alert100Sent {
		t.Error("higher thresholds must not be marked sent")
	}

	// Spend later crosses 80: exactly one more alert.
	f.txnRepo.spend[f.category.ID] = decimal.RequireFromString("850")
	f.evaluator.RunPass(context.Background())
	if len(f.notifier.budgetAlerts) != 2 {
		t.Fatalf("expected 2 alerts total after crossing 80%%, got %d", len(f.notifier.budgetAlerts))
	}
	if f.notifier.budgetAlerts[1].Threshold != 80 {
		t.Errorf("expected threshold 80, got %d", f.notifier.budgetAlerts[1].Threshold)
	}
}

func TestAlertEvaluator_DisabledThresholdSkipped(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	f := newEvaluatorFixture(now)

	b := entity.NewBudget(f.user.ID, f.category.ID, 6, 2024, decimal.RequireFromString("1000"))
	b.Alert50Enabled = false
	f.budgetRepo.budgets = append(f.budgetRepo.budgets, b)
	f.txnRepo.spend[f.category.ID] = decimal.RequireFromString("900")

	f.evaluator.RunPass(context.Background())

	if len(f.notifier.budgetAlerts) != 1 {
		t.Fatalf("expected only the 80%% alert, got %d", len(f.notifier.budgetAlerts))
	}
	if f.notifier.budgetAlerts[0].Threshold != 80 {
		t.Errorf("expected threshold 80, got %d", f.notifier.budgetAlerts[0].Threshold)
	}
	if b.Alert50Sent {
		t.Error("disabled threshold must not be marked sent")
	}
}

func TestAlertEvaluator_ZeroAmountBudgetNeverFires(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	f := newEvaluatorFixture(now)

	b := entity.NewBudget(f.user.ID, f.category.ID, 6, 2024, decimal.Zero)
	f.budgetRepo.budgets = append(f.budgetRepo.budgets, b)
	f.txnRepo.spend[f.category.ID] = decimal.RequireFromString("500")

	f.evaluator.RunPass(context.Background())

	if len(f.notifier.budgetAlerts) != 0 {
		t.Fatalf("expected no alerts for zero-amount budget, got %d", len(f.notifier.budgetAlerts))
	}
}

func TestAlertEvaluator_FailedSendLeavesFlagUnset(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	f := newEvaluatorFixture(now)

	b := entity.NewBudget(f.user.ID, f.category.ID, 6, 2024, decimal.RequireFromString("1000"))
	f.budgetRepo.budgets = append(f.budgetRepo.budgets, b)
	f.txnRepo.spend[f.category.ID] = decimal.RequireFromString("600")

	f.notifier.fail = true
	f.evaluator.RunPass(context.Background())

	if b.Alert50Sent {
		t.Fatal("sent flag must stay false when the notification fails")
	}

	// Recovery: the alert fires on the next pass.
	f.notifier.fail = false
	f.evaluator.RunPass(context.Background())
	if len(f.notifier.budgetAlerts) != 1 || !b.Alert50Sent {
		t.Fatalf("expected exactly one alert after recovery, got %d (sent=%v)",
			len(f.notifier.budgetAlerts), b.Alert50Sent)
	}
}

func TestAlertEvaluator_GoalAchievedOneShot(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	f := newEvaluatorFixture(now)

	goal := entity.NewGoal(f.user.ID, "Emergency fund", nil, decimal.RequireFromString("5000"), nil, true)
	f.goalRepo.goals = append(f.goalRepo.goals, goal)
	f.goalRepo.progress[goal.ID] = decimal.RequireFromString("5100")

	f.evaluator.RunPass(context.Background())

	if len(f.notifier.goalAlerts) != 1 {
		t.Fatalf("expected 1 goal notification, got %d", len(f.notifier.goalAlerts))
	}
	if f.notifier.goalAlerts[0].GoalName != "Emergency fund" {
		t.Errorf("unexpected goal name: %s", f.notifier.goalAlerts[0].GoalName)
	}
	if !goal.AchievedNotified {
		t.Error("expected AchievedNotified flag set")
	}

	// Never fires again, even as progress keeps growing.
	f.goalRepo.progress[goal.ID] = decimal.RequireFromString("9000")
	f.evaluator.RunPass(context.Background())
	if len(f.notifier.goalAlerts) != 1 {
		t.Fatalf("expected no second goal notification, got %d", len(f.notifier.goalAlerts))
	}
}

func TestAlertEvaluator_UserPreferencesRespected(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	f := newEvaluatorFixture(now)
	f.user.BudgetAlerts = false

	b := entity.NewBudget(f.user.ID, f.category.ID, 6, 2024, decimal.RequireFromString("1000"))
	f.budgetRepo.budgets = append(f.budgetRepo.budgets, b)
	f.txnRepo.spend[f.category.ID] = decimal.RequireFromString("600")

	f.evaluator.RunPass(context.Background())

	if len(f.notifier.budgetAlerts) != 0 {
		t.Fatalf("expected no alerts for opted-out user, got %d", len(f.notifier.budgetAlerts))
	}
	if b.Alert50Sent {
		t.Error("flag must not be set when the user opted out")
	}
}
