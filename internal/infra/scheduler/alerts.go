// Package scheduler hosts the background workers: the recurring transaction
// generator and the budget/goal alert evaluator.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/application/usecase/budget"
	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// AlertEvaluator walks the current month's budgets and the unnotified goals
// on each tick. Every threshold fires at most once per budget row: the sent
// flag is set with a conditional update only after the notification was
// durably accepted.
type AlertEvaluator struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.GoalRepository
	userRepo        adapter.UserRepository
	categoryRepo    adapter.CategoryRepository
	notifier        adapter.Notifier
	clock           adapter.Clock
	interval        time.Duration

	// mu guards against a tick overlapping a still-running pass.
	mu sync.Mutex
}

// NewAlertEvaluator creates a new AlertEvaluator instance.
func NewAlertEvaluator(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	categoryRepo adapter.CategoryRepository,
	notifier adapter.Notifier,
	clock adapter.Clock,
	interval time.Duration,
) *AlertEvaluator {
	return &AlertEvaluator{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		userRepo:        userRepo,
		categoryRepo:    categoryRepo,
		notifier:        notifier,
		clock:           clock,
		interval:        interval,
	}
}

// Start begins the evaluator loop. It blocks until the context is cancelled.
func (e *AlertEvaluator) Start(ctx context.Context) {
	slog.Info("Alert evaluator started", "interval", e.interval)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	e.RunPass(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Alert evaluator shutting down")
			return
		case <-ticker.C:
			e.RunPass(ctx)
		}
	}
}

// RunPass executes one evaluation pass over budgets and goals.
func (e *AlertEvaluator) RunPass(ctx context.Context) {
	if !e.mu.TryLock() {
		slog.Debug("Evaluator pass still running, skipping tick")
		return
	}
	defer e.mu.Unlock()

	now := e.clock.Now()
	e.evaluateBudgets(ctx, now)
	e.evaluateGoals(ctx)
}

// evaluateBudgets checks every budget of the current month against its
// enabled thresholds, ascending, and fires each crossed one exactly once.
func (e *AlertEvaluator) evaluateBudgets(ctx context.Context, now time.Time) {
	month, year := int(now.Month()), now.Year()

	budgets, err := e.budgetRepo.FindByPeriod(ctx, month, year)
	if err != nil {
		slog.Error("Failed to load budgets for alert pass", "error", err)
		return
	}

	for _, b := range budgets {
		select {
		case <-ctx.Done():
			return
		default:
		}
		e.evaluateBudget(ctx, b)
	}
}

// evaluateBudget evaluates one budget row. A row failure is logged and the
// pass moves on; the thresholds fire on a later tick.
func (e *AlertEvaluator) evaluateBudget(ctx context.Context, b *entity.Budget) {
	logger := slog.With("budget_id", b.ID, "user_id", b.UserID)

	// A zero-amount budget has no meaningful percentage and never alerts.
	if !b.Amount.IsPositive() {
		return
	}

	start, end := b.PeriodBounds()
	spent, err := e.transactionRepo.SumExpensesForPeriod(ctx, b.UserID, b.CategoryID, start, end)
	if err != nil {
		logger.Error("Failed to sum spend for budget", "error", err)
		return
	}

	percentage := budget.PercentageUsed(b.Amount, spent)

	for _, threshold := range entity.AlertThresholds {
		if !b.AlertEnabled(threshold) || b.AlertSent(threshold) {
			continue
		}
		if percentage < float64(threshold) {
			// Thresholds are ascending; nothing higher can be crossed either.
			break
		}

		user, err := e.userRepo.FindByID(ctx, b.UserID)
		if err != nil {
			logger.Error("Failed to load user for budget alert", "error", err)
			return
		}
		if !user.EmailNotifications || !user.BudgetAlerts {
			logger.Debug("Budget alerts disabled for user, skipping")
			return
		}

		categoryName := "Unknown category"
		if category, err := e.categoryRepo.FindByID(ctx, b.CategoryID); err == nil {
			categoryName = category.Name
		}

		err = e.notifier.SendBudgetAlert(ctx, adapter.BudgetAlertInput{
			UserEmail:    user.Email,
			UserName:     user.Name,
			CategoryName: categoryName,
			Month:        b.Month,
			Year:         b.Year,
			Spent:        spent,
			BudgetAmount: b.Amount,
			Percentage:   percentage,
			Threshold:    int(threshold),
		})
		if err != nil {
			// Flag stays false; the alert is retried next tick.
			logger.Error("Failed to send budget alert",
				"threshold", int(threshold),
				"error", err,
			)
			return
		}

		if err := e.budgetRepo.MarkAlertSent(ctx, b.ID, threshold); err != nil {
			if errors.Is(err, domainerror.ErrStaleBudgetUpdate) {
				logger.Debug("Alert flag already set by another instance",
					"threshold", int(threshold),
				)
				continue
			}
			logger.Error("Failed to mark alert as sent",
				"threshold", int(threshold),
				"error", err,
			)
			return
		}

		logger.Info("Budget alert sent",
			"threshold", int(threshold),
			"percentage", percentage,
		)
	}
}

// evaluateGoals fires the one-shot achievement notification for every goal
// whose progress has reached its target.
func (e *AlertEvaluator) evaluateGoals(ctx context.Context) {
	goals, err := e.goalRepo.FindUnnotified(ctx)
	if err != nil {
		slog.Error("Failed to load goals for alert pass", "error", err)
		return
	}

	for _, goal := range goals {
		select {
		case <-ctx.Done():
			return
		default:
		}
		e.evaluateGoal(ctx, goal)
	}
}

func (e *AlertEvaluator) evaluateGoal(ctx context.Context, goal *entity.Goal) {
	logger := slog.With("goal_id", goal.ID, "user_id", goal.UserID)

	current, err := e.goalRepo.GetProgress(ctx, goal)
	if err != nil {
		logger.Error("Failed to compute goal progress", "error", err)
		return
	}
	if current.LessThan(goal.TargetAmount) {
		return
	}

	user, err := e.userRepo.FindByID(ctx, goal.UserID)
	if err != nil {
		logger.Error("Failed to load user for goal alert", "error", err)
		return
	}
	if !user.EmailNotifications || !user.GoalAlerts {
		logger.Debug("Goal alerts disabled for user, skipping")
		return
	}

	err = e.notifier.SendGoalAchieved(ctx, adapter.GoalAchievedInput{
		UserEmail:     user.Email,
		UserName:      user.Name,
		GoalName:      goal.Name,
		CurrentAmount: current,
		TargetAmount:  goal.TargetAmount,
	})
	if err != nil {
		logger.Error("Failed to send goal achievement notification", "error", err)
		return
	}

	if err := e.goalRepo.MarkAchievedNotified(ctx, goal.ID); err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			logger.Debug("Goal already notified by another instance")
			return
		}
		logger.Error("Failed to mark goal as notified", "error", err)
		return
	}

	logger.Info("Goal achievement notification sent", "goal_name", goal.Name)
}
