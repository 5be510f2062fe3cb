// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// BudgetAlertInput carries everything the notifier needs to tell a user that
// a budget threshold was crossed.
type BudgetAlertInput struct {
	UserEmail    string
	UserName     string
	CategoryName string
	Month        int
	Year         int
	Spent        decimal.Decimal
	BudgetAmount decimal.Decimal
	Percentage   float64
	Threshold    int
}

// GoalAchievedInput carries everything the notifier needs to tell a user that
// a savings goal was reached.
type GoalAchievedInput struct {
	UserEmail     string
	UserName      string
	GoalName      string
	CurrentAmount decimal.Decimal
	TargetAmount  decimal.Decimal
}

// Notifier delivers budget and goal alerts. Callers wait for the returned
// error before marking the corresponding one-shot flag: a notification is
// only considered sent once it is durably accepted.
type Notifier interface {
	// SendBudgetAlert notifies the user that spend crossed a threshold.
	SendBudgetAlert(ctx context.Context, input BudgetAlertInput) error

	// SendGoalAchieved notifies the user that a savings goal was reached.
	SendGoalAchieved(ctx context.Context, input GoalAchievedInput) error
}
