// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal represents a savings goal in the Budgetly system.
type Goal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	CategoryID   *uuid.UUID // Optional: restrict progress to one income category
	TargetAmount decimal.Decimal
	TargetDate   *time.Time

	AlertOnAchieved bool
	// AchievedNotified is a one-shot flag: set when the achievement
	// notification fires, never reset for this goal.
	AchievedNotified bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity.
func NewGoal(userID uuid.UUID, name string, categoryID *uuid.UUID, targetAmount decimal.Decimal, targetDate *time.Time, alertOnAchieved bool) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		CategoryID:      categoryID,
		TargetAmount:    targetAmount,
		TargetDate:      targetDate,
		AlertOnAchieved: alertOnAchieved,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// GoalWithProgress represents a goal with its computed progress.
type GoalWithProgress struct {
	Goal          *Goal
	CurrentAmount decimal.Decimal
	Percentage    float64
}
