// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringFrequency represents how often a recurring transaction repeats.
type RecurringFrequency string

const (
	FrequencyDaily   RecurringFrequency = "daily"
	FrequencyWeekly  RecurringFrequency = "weekly"
	FrequencyMonthly RecurringFrequency = "monthly"
	FrequencyYearly  RecurringFrequency = "yearly"
)

// RecurringTransaction is a template that materializes concrete transactions
// on a schedule. LastGeneratedDate is the watermark: the most recent
// occurrence date already materialized.
type RecurringTransaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	CategoryID  *uuid.UUID

	Frequency  RecurringFrequency
	StartDate  time.Time
	EndDate    *time.Time
	DayOfMonth *int          // Required when Frequency is monthly, 1-31
	DayOfWeek  *time.Weekday // Required when Frequency is weekly

	IsActive          bool
	LastGeneratedDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewRecurringTransaction creates a new active RecurringTransaction entity.
func NewRecurringTransaction(
	userID uuid.UUID,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	frequency RecurringFrequency,
	startDate time.Time,
	endDate *time.Time,
	dayOfMonth *int,
	dayOfWeek *time.Weekday,
) *RecurringTransaction {
	now := time.Now().UTC()

	return &RecurringTransaction{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
		Frequency:   frequency,
		StartDate:   startDate,
		EndDate:     endDate,
		DayOfMonth:  dayOfMonth,
		DayOfWeek:   dayOfWeek,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Expired reports whether the definition has passed its end date and can no
// longer produce occurrences.
func (r *RecurringTransaction) Expired(today time.Time) bool {
	return r.EndDate != nil && today.After(*r.EndDate)
}

// RecurringWithCategory represents a recurring definition with its category.
type RecurringWithCategory struct {
	Recurring *RecurringTransaction
	Category  *Category
}
