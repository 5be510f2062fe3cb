// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertThreshold identifies one of the percentage-of-budget alert levels.
type AlertThreshold int

const (
	AlertThreshold50  AlertThreshold = 50
	AlertThreshold80  AlertThreshold = 80
	AlertThreshold100 AlertThreshold = 100
)

// AlertThresholds lists the supported thresholds in ascending order.
// The evaluator depends on this ordering: a budget that jumps straight past
// 100% must fire 50, then 80, then 100.
var AlertThresholds = []AlertThreshold{AlertThreshold50, AlertThreshold80, AlertThreshold100}

// Budget represents a monthly spend ceiling for one category.
// A budget is unique per (user, category, month, year); a new month is a new
// Budget row with fresh alert flags.
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Month      int // 1-12
	Year       int
	Amount     decimal.Decimal

	Alert50Enabled  bool
	Alert80Enabled  bool
	Alert100Enabled bool

	// Sent flags are monotonic within the budget period: once true they are
	// never reset for this row.
	Alert50Sent  bool
	Alert80Sent  bool
	Alert100Sent bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity with all alert thresholds enabled.
func NewBudget(userID, categoryID uuid.UUID, month, year int, amount decimal.Decimal) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:              uuid.New(),
		UserID:          userID,
		CategoryID:      categoryID,
		Month:           month,
		Year:            year,
		Amount:          amount,
		Alert50Enabled:  true,
		Alert80Enabled:  true,
		Alert100Enabled: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AlertEnabled reports whether the given threshold is enabled for this budget.
func (b *Budget) AlertEnabled(threshold AlertThreshold) bool {
	switch threshold {
	case AlertThreshold50:
		return b.Alert50Enabled
	case AlertThreshold80:
		return b.Alert80Enabled
	case AlertThreshold100:
		return b.Alert100Enabled
	}
	return false
}

// AlertSent reports whether the given threshold notification already fired.
func (b *Budget) AlertSent(threshold AlertThreshold) bool {
	switch threshold {
	case AlertThreshold50:
		return b.Alert50Sent
	case AlertThreshold80:
		return b.Alert80Sent
	case AlertThreshold100:
		return b.Alert100Sent
	}
	return false
}

// PeriodBounds returns the first and last day of the budget's month.
func (b *Budget) PeriodBounds() (start, end time.Time) {
	start = time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// BudgetWithCategory represents a budget with its associated category.
type BudgetWithCategory struct {
	Budget   *Budget
	Category *Category
}
