// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budgetly/backend/internal/domain/entity"
)

// RecurringRepository defines the interface for recurring transaction
// definition persistence.
type RecurringRepository interface {
	// Create creates a new recurring definition in the database.
	Create(ctx context.Context, recurring *entity.RecurringTransaction) error

	// FindByID retrieves a recurring definition by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTransaction, error)

	// FindByUserID retrieves all recurring definitions for a given user,
	// with categories.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringWithCategory, error)

	// FindActive retrieves all active definitions across users whose start
	// date is not after the given date. Used by the generator tick.
	FindActive(ctx context.Context, asOf time.Time) ([]*entity.RecurringTransaction, error)

	// Update updates an existing recurring definition in the database.
	Update(ctx context.Context, recurring *entity.RecurringTransaction) error

	// Delete soft-deletes a recurring definition from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// MaterializeOccurrence inserts the transaction and advances the
	// definition's watermark to occurrence in one database transaction. The
	// watermark write is conditional on its current value so two overlapping
	// generator instances cannot double-generate; returns
	// domainerror.ErrStaleWatermark when the condition fails.
	MaterializeOccurrence(ctx context.Context, recurring *entity.RecurringTransaction, occurrence time.Time, transaction *entity.Transaction) error
}
