// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
	"github.com/budgetly/backend/internal/integration/persistence/model"
)

// recurringRepository implements the adapter.RecurringRepository interface.
type recurringRepository struct {
	db *gorm.DB
}

// NewRecurringRepository creates a new recurring transaction repository instance.
func NewRecurringRepository(db *gorm.DB) adapter.RecurringRepository {
	return &recurringRepository{
		db: db,
	}
}

// Create creates a new recurring definition in the database.
func (r *recurringRepository) Create(ctx context.Context, recurring *entity.RecurringTransaction) error {
	recurringModel := model.RecurringFromEntity(recurring)
	return r.db.WithContext(ctx).Create(recurringModel).Error
}

// FindByID retrieves a recurring definition by its ID.
func (r *recurringRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTransaction, error) {
	var recurringModel model.RecurringTransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&recurringModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringNotFound
		}
		return nil, result.Error
	}
	return recurringModel.ToEntity(), nil
}

// FindByUserID retrieves all recurring definitions for a given user.
func (r *recurringRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringWithCategory, error) {
	var recurringModels []model.RecurringTransactionModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	definitions := make([]*entity.RecurringWithCategory, len(recurringModels))
	for i, rm := range recurringModels {
		definitions[i] = rm.ToEntityWithCategory()
	}
	return definitions, nil
}

// FindActive retrieves all active definitions across users whose start date
// is not after asOf.
func (r *recurringRepository) FindActive(ctx context.Context, asOf time.Time) ([]*entity.RecurringTransaction, error) {
	var recurringModels []model.RecurringTransactionModel
	result := r.db.WithContext(ctx).
		Where("is_active = true AND start_date <= ?", asOf).
		Order("created_at ASC").
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	definitions := make([]*entity.RecurringTransaction, len(recurringModels))
	for i, rm := range recurringModels {
		definitions[i] = rm.ToEntity()
	}
	return definitions, nil
}

// Update updates an existing recurring definition in the database.
func (r *recurringRepository) Update(ctx context.Context, recurring *entity.RecurringTransaction) error {
	recurringModel := model.RecurringFromEntity(recurring)
	result := r.db.WithContext(ctx).Save(recurringModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringNotFound
	}
	return nil
}

// Delete soft-deletes a recurring definition from the database.
func (r *recurringRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringTransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringNotFound
	}
	return nil
}

// MaterializeOccurrence inserts the generated transaction and advances the
// definition's watermark in one database transaction. The watermark update is
// conditional on the value the caller read, so a definition generated by a
// concurrent pass fails the condition and the whole transaction rolls back.
func (r *recurringRepository) MaterializeOccurrence(ctx context.Context, recurring *entity.RecurringTransaction, occurrence time.Time, transaction *entity.Transaction) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactionModel := model.TransactionFromEntity(transaction)
		if err := tx.Create(transactionModel).Error; err != nil {
			return err
		}

		query := tx.Model(&model.RecurringTransactionModel{}).
			Where("id = ?", recurring.ID)
		if recurring.LastGeneratedDate == nil {
			query = query.Where("last_generated_date IS NULL")
		} else {
			query = query.Where("last_generated_date = ?", *recurring.LastGeneratedDate)
		}

		result := query.Update("last_generated_date", occurrence)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrStaleWatermark
		}
		return nil
	})
	if err != nil {
		return err
	}

	advanced := occurrence
	recurring.LastGeneratedDate = &advanced
	return nil
}
