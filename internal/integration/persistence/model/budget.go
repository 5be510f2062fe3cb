// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budgetly/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database. The composite
// unique index enforces one budget per (user, category, month, year); soft
// deleted rows stay out of the way via the deleted_at column in the index.
type BudgetModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_scope"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_scope"`
	Month      int             `gorm:"not null;uniqueIndex:idx_budgets_scope"`
	Year       int             `gorm:"not null;uniqueIndex:idx_budgets_scope"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	Alert50Enabled  bool `gorm:"default:true"`
	Alert80Enabled  bool `gorm:"default:true"`
	Alert100Enabled bool `gorm:"default:true"`
	Alert50Sent     bool `gorm:"default:false"`
	Alert80Sent     bool `gorm:"default:false"`
	Alert100Sent    bool `gorm:"default:false"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index;uniqueIndex:idx_budgets_scope"` // Soft-delete support

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Budget{
		ID:              m.ID,
		UserID:          m.UserID,
		CategoryID:      m.CategoryID,
		Month:           m.Month,
		Year:            m.Year,
		Amount:          m.Amount,
		Alert50Enabled:  m.Alert50Enabled,
		Alert80Enabled:  m.Alert80Enabled,
		Alert100Enabled: m.Alert100Enabled,
		Alert50Sent:     m.Alert50Sent,
		Alert80Sent:     m.Alert80Sent,
		Alert100Sent:    m.Alert100Sent,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

// ToEntityWithCategory converts a BudgetModel with its Category to a
// BudgetWithCategory entity.
func (m *BudgetModel) ToEntityWithCategory() *entity.BudgetWithCategory {
	result := &entity.BudgetWithCategory{
		Budget: m.ToEntity(),
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	var deletedAt gorm.DeletedAt
	if budget.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *budget.DeletedAt, Valid: true}
	}

	return &BudgetModel{
		ID:              budget.ID,
		UserID:          budget.UserID,
		CategoryID:      budget.CategoryID,
		Month:           budget.Month,
		Year:            budget.Year,
		Amount:          budget.Amount,
		Alert50Enabled:  budget.Alert50Enabled,
		Alert80Enabled:  budget.Alert80Enabled,
		Alert100Enabled: budget.Alert100Enabled,
		Alert50Sent:     budget.Alert50Sent,
		Alert80Sent:     budget.Alert80Sent,
		Alert100Sent:    budget.Alert100Sent,
		CreatedAt:       budget.CreatedAt,
		UpdatedAt:       budget.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}
