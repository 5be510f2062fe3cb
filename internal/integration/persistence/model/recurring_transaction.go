// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budgetly/backend/internal/domain/entity"
)

// RecurringTransactionModel represents the recurring_transactions table in
// the database. LastGeneratedDate is the generation watermark; it is only
// written through the conditional update in the repository.
type RecurringTransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`

	Frequency  string     `gorm:"type:varchar(10);not null"`
	StartDate  time.Time  `gorm:"type:date;not null"`
	EndDate    *time.Time `gorm:"type:date"`
	DayOfMonth *int       `gorm:"type:integer"`
	DayOfWeek  *int       `gorm:"type:integer"`

	IsActive          bool       `gorm:"default:true;index"`
	LastGeneratedDate *time.Time `gorm:"type:date"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the RecurringTransactionModel.
func (RecurringTransactionModel) TableName() string {
	return "recurring_transactions"
}

// ToEntity converts a RecurringTransactionModel to a domain entity.
func (m *RecurringTransactionModel) ToEntity() *entity.RecurringTransaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var dayOfWeek *time.Weekday
	if m.DayOfWeek != nil {
		weekday := time.Weekday(*m.DayOfWeek)
		dayOfWeek = &weekday
	}

	return &entity.RecurringTransaction{
		ID:                m.ID,
		UserID:            m.UserID,
		Description:       m.Description,
		Amount:            m.Amount,
		Type:              entity.TransactionType(m.Type),
		CategoryID:        m.CategoryID,
		Frequency:         entity.RecurringFrequency(m.Frequency),
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		DayOfMonth:        m.DayOfMonth,
		DayOfWeek:         dayOfWeek,
		IsActive:          m.IsActive,
		LastGeneratedDate: m.LastGeneratedDate,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

// ToEntityWithCategory converts the model with its Category preloaded.
func (m *RecurringTransactionModel) ToEntityWithCategory() *entity.RecurringWithCategory {
	result := &entity.RecurringWithCategory{
		Recurring: m.ToEntity(),
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// RecurringFromEntity creates a RecurringTransactionModel from a domain entity.
func RecurringFromEntity(recurring *entity.RecurringTransaction) *RecurringTransactionModel {
	var deletedAt gorm.DeletedAt
	if recurring.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *recurring.DeletedAt, Valid: true}
	}

	var dayOfWeek *int
	if recurring.DayOfWeek != nil {
		weekday := int(*recurring.DayOfWeek)
		dayOfWeek = &weekday
	}

	return &RecurringTransactionModel{
		ID:                recurring.ID,
		UserID:            recurring.UserID,
		Description:       recurring.Description,
		Amount:            recurring.Amount,
		Type:              string(recurring.Type),
		CategoryID:        recurring.CategoryID,
		Frequency:         string(recurring.Frequency),
		StartDate:         recurring.StartDate,
		EndDate:           recurring.EndDate,
		DayOfMonth:        recurring.DayOfMonth,
		DayOfWeek:         dayOfWeek,
		IsActive:          recurring.IsActive,
		LastGeneratedDate: recurring.LastGeneratedDate,
		CreatedAt:         recurring.CreatedAt,
		UpdatedAt:         recurring.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}
