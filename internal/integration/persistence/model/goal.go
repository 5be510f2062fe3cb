// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budgetly/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(100);not null"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TargetDate   *time.Time      `gorm:"type:date"`

	AlertOnAchieved  bool `gorm:"default:true"`
	AchievedNotified bool `gorm:"default:false;index"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Goal{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		CategoryID:       m.CategoryID,
		TargetAmount:     m.TargetAmount,
		TargetDate:       m.TargetDate,
		AlertOnAchieved:  m.AlertOnAchieved,
		AchievedNotified: m.AchievedNotified,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	return &GoalModel{
		ID:               goal.ID,
		UserID:           goal.UserID,
		Name:             goal.Name,
		CategoryID:       goal.CategoryID,
		TargetAmount:     goal.TargetAmount,
		TargetDate:       goal.TargetDate,
		AlertOnAchieved:  goal.AlertOnAchieved,
		AchievedNotified: goal.AchievedNotified,
		CreatedAt:        goal.CreatedAt,
		UpdatedAt:        goal.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}
