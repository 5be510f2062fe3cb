// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budgetly/backend/internal/domain/entity"
)

// CreateRecurringRequest represents the request body for creating a
// recurring transaction definition.
type CreateRecurringRequest struct {
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required,oneof=expense income"`
	CategoryID  *string `json:"category_id,omitempty"`
	Frequency   string  `json:"frequency" binding:"required,oneof=daily weekly monthly yearly"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     *string `json:"end_date,omitempty"`
	DayOfMonth  *int    `json:"day_of_month,omitempty" binding:"omitempty,min=1,max=31"`
	DayOfWeek   *int    `json:"day_of_week,omitempty" binding:"omitempty,min=0,max=6"`
}

// UpdateRecurringRequest represents the request body for updating a
// recurring definition. The schedule shape is immutable; deactivate and
// create a new definition to change it.
type UpdateRecurringRequest struct {
	Description *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount      *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
	EndDate     *string  `json:"end_date,omitempty"`
	ClearEnd    bool     `json:"clear_end,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// RecurringResponse represents a recurring definition in API responses.
type RecurringResponse struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	Description       string            `json:"description"`
	Amount            string            `json:"amount"`
	Type              string            `json:"type"`
	CategoryID        *string           `json:"category_id,omitempty"`
	Category          *CategoryResponse `json:"category,omitempty"`
	Frequency         string            `json:"frequency"`
	StartDate         string            `json:"start_date"`
	EndDate           *string           `json:"end_date,omitempty"`
	DayOfMonth        *int              `json:"day_of_month,omitempty"`
	DayOfWeek         *int              `json:"day_of_week,omitempty"`
	IsActive          bool              `json:"is_active"`
	LastGeneratedDate *string           `json:"last_generated_date,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// RecurringListResponse represents the response for listing recurring definitions.
type RecurringListResponse struct {
	Recurring []RecurringResponse `json:"recurring_transactions"`
}

// ToRecurringResponse converts a domain RecurringTransaction entity to a
// RecurringResponse DTO.
func ToRecurringResponse(r *entity.RecurringTransaction) RecurringResponse {
	response := RecurringResponse{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		Description: r.Description,
		Amount:      r.Amount.String(),
		Type:        string(r.Type),
		Frequency:   string(r.Frequency),
		StartDate:   r.StartDate.Format("2006-01-02"),
		DayOfMonth:  r.DayOfMonth,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.CategoryID != nil {
		categoryIDStr := r.CategoryID.String()
		response.CategoryID = &categoryIDStr
	}
	if r.EndDate != nil {
		dateStr := r.EndDate.Format("2006-01-02")
		response.EndDate = &dateStr
	}
	if r.DayOfWeek != nil {
		weekday := int(*r.DayOfWeek)
		response.DayOfWeek = &weekday
	}
	if r.LastGeneratedDate != nil {
		dateStr := r.LastGeneratedDate.Format("2006-01-02")
		response.LastGeneratedDate = &dateStr
	}

	return response
}

// ToRecurringListResponse converts recurring definitions with categories to
// a RecurringListResponse.
func ToRecurringListResponse(items []*entity.RecurringWithCategory) RecurringListResponse {
	recurring := make([]RecurringResponse, len(items))
	for i, item := range items {
		response := ToRecurringResponse(item.Recurring)
		if item.Category != nil {
			catResponse := ToCategoryResponse(item.Category)
			response.Category = &catResponse
		}
		recurring[i] = response
	}
	return RecurringListResponse{
		Recurring: recurring,
	}
}
