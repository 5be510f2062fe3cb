// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budgetly/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=100"`
	CategoryID      *string `json:"category_id,omitempty"`
	TargetAmount    float64 `json:"target_amount" binding:"required,gt=0"`
	TargetDate      *string `json:"target_date,omitempty"`
	AlertOnAchieved *bool   `json:"alert_on_achieved,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TargetAmount    *float64 `json:"target_amount,omitempty" binding:"omitempty,gt=0"`
	TargetDate      *string  `json:"target_date,omitempty"`
	ClearTargetDate bool     `json:"clear_target_date,omitempty"`
	AlertOnAchieved *bool    `json:"alert_on_achieved,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	CategoryID       *string   `json:"category_id,omitempty"`
	TargetAmount     string    `json:"target_amount"`
	CurrentAmount    string    `json:"current_amount"`
	Percentage       float64   `json:"percentage"`
	TargetDate       *string   `json:"target_date,omitempty"`
	AlertOnAchieved  bool      `json:"alert_on_achieved"`
	AchievedNotified bool      `json:"achieved_notified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	response := GoalResponse{
		ID:               g.ID.String(),
		UserID:           g.UserID.String(),
		Name:             g.Name,
		TargetAmount:     g.TargetAmount.String(),
		CurrentAmount:    "0",
		AlertOnAchieved:  g.AlertOnAchieved,
		AchievedNotified: g.AchievedNotified,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}

	if g.CategoryID != nil {
		categoryIDStr := g.CategoryID.String()
		response.CategoryID = &categoryIDStr
	}
	if g.TargetDate != nil {
		dateStr := g.TargetDate.Format("2006-01-02")
		response.TargetDate = &dateStr
	}

	return response
}

// ToGoalResponseWithProgress converts a GoalWithProgress to a GoalResponse DTO.
func ToGoalResponseWithProgress(item *entity.GoalWithProgress) GoalResponse {
	response := ToGoalResponse(item.Goal)
	response.CurrentAmount = item.CurrentAmount.String()
	response.Percentage = item.Percentage
	return response
}

// ToGoalListResponse converts goals with progress to a GoalListResponse.
func ToGoalListResponse(items []*entity.GoalWithProgress) GoalListResponse {
	goals := make([]GoalResponse, len(items))
	for i, item := range items {
		goals[i] = ToGoalResponseWithProgress(item)
	}
	return GoalListResponse{
		Goals: goals,
	}
}
