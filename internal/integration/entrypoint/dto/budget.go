// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budgetly/backend/internal/application/usecase/budget"
	"github.com/budgetly/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID string  `json:"category_id" binding:"required,uuid"`
	Month      int     `json:"month" binding:"required,min=1,max=12"`
	Year       int     `json:"year" binding:"required,min=1970"`
	Amount     float64 `json:"amount" binding:"min=0"`

	Alert50Enabled  *bool `json:"alert_50_enabled,omitempty"`
	Alert80Enabled  *bool `json:"alert_80_enabled,omitempty"`
	Alert100Enabled *bool `json:"alert_100_enabled,omitempty"`
}

// UpdateBudgetRequest represents the request body for budget update. The
// (category, month, year) scope cannot change.
type UpdateBudgetRequest struct {
	Amount          *float64 `json:"amount,omitempty" binding:"omitempty,min=0"`
	Alert50Enabled  *bool    `json:"alert_50_enabled,omitempty"`
	Alert80Enabled  *bool    `json:"alert_80_enabled,omitempty"`
	Alert100Enabled *bool    `json:"alert_100_enabled,omitempty"`
}

// BudgetSnapshotResponse represents the derived analytics of one budget.
type BudgetSnapshotResponse struct {
	Spent           string  `json:"spent"`
	Remaining       string  `json:"remaining"`
	PercentageUsed  float64 `json:"percentage_used"`
	DaysElapsed     int     `json:"days_elapsed"`
	DaysRemaining   int     `json:"days_remaining"`
	BurnRate        string  `json:"burn_rate"`
	ProjectedSpend  string  `json:"projected_spend"`
	DailyBudget     string  `json:"daily_budget"`
	Status          string  `json:"status"`
	SuggestedBudget string  `json:"suggested_budget"`
	BudgetVariance  string  `json:"budget_variance"`
	Recommendation  string  `json:"recommendation"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID         string                  `json:"id"`
	UserID     string                  `json:"user_id"`
	CategoryID string                  `json:"category_id"`
	Category   *CategoryResponse       `json:"category,omitempty"`
	Month      int                     `json:"month"`
	Year       int                     `json:"year"`
	Amount     string                  `json:"amount"`
	Alerts     BudgetAlertsResponse    `json:"alerts"`
	Snapshot   *BudgetSnapshotResponse `json:"snapshot,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// BudgetAlertsResponse represents a budget's alert configuration and state.
type BudgetAlertsResponse struct {
	Alert50Enabled  bool `json:"alert_50_enabled"`
	Alert80Enabled  bool `json:"alert_80_enabled"`
	Alert100Enabled bool `json:"alert_100_enabled"`
	Alert50Sent     bool `json:"alert_50_sent"`
	Alert80Sent     bool `json:"alert_80_sent"`
	Alert100Sent    bool `json:"alert_100_sent"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:         b.ID.String(),
		UserID:     b.UserID.String(),
		CategoryID: b.CategoryID.String(),
		Month:      b.Month,
		Year:       b.Year,
		Amount:     b.Amount.String(),
		Alerts: BudgetAlertsResponse{
			Alert50Enabled:  b.Alert50Enabled,
			Alert80Enabled:  b.Alert80Enabled,
			Alert100Enabled: b.Alert100Enabled,
			Alert50Sent:     b.Alert50Sent,
			Alert80Sent:     b.Alert80Sent,
			Alert100Sent:    b.Alert100Sent,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBudgetSnapshotResponse converts a BudgetSnapshot to its response DTO.
func ToBudgetSnapshotResponse(s budget.BudgetSnapshot) BudgetSnapshotResponse {
	return BudgetSnapshotResponse{
		Spent:           s.Spent.String(),
		Remaining:       s.Remaining.String(),
		PercentageUsed:  s.PercentageUsed,
		DaysElapsed:     s.DaysElapsed,
		DaysRemaining:   s.DaysRemaining,
		BurnRate:        s.BurnRate.String(),
		ProjectedSpend:  s.ProjectedSpend.String(),
		DailyBudget:     s.DailyBudget.String(),
		Status:          string(s.Status),
		SuggestedBudget: s.SuggestedBudget.String(),
		BudgetVariance:  s.BudgetVariance.String(),
		Recommendation:  s.Recommendation,
	}
}

// ToBudgetListResponse converts a ListBudgetsOutput to BudgetListResponse.
func ToBudgetListResponse(output *budget.ListBudgetsOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, item := range output.Budgets {
		response := ToBudgetResponse(item.Budget)
		snapshot := ToBudgetSnapshotResponse(item.Snapshot)
		response.Snapshot = &snapshot
		if item.Category != nil {
			catResponse := ToCategoryResponse(item.Category)
			response.Category = &catResponse
		}
		budgets[i] = response
	}
	return BudgetListResponse{
		Budgets: budgets,
	}
}
