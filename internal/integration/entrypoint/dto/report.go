// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budgetly/backend/internal/application/usecase/report"
)

// CategoryBreakdownResponse represents one category in the expense breakdown.
type CategoryBreakdownResponse struct {
	CategoryID   *string `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name"`
	Amount       string  `json:"amount"`
	Percentage   float64 `json:"percentage"`
	Count        int     `json:"count"`
}

// MonthlySummaryResponse represents the monthly summary report.
type MonthlySummaryResponse struct {
	Month      int                         `json:"month"`
	Year       int                         `json:"year"`
	Income     string                      `json:"income"`
	Expenses   string                      `json:"expenses"`
	Net        string                      `json:"net"`
	Categories []CategoryBreakdownResponse `json:"categories"`
}

// InsightsResponse represents the AI spending commentary.
type InsightsResponse struct {
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	Commentary  string    `json:"commentary"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ToMonthlySummaryResponse converts a MonthlySummaryOutput to its response DTO.
func ToMonthlySummaryResponse(output *report.MonthlySummaryOutput) MonthlySummaryResponse {
	categories := make([]CategoryBreakdownResponse, len(output.Categories))
	for i, item := range output.Categories {
		response := CategoryBreakdownResponse{
			CategoryName: item.CategoryName,
			Amount:       item.Amount.String(),
			Percentage:   item.Percentage,
			Count:        item.Count,
		}
		if item.CategoryID != nil {
			categoryIDStr := item.CategoryID.String()
			response.CategoryID = &categoryIDStr
		}
		categories[i] = response
	}

	return MonthlySummaryResponse{
		Month:      output.Month,
		Year:       output.Year,
		Income:     output.Income.String(),
		Expenses:   output.Expenses.String(),
		Net:        output.Net.String(),
		Categories: categories,
	}
}
