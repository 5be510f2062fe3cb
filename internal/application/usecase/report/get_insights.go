// Package report contains reporting and export use cases.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budgetly/backend/internal/application/adapter"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// GetInsightsInput represents the input for generating spending insights.
type GetInsightsInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// GetInsightsOutput represents the output of generating spending insights.
type GetInsightsOutput struct {
	Month       int
	Year        int
	Commentary  string
	GeneratedAt time.Time
}

// GetInsightsUseCase produces a natural-language commentary on one month of
// spending. It only aggregates; raw transactions never leave the system.
type GetInsightsUseCase struct {
	summary        *MonthlySummaryUseCase
	insightService adapter.InsightService
}

// NewGetInsightsUseCase creates a new GetInsightsUseCase instance.
func NewGetInsightsUseCase(summary *MonthlySummaryUseCase, insightService adapter.InsightService) *GetInsightsUseCase {
	return &GetInsightsUseCase{
		summary:        summary,
		insightService: insightService,
	}
}

// Execute generates the insight commentary.
func (uc *GetInsightsUseCase) Execute(ctx context.Context, input GetInsightsInput) (*GetInsightsOutput, error) {
	if uc.insightService == nil || !uc.insightService.IsAvailable() {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInsightsUnavailable,
			"insight service is not available",
			domainerror.ErrInsightsUnavailable,
		)
	}

	summary, err := uc.summary.Execute(ctx, MonthlySummaryInput{
		UserID: input.UserID,
		Month:  input.Month,
		Year:   input.Year,
	})
	if err != nil {
		return nil, err
	}

	start, end, err := monthBounds(input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	categories := make([]adapter.CategorySpend, 0, len(summary.Categories))
	for _, item := range summary.Categories {
		categories = append(categories, adapter.CategorySpend{
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			Total:        item.Amount,
			Count:        item.Count,
		})
	}

	commentary, err := uc.insightService.Summarize(ctx, &adapter.InsightRequest{
		PeriodStart: start,
		PeriodEnd:   end,
		Income:      summary.Income,
		Expenses:    summary.Expenses,
		Categories:  categories,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate insights: %w", err)
	}

	return &GetInsightsOutput{
		Month:       input.Month,
		Year:        input.Year,
		Commentary:  commentary,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
