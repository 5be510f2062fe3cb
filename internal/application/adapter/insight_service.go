// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InsightRequest carries the aggregates an insight is generated from.
type InsightRequest struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Categories  []CategorySpend
}

// InsightService generates a natural-language commentary on a spending period.
type InsightService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// Summarize produces a short commentary for the given aggregates.
	Summarize(ctx context.Context, request *InsightRequest) (string, error)
}
