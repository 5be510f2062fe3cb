// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"time"

	"github.com/budgetly/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock using the wall clock in UTC.
type systemClock struct{}

// NewSystemClock creates a clock backed by time.Now.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current UTC time.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
