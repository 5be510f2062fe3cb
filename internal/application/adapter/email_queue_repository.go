// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/budgetly/backend/internal/domain/entity"
)

// EmailQueueRepository defines the interface for email queue persistence.
type EmailQueueRepository interface {
	// Create adds a new email job to the queue.
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs retrieves up to limit pending jobs that are due for processing.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update updates an existing email job.
	Update(ctx context.Context, job *entity.EmailJob) error
}
