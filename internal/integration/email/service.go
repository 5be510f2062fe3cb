// Package email provides email queueing and delivery via Resend.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// Service implements adapter.Notifier by queueing notification emails. A
// notification counts as sent once the job row is durably written; the
// worker handles delivery and retries from there.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email notification service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// SendBudgetAlert queues a budget threshold alert email.
func (s *Service) SendBudgetAlert(ctx context.Context, input adapter.BudgetAlertInput) error {
	period := fmt.Sprintf("%s %d", time.Month(input.Month), input.Year)
	subject := fmt.Sprintf("Budget alert: %s at %d%% - Budgetly", input.CategoryName, input.Threshold)

	templateData := map[string]interface{}{
		"user_name":     input.UserName,
		"category_name": input.CategoryName,
		"period":        period,
		"spent":         input.Spent.StringFixed(2),
		"budget_amount": input.BudgetAmount.StringFixed(2),
		"percentage":    fmt.Sprintf("%.1f", input.Percentage),
		"threshold":     fmt.Sprintf("%d", input.Threshold),
	}

	job := entity.NewEmailJob(
		entity.TemplateBudgetAlert,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue budget alert email",
			err,
		)
	}

	return nil
}

// SendGoalAchieved queues a goal achievement email.
func (s *Service) SendGoalAchieved(ctx context.Context, input adapter.GoalAchievedInput) error {
	subject := fmt.Sprintf("Goal achieved: %s - Budgetly", input.GoalName)

	templateData := map[string]interface{}{
		"user_name":      input.UserName,
		"goal_name":      input.GoalName,
		"current_amount": input.CurrentAmount.StringFixed(2),
		"target_amount":  input.TargetAmount.StringFixed(2),
	}

	job := entity.NewEmailJob(
		entity.TemplateGoalAchieved,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue goal achieved email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.Notifier.
var _ adapter.Notifier = (*Service)(nil)
