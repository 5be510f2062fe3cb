package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/budgetly/backend/internal/integration/persistence/model"
)

// registerSchedulerSteps registers steps that drive the background loops
// directly instead of waiting for their tickers.
func registerSchedulerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the current date is "([^"]*)"$`, theCurrentDateIs)
	ctx.Step(`^the recurring generator runs$`, theRecurringGeneratorRuns)
	ctx.Step(`^the alert evaluator runs$`, theAlertEvaluatorRuns)
	ctx.Step(`^the email worker processes pending jobs$`, theEmailWorkerProcessesPendingJobs)
	ctx.Step(`^(\d+) email jobs? should be queued$`, emailJobsShouldBeQueued)
	ctx.Step(`^(\d+) emails? should have been sent$`, emailsShouldHaveBeenSent)
	ctx.Step(`^an email with subject containing "([^"]*)" should have been sent$`, anEmailWithSubjectContainingShouldHaveBeenSent)
}

func theCurrentDateIs(ctx context.Context, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	// Noon keeps day arithmetic unambiguous regardless of direction.
	tc.clock.SetNow(parsed.Add(12 * time.Hour))
	return nil
}

func theRecurringGeneratorRuns(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.generator.RunPass(context.Background())
	return nil
}

func theAlertEvaluatorRuns(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.alertEvaluator.RunPass(context.Background())
	return nil
}

func theEmailWorkerProcessesPendingJobs(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.emailWorker.ProcessNow(context.Background())
	return nil
}

func emailJobsShouldBeQueued(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var count int64
	if err := tc.db.DbConn.Model(&model.EmailQueueModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count email jobs: %w", err)
	}
	if int(count) != expected {
		return fmt.Errorf("expected %d queued email jobs, got %d", expected, count)
	}
	return nil
}

func emailsShouldHaveBeenSent(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if len(tc.emailSender.SentEmails) != expected {
		return fmt.Errorf("expected %d sent emails, got %d", expected, len(tc.emailSender.SentEmails))
	}
	return nil
}

func anEmailWithSubjectContainingShouldHaveBeenSent(ctx context.Context, fragment string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	for _, sent := range tc.emailSender.SentEmails {
		if strings.Contains(sent.Subject, fragment) {
			return nil
		}
	}
	return fmt.Errorf("no sent email has a subject containing %q (%d sent)", fragment, len(tc.emailSender.SentEmails))
}
