// Package scheduler hosts the background workers: the recurring transaction
// generator and the budget/goal alert evaluator.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/application/usecase/recurring"
	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// Generator materializes due occurrences of recurring transaction
// definitions. Each definition carries a watermark (LastGeneratedDate) that
// only advances together with a successful insert, so missed ticks are backed
// up on the next pass and a repeated pass generates nothing new.
type Generator struct {
	recurringRepo adapter.RecurringRepository
	clock         adapter.Clock
	interval      time.Duration

	// mu guards against a tick overlapping a still-running pass.
	mu sync.Mutex
}

// NewGenerator creates a new Generator instance.
func NewGenerator(recurringRepo adapter.RecurringRepository, clock adapter.Clock, interval time.Duration) *Generator {
	return &Generator{
		recurringRepo: recurringRepo,
		clock:         clock,
		interval:      interval,
	}
}

// Start begins the generator loop. It blocks until the context is cancelled.
func (g *Generator) Start(ctx context.Context) {
	slog.Info("Recurring generator started", "interval", g.interval)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	g.RunPass(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Recurring generator shutting down")
			return
		case <-ticker.C:
			g.RunPass(ctx)
		}
	}
}

// RunPass executes one generation pass. A pass that is still running when the
// next tick fires is not run twice.
func (g *Generator) RunPass(ctx context.Context) {
	if !g.mu.TryLock() {
		slog.Debug("Generator pass still running, skipping tick")
		return
	}
	defer g.mu.Unlock()

	today := g.clock.Now()

	definitions, err := g.recurringRepo.FindActive(ctx, today)
	if err != nil {
		slog.Error("Failed to load active recurring definitions", "error", err)
		return
	}

	for _, def := range definitions {
		select {
		case <-ctx.Done():
			return
		default:
		}
		g.generateFor(ctx, def, today)
	}
}

// generateFor materializes every due occurrence of one definition in
// chronological order. A failure stops this definition for the pass; the
// watermark stays put and the occurrence is retried next tick.
func (g *Generator) generateFor(ctx context.Context, def *entity.RecurringTransaction, today time.Time) {
	logger := slog.With("recurring_id", def.ID, "user_id", def.UserID)

	occurrences := recurring.OccurrencesDue(def, today)
	if len(occurrences) == 0 {
		return
	}

	logger.Debug("Materializing recurring occurrences", "count", len(occurrences))

	for _, occurrence := range occurrences {
		txn := entity.NewTransaction(
			def.UserID,
			occurrence,
			def.Description,
			def.Amount,
			def.Type,
			def.CategoryID,
			"",
		)
		txn.RecurringID = &def.ID

		err := g.recurringRepo.MaterializeOccurrence(ctx, def, occurrence, txn)
		if err != nil {
			if errors.Is(err, domainerror.ErrStaleWatermark) {
				// Another instance generated past this point.
				logger.Debug("Watermark already advanced, yielding", "occurrence", occurrence)
				return
			}
			logger.Error("Failed to materialize occurrence",
				"occurrence", occurrence,
				"error", err,
			)
			return
		}

		logger.Info("Generated recurring transaction",
			"transaction_id", txn.ID,
			"occurrence", occurrence.Format("2006-01-02"),
		)
	}
}
