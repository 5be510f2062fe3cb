// Package scheduler hosts the background workers: the recurring transaction
// generator and the budget/goal alert evaluator.
package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// fakeClock returns a fixed instant.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// fakeRecurringRepo is an in-memory RecurringRepository with the same
// watermark semantics as the real one: the advance is conditional on the
// occurrence being strictly past the current watermark.
type fakeRecurringRepo struct {
	definitions []*entity.RecurringTransaction
	generated   []*entity.Transaction
}

func (r *fakeRecurringRepo) Create(ctx context.Context, recurring *entity.RecurringTransaction) error {
	r.definitions = append(r.definitions, recurring)
	return nil
}

func (r *fakeRecurringRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTransaction, error) {
	for _, def := range r.definitions {
		if def.ID == id {
			return def, nil
		}
	}
	return nil, domainerror.ErrRecurringNotFound
}

func (r *fakeRecurringRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringWithCategory, error) {
	return nil, nil
}

func (r *fakeRecurringRepo) FindActive(ctx context.Context, asOf time.Time) ([]*entity.RecurringTransaction, error) {
	var active []*entity.RecurringTransaction
	for _, def := range r.definitions {
		if def.IsActive && !def.StartDate.After(asOf) {
			active = append(active, def)
		}
	}
	return active, nil
}

func (r *fakeRecurringRepo) Update(ctx context.Context, recurring *entity.RecurringTransaction) error {
	return nil
}

func (r *fakeRecurringRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *fakeRecurringRepo) MaterializeOccurrence(ctx context.Context, recurring *entity.RecurringTransaction, occurrence time.Time, transaction *entity.Transaction) error {
	if recurring.LastGeneratedDate != nil && !occurrence.After(*recurring.LastGeneratedDate) {
		return domainerror.ErrStaleWatermark
	}
	r.generated = append(r.generated, transaction)
	watermark := occurrence
	recurring.LastGeneratedDate = &watermark
	return nil
}

func monthlyDefinition(start time.Time, day int) *entity.RecurringTransaction {
	return entity.NewRecurringTransaction(
		uuid.New(),
		"Rent",
		decimal.RequireFromString("1200"),
		entity.TransactionTypeExpense,
		nil,
		entity.FrequencyMonthly,
		start,
		nil,
		&day,
		nil,
	)
}

func TestGenerator_Backfill(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRecurringRepo{}
	repo.definitions = append(repo.definitions, monthlyDefinition(start, 15))

	clock := &fakeClock{now: time.Date(2024, 4, 20, 9, 0, 0, 0, time.UTC)}
	gen := NewGenerator(repo, clock, time.Hour)

	gen.RunPass(context.Background())

	if len(repo.generated) != 4 {
		t.Fatalf("expected 4 backfilled occurrences (Jan-Apr 15th), got %d", len(repo.generated))
	}
	for i, want := range []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
	} {
		if !repo.generated[i].Date.Equal(want) {
			t.Errorf("occurrence %d: expected %v, got %v", i, want, repo.generated[i].Date)
		}
	}

	def := repo.definitions[0]
	if def.LastGeneratedDate == nil || !def.LastGeneratedDate.Equal(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected watermark at Apr 15, got %v", def.LastGeneratedDate)
	}
}

func TestGenerator_PassIdempotence(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRecurringRepo{}
	repo.definitions = append(repo.definitions, monthlyDefinition(start, 15))

	clock := &fakeClock{now: time.Date(2024, 4, 20, 9, 0, 0, 0, time.UTC)}
	gen := NewGenerator(repo, clock, time.Hour)

	gen.RunPass(context.Background())
	firstCount := len(repo.generated)

	gen.RunPass(context.Background())
	if len(repo.generated) != firstCount {
		t.Fatalf("second pass generated %d extra transactions", len(repo.generated)-firstCount)
	}
}

func TestGenerator_TransactionCarriesTemplate(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	categoryID := uuid.New()
	def := monthlyDefinition(start, 10)
	def.CategoryID = &categoryID

	repo := &fakeRecurringRepo{definitions: []*entity.RecurringTransaction{def}}
	clock := &fakeClock{now: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)}
	gen := NewGenerator(repo, clock, time.Hour)

	gen.RunPass(context.Background())

	if len(repo.generated) != 1 {
		t.Fatalf("expected 1 generated transaction, got %d", len(repo.generated))
	}
	txn := repo.generated[0]
	if txn.Description != "Rent" {
		t.Errorf("expected description Rent, got %s", txn.Description)
	}
	if !txn.Amount.Equal(decimal.RequireFromString("1200")) {
		t.Errorf("expected amount 1200, got %s", txn.Amount)
	}
	if txn.Type != entity.TransactionTypeExpense {
		t.Errorf("expected expense type, got %s", txn.Type)
	}
	if txn.CategoryID == nil || *txn.CategoryID != categoryID {
		t.Errorf("expected category %s, got %v", categoryID, txn.CategoryID)
	}
	if txn.RecurringID == nil || *txn.RecurringID != def.ID {
		t.Errorf("expected recurring link %s, got %v", def.ID, txn.RecurringID)
	}
	if txn.UserID != def.UserID {
		t.Errorf("expected user %s, got %s", def.UserID, txn.UserID)
	}
}

func TestGenerator_InactiveAndFutureSkipped(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)}

	inactive := monthlyDefinition(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 15)
	inactive.IsActive = false
	future := monthlyDefinition(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 15)

	repo := &fakeRecurringRepo{definitions: []*entity.RecurringTransaction{inactive, future}}
	gen := NewGenerator(repo, clock, time.Hour)

	gen.RunPass(context.Background())

	if len(repo.generated) != 0 {
		t.Fatalf("expected no generated transactions, got %d", len(repo.generated))
	}
}
