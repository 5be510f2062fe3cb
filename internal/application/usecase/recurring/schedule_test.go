// Package recurring contains recurring-transaction use cases and the
// occurrence schedule logic consumed by the generator.
package recurring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetly/backend/internal/domain/entity"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func monthlyDef(start time.Time, dayOfMonth int) *entity.RecurringTransaction {
	day := dayOfMonth
	return entity.NewRecurringTransaction(
		uuid.New(),
		"Rent",
		decimal.NewFromInt(1200),
		entity.TransactionTypeExpense,
		nil,
		entity.FrequencyMonthly,
		start,
		nil,
		&day,
		nil,
	)
}

func TestOccurrencesDue_MonthlyBackfill(t *testing.T) {
	def := monthlyDef(date(2024, time.January, 15), 15)
	today := date(2024, time.April, 15)

	got := OccurrencesDue(def, today)

	want := []time.Time{
		date(2024, time.January, 15),
		date(2024, time.February, 15),
		date(2024, time.March, 15),
		date(2024, time.April, 15),
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestOccurrencesDue_MonthLengthClamping(t *testing.T) {
	// Day 31 in a non-leap February matches February 28.
	def := monthlyDef(date(2023, time.January, 31), 31)
	today := date(2023, time.March, 1)

	got := OccurrencesDue(def, today)

	want := []time.Time{
		date(2023, time.January, 31),
		date(2023, time.February, 28),
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	t.Run("leap year matches February 29", func(t *testing.T) {
		def := monthlyDef(date(2024, time.January, 31), 31)
		got := OccurrencesDue(def, date(2024, time.February, 29))
		if len(got) != 2 || !got[1].Equal(date(2024, time.February, 29)) {
			t.Fatalf("expected Jan 31 and Feb 29, got %v", got)
		}
	})
}

func TestOccurrencesDue_WatermarkResumes(t *testing.T) {
	def := monthlyDef(date(2024, time.January, 15), 15)
	watermark := date(2024, time.February, 15)
	def.LastGeneratedDate = &watermark

	got := OccurrencesDue(def, date(2024, time.April, 15))

	if len(got) != 2 {
		t.Fatalf("expected 2 occurrences after the watermark, got %d: %v", len(got), got)
	}
	if !got[0].Equal(date(2024, time.March, 15)) || !got[1].Equal(date(2024, time.April, 15)) {
		t.Errorf("unexpected occurrences: %v", got)
	}

	t.Run("watermark at today yields nothing", func(t *testing.T) {
		caughtUp := date(2024, time.April, 15)
		def.LastGeneratedDate = &caughtUp
		if got := OccurrencesDue(def, caughtUp); len(got) != 0 {
			t.Errorf("expected no occurrences, got %v", got)
		}
	})
}

func TestOccurrencesDue_EndDateTerminates(t *testing.T) {
	def := monthlyDef(date(2024, time.January, 15), 15)
	end := date(2024, time.February, 1)
	def.EndDate = &end

	got := OccurrencesDue(def, date(2024, time.March, 1))

	if len(got) != 1 || !got[0].Equal(date(2024, time.January, 15)) {
		t.Fatalf("expected only the January occurrence, got %v", got)
	}
}

func TestOccurrencesDue_InactiveSkipped(t *testing.T) {
	def := monthlyDef(date(2024, time.January, 15), 15)
	def.IsActive = false

	if got := OccurrencesDue(def, date(2024, time.April, 15)); got != nil {
		t.Errorf("expected nil for inactive definition, got %v", got)
	}
}

func TestOccurrencesDue_Daily(t *testing.T) {
	def := monthlyDef(date(2024, time.March, 1), 1)
	def.Frequency = entity.FrequencyDaily
	def.DayOfMonth = nil

	got := OccurrencesDue(def, date(2024, time.March, 5))

	if len(got) != 5 {
		t.Fatalf("expected 5 daily occurrences, got %d", len(got))
	}
	for i, d := range got {
		if !d.Equal(date(2024, time.March, i+1)) {
			t.Errorf("occurrence %d: got %s", i, d)
		}
	}
}

func TestOccurrencesDue_Weekly(t *testing.T) {
	// 2024-03-01 is a Friday; Mondays due are Mar 4, 11, 18.
	def := monthlyDef(date(2024, time.March, 1), 1)
	def.Frequency = entity.FrequencyWeekly
	def.DayOfMonth = nil
	monday := time.Monday
	def.DayOfWeek = &monday

	got := OccurrencesDue(def, date(2024, time.March, 18))

	want := []time.Time{
		date(2024, time.March, 4),
		date(2024, time.March, 11),
		date(2024, time.March, 18),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestOccurrencesDue_Yearly(t *testing.T) {
	def := monthlyDef(date(2022, time.June, 10), 10)
	def.Frequency = entity.FrequencyYearly
	def.DayOfMonth = nil

	got := OccurrencesDue(def, date(2024, time.July, 1))

	want := []time.Time{
		date(2022, time.June, 10),
		date(2023, time.June, 10),
		date(2024, time.June, 10),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	t.Run("leap day start clamps in non-leap years", func(t *testing.T) {
		def := monthlyDef(date(2024, time.February, 29), 29)
		def.Frequency = entity.FrequencyYearly
		def.DayOfMonth = nil

		got := OccurrencesDue(def, date(2025, time.March, 1))
		if len(got) != 2 || !got[1].Equal(date(2025, time.February, 28)) {
			t.Fatalf("expected Feb 29 2024 and Feb 28 2025, got %v", got)
		}
	})
}

func TestValidateSchedule(t *testing.T) {
	day := 15
	monday := time.Monday
	start := date(2024, time.January, 1)

	t.Run("monthly requires day of month", func(t *testing.T) {
		err := ValidateSchedule(entity.FrequencyMonthly, nil, nil, start, nil)
		if err == nil {
			t.Fatal("expected error for monthly without day of month")
		}
	})

	t.Run("day of month out of range rejected", func(t *testing.T) {
		bad := 32
		err := ValidateSchedule(entity.FrequencyMonthly, &bad, nil, start, nil)
		if err == nil {
			t.Fatal("expected error for day of month 32")
		}
	})

	t.Run("weekly requires day of week", func(t *testing.T) {
		err := ValidateSchedule(entity.FrequencyWeekly, nil, nil, start, nil)
		if err == nil {
			t.Fatal("expected error for weekly without day of week")
		}
	})

	t.Run("end before start rejected", func(t *testing.T) {
		end := date(2023, time.December, 1)
		err := ValidateSchedule(entity.FrequencyDaily, nil, nil, start, &end)
		if err == nil {
			t.Fatal("expected error for end date before start date")
		}
	})

	t.Run("unknown frequency rejected", func(t *testing.T) {
		err := ValidateSchedule(entity.RecurringFrequency("fortnightly"), nil, nil, start, nil)
		if err == nil {
			t.Fatal("expected error for unknown frequency")
		}
	})

	t.Run("valid schedules accepted", func(t *testing.T) {
		if err := ValidateSchedule(entity.FrequencyMonthly, &day, nil, start, nil); err != nil {
			t.Errorf("monthly: unexpected error: %v", err)
		}
		if err := ValidateSchedule(entity.FrequencyWeekly, nil, &monday, start, nil); err != nil {
			t.Errorf("weekly: unexpected error: %v", err)
		}
		if err := ValidateSchedule(entity.FrequencyDaily, nil, nil, start, nil); err != nil {
			t.Errorf("daily: unexpected error: %v", err)
		}
		if err := ValidateSchedule(entity.FrequencyYearly, nil, nil, start, nil); err != nil {
			t.Errorf("yearly: unexpected error: %v", err)
		}
	})
}
