// Package recurring contains recurring-transaction use cases and the
// occurrence schedule logic consumed by the generator.
package recurring

import (
	"time"

	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// ValidateSchedule checks the frequency-specific schedule invariants.
// Malformed definitions are rejected here, at creation time, and never reach
// the generator.
func ValidateSchedule(
	frequency entity.RecurringFrequency,
	dayOfMonth *int,
	dayOfWeek *time.Weekday,
	startDate time.Time,
	endDate *time.Time,
) error {
	switch frequency {
	case entity.FrequencyDaily, entity.FrequencyYearly:
		// No extra schedule fields.
	case entity.FrequencyWeekly:
		if dayOfWeek == nil {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeMissingDayOfWeek,
				"day of week is required for weekly frequency",
				domainerror.ErrMissingDayOfWeek,
			)
		}
	case entity.FrequencyMonthly:
		if dayOfMonth == nil {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeMissingDayOfMonth,
				"day of month is required for monthly frequency",
				domainerror.ErrMissingDayOfMonth,
			)
		}
		if *dayOfMonth < 1 || *dayOfMonth > 31 {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidDayOfMonth,
				"day of month must be between 1 and 31",
				domainerror.ErrInvalidDayOfMonth,
			)
		}
	default:
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be 'daily', 'weekly', 'monthly', or 'yearly'",
			domainerror.ErrInvalidFrequency,
		)
	}

	if endDate != nil && endDate.Before(startDate) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringDateRange,
			"end date must not precede start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return nil
}

// OccurrencesDue returns the due dates of a definition strictly after its
// watermark (or from the start date when the watermark is nil), up to and
// including today, in chronological order. The end date caps the range; an
// inactive definition has no due occurrences.
func OccurrencesDue(def *entity.RecurringTransaction, today time.Time) []time.Time {
	if !def.IsActive {
		return nil
	}

	until := midnight(today)
	if def.EndDate != nil {
		end := midnight(*def.EndDate)
		if end.Before(until) {
			until = end
		}
	}

	from := midnight(def.StartDate)
	if def.LastGeneratedDate != nil {
		from = midnight(*def.LastGeneratedDate).AddDate(0, 0, 1)
	}
	if from.After(until) {
		return nil
	}

	switch def.Frequency {
	case entity.FrequencyDaily:
		return dailyOccurrences(from, until)
	case entity.FrequencyWeekly:
		return weeklyOccurrences(from, until, *def.DayOfWeek)
	case entity.FrequencyMonthly:
		return monthlyOccurrences(from, until, midnight(def.StartDate), *def.DayOfMonth)
	case entity.FrequencyYearly:
		return yearlyOccurrences(from, until, midnight(def.StartDate))
	}
	return nil
}

func dailyOccurrences(from, until time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(until); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func weeklyOccurrences(from, until time.Time, weekday time.Weekday) []time.Time {
	// Advance to the first matching weekday, then step a week at a time.
	offset := (int(weekday) - int(from.Weekday()) + 7) % 7
	first := from.AddDate(0, 0, offset)

	var dates []time.Time
	for d := first; !d.After(until); d = d.AddDate(0, 0, 7) {
		dates = append(dates, d)
	}
	return dates
}

func monthlyOccurrences(from, until, startDate time.Time, dayOfMonth int) []time.Time {
	var dates []time.Time
	for cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(until); cursor = cursor.AddDate(0, 1, 0) {
		occurrence := time.Date(cursor.Year(), cursor.Month(), clampDay(dayOfMonth, cursor), 0, 0, 0, 0, time.UTC)
		if occurrence.Before(from) || occurrence.Before(startDate) || occurrence.After(until) {
			continue
		}
		dates = append(dates, occurrence)
	}
	return dates
}

func yearlyOccurrences(from, until, startDate time.Time) []time.Time {
	var dates []time.Time
	for year := from.Year(); year <= until.Year(); year++ {
		anniversary := time.Date(year, startDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		anniversary = time.Date(year, startDate.Month(), clampDay(startDate.Day(), anniversary), 0, 0, 0, 0, time.UTC)
		if anniversary.Before(from) || anniversary.Before(startDate) || anniversary.After(until) {
			continue
		}
		dates = append(dates, anniversary)
	}
	return dates
}

// clampDay clamps a configured day-of-month to the length of the month
// containing anchor, so day 31 matches Feb 28 (29 in leap years).
func clampDay(day int, anchor time.Time) int {
	last := time.Date(anchor.Year(), anchor.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}

// midnight normalizes a timestamp to its UTC calendar date.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
