package recalc

import (
	"fmt"
	"time"
)

// MonthLayout is the canonical "YYYY-MM" format for payment months.
// The string form sorts lexicographically in calendar order, which the
// repositories rely on for previous/future month queries.
const MonthLayout = "2006-01"

// ParseMonth parses a "YYYY-MM" payment month
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid payment month %q: %w", month, err)
	}
	return t, nil
}

// PreviousMonth returns the calendar month immediately before the given one
func PreviousMonth(month string) (string, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, -1, 0).Format(MonthLayout), nil
}

// NextMonth returns the calendar month immediately after the given one
func NextMonth(month string) (string, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 1, 0).Format(MonthLayout), nil
}

// DueDate returns the due date for a payment month given the society's
// configured due day (e.g. the 10th of the month)
func DueDate(month string, dueDay int) (time.Time, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), dueDay, 0, 0, 0, 0, time.UTC), nil
}
