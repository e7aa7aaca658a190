package utils

import "time"

// StartOfDay truncates t to midnight in its own location. Loan dates are
// calendar dates; all day arithmetic happens on truncated values.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole-day difference to - from. Negative when to
// precedes from.
func DaysBetween(from, to time.Time) int64 {
	from = StartOfDay(from)
	to = StartOfDay(to)
	return int64(to.Sub(from).Hours() / 24)
}

// DaysLate returns how many whole days asOf is past due, never negative.
func DaysLate(due, asOf time.Time) int64 {
	days := DaysBetween(due, asOf)
	if days < 0 {
		return 0
	}
	return days
}
