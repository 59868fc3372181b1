package dateutil

import (
	"time"
)

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to midnight UTC of its calendar day, dropping clock and zone.
func Day(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// AddMonths adds months to a date, clamping the day to the end of a shorter
// target month (Jan 31 + 1 month is Feb 28/29, not Mar 3).
func AddMonths(date time.Time, months int) time.Time {
	total := int(date.Month()) - 1 + months
	year := date.Year() + total/12
	m := total % 12
	if m < 0 {
		m += 12
		year--
	}
	month := time.Month(m + 1)
	day := date.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// AddYears adds a specified number of years to a date with the same end of
// month clamping as AddMonths (Feb 29 + 1 year is Feb 28).
func AddYears(date time.Time, years int) time.Time {
	return AddMonths(date, 12*years)
}

// Boundaries cuts the span starting at start into n periods of monthsPer
// months each and returns the n+1 boundary dates. Every boundary is
// computed from start, so clamping never drifts.
func Boundaries(start time.Time, n, monthsPer int) []time.Time {
	if n < 0 {
		n = 0
	}
	out := make([]time.Time, n+1)
	for i := range out {
		out[i] = AddMonths(start, i*monthsPer)
	}
	return out
}

// DaysBetween returns the whole days from a to b, negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// BeginningOfYear returns the first day of the year for a given date
func BeginningOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 1, 1, 0, 0, 0, 0, date.Location())
}
