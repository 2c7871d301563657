package billing

import "time"

// MonthOf truncates t to the first instant of its calendar month in UTC.
// All reference-month comparisons in this package operate on truncated values.
func MonthOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthWindow returns the half-open interval [startOf(M), startOf(M+1))
// for the month containing t.
func MonthWindow(t time.Time) (start, end time.Time) {
	start = MonthOf(t)
	return start, start.AddDate(0, 1, 0)
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return MonthOf(a).Equal(MonthOf(b))
}
