package engine

import "time"

// Calendar boundary helpers. All keys use the wall clock's local date; the
// reset scheduler compares these strings against its stored markers.

// DateKey returns the calendar date of t as "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekKey returns the date key of the Monday starting t's ISO week.
// Sunday maps to the Monday six days earlier, not the upcoming one.
func WeekKey(t time.Time) string {
	diff := int(t.Weekday()) - int(time.Monday)
	if diff < 0 {
		diff += 7 // Sunday
	}
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, -diff)
	return DateKey(monday)
}

// MonthKey returns the month bucket of t as "YYYY-MM", used for spend totals.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
