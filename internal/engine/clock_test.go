package engine

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	if got := DateKey(testBase); got != "2025-03-05" {
		t.Fatalf("DateKey=%q, want 2025-03-05", got)
	}
}

func TestWeekKey(t *testing.T) {
	cases := []struct {
		day  time.Time
		want string
	}{
		{time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), "2025-03-03"},  // Monday maps to itself
		{time.Date(2025, time.March, 5, 23, 59, 0, 0, time.UTC), "2025-03-03"}, // Wednesday
		{time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC), "2025-03-03"},  // Sunday belongs to the week behind it
		{time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), "2025-03-10"},  // next Monday starts a new week
	}
	for _, c := range cases {
		if got := WeekKey(c.day); got != c.want {
			t.Fatalf("WeekKey(%s)=%q, want %q", c.day.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(testBase); got != "2025-03" {
		t.Fatalf("MonthKey=%q, want 2025-03", got)
	}
	dec := time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)
	if got := MonthKey(dec); got != "2024-12" {
		t.Fatalf("MonthKey=%q, want 2024-12", got)
	}
}
