package domain

import "time"

// DateWindow computes the ordered list of bookable dates starting from the
// server's current day. When skipWeekends is set, Saturdays and Sundays are
// skipped and the window extends into the following week (today itself is
// always included so a booking made on a weekend stays visible).
func DateWindow(now time.Time, days int, skipWeekends bool) []time.Time {
	if days <= 0 {
		days = DefaultWindowDays
	}

	dates := make([]time.Time, 0, days)
	current := Midnight(now)

	dates = append(dates, current)
	for len(dates) < days {
		current = current.AddDate(0, 0, 1)
		if skipWeekends && isWeekend(current) {
			continue
		}
		dates = append(dates, current)
	}

	return dates
}

// InWindow reports whether date falls inside the bookable window.
// Comparison is by calendar day, not by instant: a date parsed in UTC
// must match a window computed from a clock in any other zone, so each
// value is read in its own location.
func InWindow(date time.Time, window []time.Time) bool {
	for _, d := range window {
		if SameDay(d, date) {
			return true
		}
	}
	return false
}

// Midnight truncates a timestamp to the start of its day, preserving the
// location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
