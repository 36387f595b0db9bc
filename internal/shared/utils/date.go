package utils

import "time"

// CalendarDate returns the calendar day t falls on in loc, as midnight UTC.
// Calendar dates are compared as UTC midnights so day arithmetic never meets a DST shift.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from a to b (negative when b is before a).
// Both must be calendar dates from CalendarDate or ParseDate.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// ParseDate reads a YYYY-MM-DD string as a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
