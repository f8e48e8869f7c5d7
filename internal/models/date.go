package models

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate reads an ISO date string, also accepting a full RFC 3339
// timestamp, and normalizes it to midnight UTC. Returns false for empty or
// malformed input.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), true
	}
	return time.Time{}, false
}

// DateOf truncates a timestamp to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole-day distance from today to the given date
// string (negative when past). Returns false for missing or malformed dates.
func DaysUntil(s string, today time.Time) (int, bool) {
	target, ok := ParseDate(s)
	if !ok {
		return 0, false
	}
	days := int(target.Sub(DateOf(today)).Hours() / 24)
	return days, true
}

// Timestamp formats the instant the way record timestamps are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
