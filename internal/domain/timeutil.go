package domain

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeLayouts accepted for scheduledAt and range filters, most specific first.
// Layouts without an offset are interpreted in the caller's location.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime parses an ISO 8601 timestamp
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date-time %q, expected ISO 8601", ErrValidation, s)
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return t, nil
}

// IsDateOnly reports whether s looks like YYYY-MM-DD without a time part
func IsDateOnly(s string) bool {
	return len(strings.TrimSpace(s)) == len(DateFormat)
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day (microsecond precision, as stored by PostgreSQL)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Microsecond)
}

// DayBounds returns the inclusive bounds of t's calendar day
func DayBounds(t time.Time) (time.Time, time.Time) {
	return StartOfDay(t), EndOfDay(t)
}

// WeekBounds returns the inclusive bounds of t's Monday-Sunday week
func WeekBounds(t time.Time) (time.Time, time.Time) {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	monday := StartOfDay(t).AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7).Add(-time.Microsecond)
}
