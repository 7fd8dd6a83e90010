// Package timeutil provides the calendar-date and clock-time vocabulary shared
// by the agenda engine, the syllabus tracker, and the HTTP layer.
// Dates on the wire are ISO yyyy-MM-dd strings, times are zero-padded 24h HH:mm
// strings (so lexicographic order equals chronological order).
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date/time formats.
const (
	// FormatDate is the wire date format (yyyy-MM-dd).
	FormatDate = "2006-01-02"
	// FormatClock is the wire time-of-day format (HH:mm, zero-padded 24h).
	FormatClock = "15:04"
	// FormatDateTime is the combined format used by deadline timestamps.
	FormatDateTime = "2006-01-02T15:04"
	// FormatMonth is the month format used by the month-agenda query.
	FormatMonth = "2006-01"
)

// EndOfDayClock is the display time assigned to items that carry a date but no
// time of day (assignments, todos).
const EndOfDayClock = "23:59"

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// IsISODate reports whether s is exactly a yyyy-MM-dd date string.
// This is the discriminator between an exact-date and a weekday-name
// recurrence on the wire.
func IsISODate(s string) bool {
	return isoDateRe.MatchString(s)
}

// IsClock reports whether s is a valid zero-padded 24h HH:mm string.
func IsClock(s string) bool {
	return clockRe.MatchString(s)
}

// DateKey returns the yyyy-MM-dd key for a time, in its own location.
func DateKey(t time.Time) string {
	return t.Format(FormatDate)
}

// ParseDate parses a yyyy-MM-dd string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(FormatDate, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: invalid date %q: %w", s, err)
	}
	return t, nil
}

// DatePortion extracts the yyyy-MM-dd prefix from an ISO date string that may
// carry a time component ("2024-05-01" or "2024-05-01T14:00").
// The second return value is false when the string has no valid date prefix;
// callers in the agenda path drop such items rather than erroring.
func DatePortion(s string) (string, bool) {
	if len(s) < len(FormatDate) {
		return "", false
	}
	prefix := s[:len(FormatDate)]
	if !isoDateRe.MatchString(prefix) {
		return "", false
	}
	if _, err := ParseDate(prefix); err != nil {
		return "", false
	}
	return prefix, true
}

// ClockPortion extracts the HH:mm time of day from an ISO datetime string.
// Returns false when the string is date-only or the time part is malformed.
func ClockPortion(s string) (string, bool) {
	// "2006-01-02T15:04..." - the clock starts right after the date separator.
	const start = len(FormatDate) + 1
	if len(s) < start+len("15:04") {
		return "", false
	}
	if s[len(FormatDate)] != 'T' && s[len(FormatDate)] != ' ' {
		return "", false
	}
	clock := s[start : start+len("15:04")]
	if !clockRe.MatchString(clock) {
		return "", false
	}
	return clock, true
}

// ParseWeekday maps an English weekday name ("Monday".."Sunday") to a
// time.Weekday. Matching is case-insensitive. Returns false for anything else.
func ParseWeekday(name string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	default:
		return 0, false
	}
}

// WeekdayName returns the English weekday name for a time.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// FractionalDaysBetween returns the absolute elapsed time between two
// instants, in fractional days. The absolute value guards against clock skew
// between the writer of a timestamp and the reader.
func FractionalDaysBetween(a, b time.Time) float64 {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return d.Hours() / 24
}

// MonthDays returns every day of the month given as "yyyy-MM", in order.
func MonthDays(month string) ([]time.Time, error) {
	first, err := time.ParseInLocation(FormatMonth, month, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("timeutil: invalid month %q: %w", month, err)
	}
	next := first.AddDate(0, 1, 0)
	days := make([]time.Time, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}
