package schedule

import (
	"fmt"
	"time"

	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// RecurrenceMode discriminates the two recurrence variants.
type RecurrenceMode int

const (
	// RecurWeekly repeats every week on a fixed weekday.
	RecurWeekly RecurrenceMode = iota

	// RecurOnce occurs exactly once on a fixed calendar date.
	RecurOnce
)

// Recurrence is a tagged union: either a weekly weekday or a one-off date,
// never both. The wire form is a single "day" string; anything shaped like
// yyyy-MM-dd is a date, anything else must be an English weekday name.
type Recurrence struct {
	Mode    RecurrenceMode
	Weekday time.Weekday // valid when Mode == RecurWeekly
	Date    time.Time    // valid when Mode == RecurOnce, midnight UTC
}

// ParseRecurrence parses the wire "day" field into a Recurrence. The date
// shape is checked first: "2025-03-10" must never be tried as a weekday name.
func ParseRecurrence(day string) (Recurrence, error) {
	if timeutil.IsISODate(day) {
		date, err := timeutil.ParseDate(day)
		if err != nil {
			return Recurrence{}, fmt.Errorf("%w: %q", ErrInvalidRecurrence, day)
		}
		return Recurrence{Mode: RecurOnce, Date: date}, nil
	}

	wd, ok := timeutil.ParseWeekday(day)
	if !ok {
		return Recurrence{}, fmt.Errorf("%w: %q", ErrInvalidRecurrence, day)
	}
	return Recurrence{Mode: RecurWeekly, Weekday: wd}, nil
}

// WeeklyRecurrence builds a weekly recurrence directly.
func WeeklyRecurrence(wd time.Weekday) Recurrence {
	return Recurrence{Mode: RecurWeekly, Weekday: wd}
}

// OnceRecurrence builds a one-off recurrence directly.
func OnceRecurrence(date time.Time) Recurrence {
	return Recurrence{Mode: RecurOnce, Date: timeutil.StartOfDay(date)}
}

// Matches reports whether the recurrence lands on the given calendar day.
func (r Recurrence) Matches(date time.Time) bool {
	switch r.Mode {
	case RecurWeekly:
		return date.Weekday() == r.Weekday
	case RecurOnce:
		return timeutil.SameDay(r.Date, date)
	default:
		return false
	}
}

// IsWeekly reports whether the recurrence repeats weekly.
func (r Recurrence) IsWeekly() bool { return r.Mode == RecurWeekly }

// DayString returns the wire form of the recurrence: the weekday name for
// weekly blocks, the ISO date for one-off blocks.
func (r Recurrence) DayString() string {
	if r.Mode == RecurOnce {
		return r.Date.Format(timeutil.FormatDate)
	}
	return r.Weekday.String()
}
