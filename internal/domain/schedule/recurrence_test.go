package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecurrence_WeekdayName(t *testing.T) {
	rec, err := ParseRecurrence("Monday")
	require.NoError(t, err)

	assert.Equal(t, RecurWeekly, rec.Mode)
	assert.Equal(t, time.Monday, rec.Weekday)
	assert.Equal(t, "Monday", rec.DayString())
}

func TestParseRecurrence_CaseInsensitive(t *testing.T) {
	rec, err := ParseRecurrence("friday")
	require.NoError(t, err)

	assert.Equal(t, RecurWeekly, rec.Mode)
	assert.Equal(t, time.Friday, rec.Weekday)
}

func TestParseRecurrence_ExactDate(t *testing.T) {
	rec, err := ParseRecurrence("2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, RecurOnce, rec.Mode)
	assert.Equal(t, 2025, rec.Date.Year())
	assert.Equal(t, time.March, rec.Date.Month())
	assert.Equal(t, 10, rec.Date.Day())
	assert.Equal(t, "2025-03-10", rec.DayString())
}

func TestParseRecurrence_DateShapeWinsOverWeekday(t *testing.T) {
	// 2025-03-10 is a Monday; a weekly block would fire every week but a
	// dated block fires exactly once. The date shape must take priority.
	rec, err := ParseRecurrence("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, RecurOnce, rec.Mode)

	nextMonday := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	assert.False(t, rec.Matches(nextMonday))
	assert.True(t, rec.Matches(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestParseRecurrence_Invalid(t *testing.T) {
	cases := []string{"", "Mondy", "someday", "2025-3-10", "10-03-2025", "2025/03/10"}
	for _, input := range cases {
		_, err := ParseRecurrence(input)
		assert.ErrorIs(t, err, ErrInvalidRecurrence, "input %q", input)
	}
}

func TestRecurrence_WeeklyMatches(t *testing.T) {
	rec := WeeklyRecurrence(time.Wednesday)

	assert.True(t, rec.Matches(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)))
	assert.True(t, rec.Matches(time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)))
	assert.False(t, rec.Matches(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)))
}

func TestNewBlock_Validation(t *testing.T) {
	valid := NewBlockParams{
		ID:        "b1",
		UserID:    "u1",
		Title:     "Algorithms",
		Kind:      KindLecture,
		Day:       "Monday",
		StartTime: "09:00",
		EndTime:   "10:30",
		Location:  "Room 204",
	}

	block, err := NewBlock(valid)
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", block.Title)
	assert.Equal(t, "Monday", block.Recurrence.DayString())

	t.Run("bad kind", func(t *testing.T) {
		p := valid
		p.Kind = Kind("Seminar")
		_, err := NewBlock(p)
		assert.ErrorIs(t, err, ErrInvalidKind)
	})

	t.Run("bad clock", func(t *testing.T) {
		p := valid
		p.StartTime = "9:00"
		_, err := NewBlock(p)
		assert.ErrorIs(t, err, ErrInvalidClock)
	})

	t.Run("empty title", func(t *testing.T) {
		p := valid
		p.Title = "   "
		_, err := NewBlock(p)
		assert.ErrorIs(t, err, ErrInvalidTitle)
	})

	t.Run("bad day", func(t *testing.T) {
		p := valid
		p.Day = "Mondays"
		_, err := NewBlock(p)
		assert.ErrorIs(t, err, ErrInvalidRecurrence)
	})
}

func TestBlock_Clone(t *testing.T) {
	block, err := NewBlock(NewBlockParams{
		ID: "b1", UserID: "u1", Title: "Lab", Kind: KindLab,
		Day: "Tuesday", StartTime: "14:00", EndTime: "16:00",
	})
	require.NoError(t, err)

	clone := block.Clone()
	clone.Title = "Changed"

	assert.Equal(t, "Lab", block.Title)
	assert.Equal(t, "Changed", clone.Title)
}
