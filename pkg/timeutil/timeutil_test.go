package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2024-05-01"))
	assert.True(t, IsISODate("1999-12-31"))

	assert.False(t, IsISODate("2024-5-1"))
	assert.False(t, IsISODate("2024-05-01T14:00"))
	assert.False(t, IsISODate("Monday"))
	assert.False(t, IsISODate(""))
}

func TestIsClock(t *testing.T) {
	assert.True(t, IsClock("00:00"))
	assert.True(t, IsClock("09:30"))
	assert.True(t, IsClock("23:59"))

	assert.False(t, IsClock("24:00"))
	assert.False(t, IsClock("9:30"))
	assert.False(t, IsClock("09:60"))
	assert.False(t, IsClock("0930"))
}

func TestDatePortion(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-05-01", "2024-05-01", true},
		{"2024-05-01T14:00", "2024-05-01", true},
		{"2024-05-01 14:00", "2024-05-01", true},
		{"not-a-date", "", false},
		{"2024-13-40", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := DatePortion(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestClockPortion(t *testing.T) {
	clock, ok := ClockPortion("2024-05-01T14:30")
	require.True(t, ok)
	assert.Equal(t, "14:30", clock)

	clock, ok = ClockPortion("2024-05-01 08:05")
	require.True(t, ok)
	assert.Equal(t, "08:05", clock)

	_, ok = ClockPortion("2024-05-01")
	assert.False(t, ok)

	_, ok = ClockPortion("2024-05-01T9:00")
	assert.False(t, ok)
}

func TestParseWeekday(t *testing.T) {
	wd, ok := ParseWeekday("Monday")
	require.True(t, ok)
	assert.Equal(t, time.Monday, wd)

	wd, ok = ParseWeekday("  sUnDaY ")
	require.True(t, ok)
	assert.Equal(t, time.Sunday, wd)

	_, ok = ParseWeekday("Mon")
	assert.False(t, ok)

	_, ok = ParseWeekday("2024-05-01")
	assert.False(t, ok)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	b := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)
	c := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestAddDays_CrossesMonthBoundary(t *testing.T) {
	jan31 := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-01", DateKey(AddDays(jan31, 1)))
}

func TestFractionalDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.InDelta(t, 1.0, FractionalDaysBetween(a, a.Add(24*time.Hour)), 1e-9)
	assert.InDelta(t, 0.5, FractionalDaysBetween(a, a.Add(12*time.Hour)), 1e-9)

	// Order of arguments does not matter.
	assert.InDelta(t, 1.0, FractionalDaysBetween(a.Add(24*time.Hour), a), 1e-9)
}

func TestMonthDays(t *testing.T) {
	days, err := MonthDays("2024-02")
	require.NoError(t, err)
	require.Len(t, days, 29) // leap year
	assert.Equal(t, "2024-02-01", DateKey(days[0]))
	assert.Equal(t, "2024-02-29", DateKey(days[28]))

	days, err = MonthDays("2023-02")
	require.NoError(t, err)
	assert.Len(t, days, 28)

	_, err = MonthDays("February 2024")
	assert.Error(t, err)
}
