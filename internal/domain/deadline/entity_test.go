package deadline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment_Defaults(t *testing.T) {
	a, err := NewAssignment(NewAssignmentParams{
		ID: "a1", UserID: "u1", Title: "Essay", DueDate: "2025-04-02",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, a.Priority)
	assert.Equal(t, StatusPending, a.Status)
	assert.True(t, a.IsOpen())
}

func TestNewAssignment_Validation(t *testing.T) {
	t.Run("rejects missing date prefix", func(t *testing.T) {
		_, err := NewAssignment(NewAssignmentParams{
			ID: "a1", UserID: "u1", Title: "Essay", DueDate: "next friday",
		})
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})

	t.Run("rejects priority out of range", func(t *testing.T) {
		_, err := NewAssignment(NewAssignmentParams{
			ID: "a1", UserID: "u1", Title: "Essay", DueDate: "2025-04-02", Priority: 5,
		})
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewAssignment(NewAssignmentParams{
			ID: "a1", UserID: "u1", Title: "Essay", DueDate: "2025-04-02", Status: "done",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewAssignment(NewAssignmentParams{
			ID: "a1", UserID: "u1", Title: "   ", DueDate: "2025-04-02",
		})
		assert.ErrorIs(t, err, ErrInvalidTitle)
	})
}

func TestAssignment_DueDayAndClock(t *testing.T) {
	withTime, err := NewAssignment(NewAssignmentParams{
		ID: "a1", UserID: "u1", Title: "Lab report", DueDate: "2025-04-02T17:00",
	})
	require.NoError(t, err)

	day, ok := withTime.DueDay()
	require.True(t, ok)
	assert.Equal(t, "2025-04-02", day)
	assert.Equal(t, "17:00", withTime.DueClock())

	dateOnly, err := NewAssignment(NewAssignmentParams{
		ID: "a2", UserID: "u1", Title: "Essay", DueDate: "2025-04-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "23:59", dateOnly.DueClock())
}

func TestAssignment_IsOpen(t *testing.T) {
	a, err := NewAssignment(NewAssignmentParams{
		ID: "a1", UserID: "u1", Title: "Essay", DueDate: "2025-04-02", Status: StatusSubmitted,
	})
	require.NoError(t, err)
	assert.False(t, a.IsOpen())

	require.NoError(t, a.Apply(NewAssignmentParams{
		Title: "Essay", DueDate: "2025-04-02", Status: StatusPending,
	}))
	assert.True(t, a.IsOpen())
}

func TestExam_DayAndClock(t *testing.T) {
	e, err := NewExam(NewExamParams{
		ID: "e1", UserID: "u1", Title: "Final", Course: "Math", Date: "2025-06-12T09:00",
		Location: "Hall B",
	})
	require.NoError(t, err)

	day, ok := e.Day()
	require.True(t, ok)
	assert.Equal(t, "2025-06-12", day)
	assert.Equal(t, "09:00", e.Clock())
}

func TestAssignment_CloneIsIndependent(t *testing.T) {
	a, err := NewAssignment(NewAssignmentParams{
		ID: "a1", UserID: "u1", Title: "Essay", DueDate: "2025-04-02",
	})
	require.NoError(t, err)

	clone := a.Clone()
	clone.Title = "Changed"

	assert.Equal(t, "Essay", a.Title)
}
