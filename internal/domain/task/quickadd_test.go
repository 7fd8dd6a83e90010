package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quickAddToday = time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

func TestParseQuickAdd_TomorrowWithPriority(t *testing.T) {
	result := ParseQuickAdd("Buy milk tomorrow p1", quickAddToday)

	assert.Equal(t, "Buy milk", result.Text)
	require.NotNil(t, result.DueDate)
	assert.Equal(t, "2024-01-02", *result.DueDate)
	assert.Equal(t, 1, result.Priority)
}

func TestParseQuickAdd_Inbox(t *testing.T) {
	result := ParseQuickAdd("Write essay inbox", quickAddToday)

	assert.Equal(t, "Write essay", result.Text)
	assert.Nil(t, result.DueDate)
	assert.Equal(t, 4, result.Priority)
}

func TestParseQuickAdd_Defaults(t *testing.T) {
	result := ParseQuickAdd("Call mom", quickAddToday)

	assert.Equal(t, "Call mom", result.Text)
	require.NotNil(t, result.DueDate)
	assert.Equal(t, "2024-01-01", *result.DueDate)
	assert.Equal(t, 4, result.Priority)
}

func TestParseQuickAdd_NoDatePhrase(t *testing.T) {
	result := ParseQuickAdd("Read paper no date p2", quickAddToday)

	assert.Equal(t, "Read paper", result.Text)
	assert.Nil(t, result.DueDate)
	assert.Equal(t, 2, result.Priority)
}

func TestParseQuickAdd_TodayKeywordStripped(t *testing.T) {
	result := ParseQuickAdd("Gym today p3", quickAddToday)

	assert.Equal(t, "Gym", result.Text)
	require.NotNil(t, result.DueDate)
	assert.Equal(t, "2024-01-01", *result.DueDate)
	assert.Equal(t, 3, result.Priority)
}

func TestParseQuickAdd_TodayWinsOverTomorrow(t *testing.T) {
	// "today" is checked first; "tomorrow" in the same line is left in the
	// text untouched.
	result := ParseQuickAdd("Prep for today and tomorrow", quickAddToday)

	assert.Equal(t, "Prep for and tomorrow", result.Text)
	require.NotNil(t, result.DueDate)
	assert.Equal(t, "2024-01-01", *result.DueDate)
}

func TestParseQuickAdd_InboxThenTomorrowOverwrites(t *testing.T) {
	// The date-keyword rule runs after the inbox rule unconditionally, so
	// "tomorrow" re-sets the date the inbox token just cleared. This ordering
	// is load-bearing for existing inputs.
	result := ParseQuickAdd("Plan trip inbox tomorrow", quickAddToday)

	assert.Equal(t, "Plan trip", result.Text)
	require.NotNil(t, result.DueDate)
	assert.Equal(t, "2024-01-02", *result.DueDate)
}

func TestParseQuickAdd_PriorityCaseInsensitive(t *testing.T) {
	result := ParseQuickAdd("Submit form P2", quickAddToday)

	assert.Equal(t, "Submit form", result.Text)
	assert.Equal(t, 2, result.Priority)
}

func TestParseQuickAdd_WholeWordOnly(t *testing.T) {
	// "p1" inside a word and "inbox" as a substring must not match.
	result := ParseQuickAdd("Read chp1 notes", quickAddToday)
	assert.Equal(t, "Read chp1 notes", result.Text)
	assert.Equal(t, 4, result.Priority)

	result = ParseQuickAdd("Clean inboxes", quickAddToday)
	assert.Equal(t, "Clean inboxes", result.Text)
	require.NotNil(t, result.DueDate)
}

func TestParseQuickAdd_WhitespaceCollapsed(t *testing.T) {
	result := ParseQuickAdd("  Buy   milk   tomorrow  ", quickAddToday)

	assert.Equal(t, "Buy milk", result.Text)
	require.NotNil(t, result.DueDate)
	assert.Equal(t, "2024-01-02", *result.DueDate)
}

func TestNewTodo_Validation(t *testing.T) {
	due := "2024-01-05"

	todo, err := NewTodo(NewTodoParams{ID: "t1", UserID: "u1", Text: "Read", DueDate: &due, Priority: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, todo.Priority)
	assert.True(t, todo.DueOn("2024-01-05"))
	assert.False(t, todo.DueOn("2024-01-06"))

	_, err = NewTodo(NewTodoParams{ID: "t2", UserID: "u1", Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyText)

	bad := "05-01-2024"
	_, err = NewTodo(NewTodoParams{ID: "t3", UserID: "u1", Text: "Read", DueDate: &bad})
	assert.ErrorIs(t, err, ErrInvalidDueDate)

	_, err = NewTodo(NewTodoParams{ID: "t4", UserID: "u1", Text: "Read", Priority: 9})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestTodo_CloneIsolatesDueDate(t *testing.T) {
	due := "2024-01-05"
	todo, err := NewTodo(NewTodoParams{ID: "t1", UserID: "u1", Text: "Read", DueDate: &due})
	require.NoError(t, err)

	clone := todo.Clone()
	*clone.DueDate = "2024-02-01"

	assert.Equal(t, "2024-01-05", *todo.DueDate)
}
