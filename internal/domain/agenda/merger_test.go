package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/internal/domain/task"
)

func mustTodo(t *testing.T, id, text string, due *string) *task.Todo {
	t.Helper()
	todo, err := task.NewTodo(task.NewTodoParams{ID: id, UserID: "u1", Text: text, DueDate: due})
	require.NoError(t, err)
	return todo
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func itemIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestDetailed_WeeklyBlockRecursEveryMatchingWeekday(t *testing.T) {
	monday := mustBlock(t, "b1", "Algorithms", "Monday")
	m := NewMerger(Snapshot{Blocks: []*schedule.Block{monday}})

	now := day(2024, 1, 1)

	// 2024-01-01, -08, -15 are Mondays, across into February too.
	for _, d := range []time.Time{day(2024, 1, 1), day(2024, 1, 8), day(2024, 1, 15), day(2024, 2, 5)} {
		items := m.Detailed(d, now)
		require.Len(t, items, 1, "expected block on %s", d.Format("2006-01-02"))
		assert.Equal(t, "b1", items[0].ID)
	}

	// 2024-01-02 is a Tuesday.
	assert.Empty(t, m.Detailed(day(2024, 1, 2), now))
}

func TestDetailed_OneOffBlockOccursExactlyOnce(t *testing.T) {
	// 2024-01-01 is a Monday; the block must not recur the following Monday.
	once := mustBlock(t, "b1", "Guest lecture", "2024-01-01")
	m := NewMerger(Snapshot{Blocks: []*schedule.Block{once}})

	now := day(2024, 1, 1)
	assert.Len(t, m.Detailed(day(2024, 1, 1), now), 1)
	assert.Empty(t, m.Detailed(day(2024, 1, 8), now))
}

func TestDetailed_TodosOnlyOnTodaysView(t *testing.T) {
	due := "2024-01-01"
	todo := mustTodo(t, "t1", "Buy milk", &due)
	m := NewMerger(Snapshot{Todos: []*task.Todo{todo}})

	// Rendering Jan 1 while it is Jan 1: visible.
	items := m.Detailed(day(2024, 1, 1), day(2024, 1, 1))
	require.Len(t, items, 1)
	assert.Equal(t, ItemTodo, items[0].Kind)
	assert.Equal(t, "23:59", items[0].Time)

	// Rendering Jan 1 after the day has passed: the stale todo vanishes.
	assert.Empty(t, m.Detailed(day(2024, 1, 1), day(2024, 1, 2)))

	// Rendering tomorrow's view while it is today: nothing either.
	assert.Empty(t, m.Detailed(day(2024, 1, 2), day(2024, 1, 1)))
}

func TestDetailed_CompletedAndInboxTodosHidden(t *testing.T) {
	due := "2024-01-01"
	done := mustTodo(t, "t1", "Done already", &due)
	done.Toggle()
	inbox := mustTodo(t, "t2", "Someday", nil)

	m := NewMerger(Snapshot{Todos: []*task.Todo{done, inbox}})
	assert.Empty(t, m.Detailed(day(2024, 1, 1), day(2024, 1, 1)))
}

func TestDetailed_OrderedByTimeWithSourceOrderTies(t *testing.T) {
	// 2024-01-01 is a Monday. A 09:00 lecture, a date-only assignment
	// (renders 23:59) and a 14:00 exam must come out lecture, exam,
	// assignment.
	snap := Snapshot{
		Blocks:      []*schedule.Block{mustBlock(t, "b1", "Algorithms", "Monday")},
		Assignments: []*deadline.Assignment{mustAssignment(t, "a1", "Essay", "2024-01-01")},
		Exams:       []*deadline.Exam{mustExam(t, "e1", "Midterm", "2024-01-01T14:00")},
	}

	items := NewMerger(snap).Detailed(day(2024, 1, 1), day(2024, 1, 1))
	assert.Equal(t, []string{"b1", "e1", "a1"}, itemIDs(items))
	assert.Equal(t, "09:00", items[0].Time)
	assert.Equal(t, "14:00", items[1].Time)
	assert.Equal(t, "23:59", items[2].Time)
}

func TestDetailed_TieKeepsSourceOrder(t *testing.T) {
	// An assignment and a todo both at 23:59: the assignment comes first.
	due := "2024-01-01"
	snap := Snapshot{
		Assignments: []*deadline.Assignment{mustAssignment(t, "a1", "Essay", "2024-01-01")},
		Todos:       []*task.Todo{mustTodo(t, "t1", "Buy milk", &due)},
	}

	items := NewMerger(snap).Detailed(day(2024, 1, 1), day(2024, 1, 1))
	assert.Equal(t, []string{"a1", "t1"}, itemIDs(items))
}

func TestDetailed_AssignmentTimeOfDayUsedWhenPresent(t *testing.T) {
	snap := Snapshot{
		Assignments: []*deadline.Assignment{mustAssignment(t, "a1", "Essay", "2024-01-01T08:30")},
	}

	items := NewMerger(snap).Detailed(day(2024, 1, 1), day(2024, 1, 1))
	require.Len(t, items, 1)
	assert.Equal(t, "08:30", items[0].Time)
}

func TestCompact_MergesIndexAndWeeklyBlocks(t *testing.T) {
	snap := Snapshot{
		Blocks: []*schedule.Block{
			mustBlock(t, "b-weekly", "Algorithms", "Monday"),
			mustBlock(t, "b-once", "Guest lecture", "2024-01-01"),
		},
		Assignments: []*deadline.Assignment{mustAssignment(t, "a1", "Essay", "2024-01-01")},
	}
	m := NewMerger(snap)

	// Jan 1 is a Monday: weekly block, one-off block and assignment.
	entries := m.Compact(day(2024, 1, 1))
	assert.Len(t, entries, 3)
	assert.Equal(t, 1, countByID(entries, "b-weekly"))
	assert.Equal(t, 1, countByID(entries, "b-once"))
	assert.Equal(t, 1, countByID(entries, "a1"))

	// The following Monday only the weekly block remains.
	entries = m.Compact(day(2024, 1, 8))
	assert.Len(t, entries, 1)
	assert.Equal(t, "b-weekly", entries[0].ID)
}
