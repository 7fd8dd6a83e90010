package agenda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/internal/domain/schedule"
)

func mustBlock(t *testing.T, id, title, day string) *schedule.Block {
	t.Helper()
	block, err := schedule.NewBlock(schedule.NewBlockParams{
		ID: id, UserID: "u1", Title: title, Kind: schedule.KindLecture,
		Day: day, StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)
	return block
}

func mustAssignment(t *testing.T, id, title, due string) *deadline.Assignment {
	t.Helper()
	a, err := deadline.NewAssignment(deadline.NewAssignmentParams{
		ID: id, UserID: "u1", Title: title, DueDate: due,
	})
	require.NoError(t, err)
	return a
}

func mustExam(t *testing.T, id, title, date string) *deadline.Exam {
	t.Helper()
	e, err := deadline.NewExam(deadline.NewExamParams{
		ID: id, UserID: "u1", Title: title, Date: date,
	})
	require.NoError(t, err)
	return e
}

func countByID(entries []Entry, id string) int {
	n := 0
	for _, e := range entries {
		if e.ID == id {
			n++
		}
	}
	return n
}

func TestBuildIndex_EveryDatedItemAppearsExactlyOnce(t *testing.T) {
	snap := Snapshot{
		Blocks: []*schedule.Block{
			mustBlock(t, "b-once", "Guest lecture", "2024-03-15"),
			mustBlock(t, "b-weekly", "Algorithms", "Monday"),
		},
		Assignments: []*deadline.Assignment{
			mustAssignment(t, "a1", "Essay", "2024-03-15T17:00"),
			mustAssignment(t, "a2", "Lab report", "2024-03-20"),
		},
		Exams: []*deadline.Exam{
			mustExam(t, "e1", "Midterm", "2024-03-15"),
		},
	}

	idx := BuildIndex(snap)

	march15 := idx.Lookup("2024-03-15")
	assert.Equal(t, 1, countByID(march15, "b-once"))
	assert.Equal(t, 1, countByID(march15, "a1"))
	assert.Equal(t, 1, countByID(march15, "e1"))
	assert.Len(t, march15, 3)

	march20 := idx.Lookup("2024-03-20")
	assert.Equal(t, 1, countByID(march20, "a2"))
	assert.Len(t, march20, 1)

	// Weekly blocks have no date key; they are matched by weekday at query
	// time, never indexed.
	for key, entries := range idx {
		assert.Zero(t, countByID(entries, "b-weekly"), "weekly block indexed under %s", key)
	}
}

func TestBuildIndex_DropsUnparseableDates(t *testing.T) {
	// A due date can rot after creation (imports, manual edits). The index
	// must skip it, not fail.
	bad := mustAssignment(t, "a-bad", "Broken", "2024-03-15")
	bad.DueDate = "not-a-date"

	idx := BuildIndex(Snapshot{Assignments: []*deadline.Assignment{bad}})
	assert.Empty(t, idx)
}

func TestBuildIndex_EmptySnapshot(t *testing.T) {
	idx := BuildIndex(Snapshot{})
	assert.Empty(t, idx)
	assert.Nil(t, idx.Lookup("2024-03-15"))
}
