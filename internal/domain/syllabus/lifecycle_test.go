package syllabus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_NextCycle(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusPending.Next())
	assert.Equal(t, StatusCompleted, StatusInProgress.Next())
	assert.Equal(t, StatusRevised, StatusCompleted.Next())
	assert.Equal(t, StatusPending, StatusRevised.Next())
}

func TestStatus_FourAdvancesReturnToStart(t *testing.T) {
	for _, start := range []Status{StatusPending, StatusInProgress, StatusCompleted, StatusRevised} {
		s := start
		for i := 0; i < 4; i++ {
			s = s.Next()
		}
		assert.Equal(t, start, s, "starting from %s", start)
	}
}

func TestParseStatus_UnknownFallsBackToPending(t *testing.T) {
	assert.Equal(t, StatusPending, ParseStatus("Archived"))
	assert.Equal(t, StatusPending, ParseStatus(""))
	assert.Equal(t, StatusCompleted, ParseStatus("Completed"))
}

func TestModule_AdvanceSetsLastStudiedAt(t *testing.T) {
	module, err := NewModule(NewModuleParams{ID: "m1", UserID: "u1", Title: "Graphs", Strength: 2})
	require.NoError(t, err)
	require.Nil(t, module.LastStudiedAt)

	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	module.Advance(now) // Pending -> InProgress
	assert.Equal(t, StatusInProgress, module.Status)
	assert.Nil(t, module.LastStudiedAt)

	module.Advance(now) // InProgress -> Completed
	assert.Equal(t, StatusCompleted, module.Status)
	require.NotNil(t, module.LastStudiedAt)
	assert.Equal(t, now, *module.LastStudiedAt)

	later := now.Add(48 * time.Hour)
	module.Advance(later) // Completed -> Revised
	assert.Equal(t, StatusRevised, module.Status)
	require.NotNil(t, module.LastStudiedAt)
	assert.Equal(t, later, *module.LastStudiedAt)

	module.Advance(later) // Revised -> Pending
	assert.Equal(t, StatusPending, module.Status)
	// The study timestamp survives the wrap back to Pending.
	assert.Equal(t, later, *module.LastStudiedAt)
}

func TestModule_ShowsRetention(t *testing.T) {
	module, err := NewModule(NewModuleParams{ID: "m1", UserID: "u1", Title: "Graphs"})
	require.NoError(t, err)

	now := time.Now().UTC()

	assert.False(t, module.ShowsRetention()) // Pending
	module.Advance(now)
	assert.False(t, module.ShowsRetention()) // InProgress
	module.Advance(now)
	assert.True(t, module.ShowsRetention()) // Completed
	module.Advance(now)
	assert.True(t, module.ShowsRetention()) // Revised
	module.Advance(now)
	assert.False(t, module.ShowsRetention()) // Pending again
}

func TestModule_CloneIsDeep(t *testing.T) {
	module, err := NewModule(NewModuleParams{
		ID: "m1", UserID: "u1", Title: "Graphs",
		Topics: []string{"BFS", "DFS"},
	})
	require.NoError(t, err)
	module.Advance(time.Now().UTC())
	module.Advance(time.Now().UTC())

	clone := module.Clone()
	clone.Topics[0] = "changed"
	*clone.LastStudiedAt = clone.LastStudiedAt.Add(time.Hour)
	clone.Status = StatusPending

	assert.Equal(t, "BFS", module.Topics[0])
	assert.Equal(t, StatusCompleted, module.Status)
	assert.NotEqual(t, *clone.LastStudiedAt, *module.LastStudiedAt)
}
