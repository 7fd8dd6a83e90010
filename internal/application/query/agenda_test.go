package query

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/domain/agenda"
	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/internal/domain/task"
	"github.com/studyhall/studyhall/internal/infrastructure/persistence/memory"
)

// mapCache is an in-process AgendaIndexCache for tests.
type mapCache struct {
	mu      sync.Mutex
	indexes map[string]agenda.Index
	stores  int
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{indexes: make(map[string]agenda.Index)}
}

func (c *mapCache) StoreIndex(_ context.Context, userID string, idx agenda.Index) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexes[userID] = idx
	c.stores++
	return nil
}

func (c *mapCache) GetIndex(_ context.Context, userID string) (agenda.Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.indexes[userID]
	if ok {
		c.hits++
	}
	return idx, ok
}

func (c *mapCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.indexes, userID)
	return nil
}

func newAgendaFixture(t *testing.T) (*AgendaQueries, *memory.ScheduleRepository, *memory.TodoRepository, *mapCache) {
	t.Helper()

	blocks := memory.NewScheduleRepository()
	assignments := memory.NewAssignmentRepository()
	exams := memory.NewExamRepository()
	todos := memory.NewTodoRepository()
	cache := newMapCache()

	q := NewAgendaQueries(blocks, assignments, exams, todos, cache, nil)
	return q, blocks, todos, cache
}

func TestGetDayAgenda_CombinesSourcesForOneUser(t *testing.T) {
	q, blocks, todos, _ := newAgendaFixture(t)
	ctx := context.Background()

	// 2024-01-01 is a Monday.
	block, err := schedule.NewBlock(schedule.NewBlockParams{
		ID: "b1", UserID: "u1", Title: "Algorithms", Kind: schedule.KindLecture,
		Day: "Monday", StartTime: "09:00", EndTime: "10:30",
	})
	require.NoError(t, err)
	require.NoError(t, blocks.Create(ctx, block))

	due := "2024-01-01"
	todo, err := task.NewTodo(task.NewTodoParams{ID: "t1", UserID: "u1", Text: "Buy milk", DueDate: &due})
	require.NoError(t, err)
	require.NoError(t, todos.Create(ctx, todo))

	// A second user's data stays out of the view.
	other, err := schedule.NewBlock(schedule.NewBlockParams{
		ID: "b2", UserID: "u2", Title: "Chemistry", Kind: schedule.KindLecture,
		Day: "Monday", StartTime: "09:00", EndTime: "10:30",
	})
	require.NoError(t, err)
	require.NoError(t, blocks.Create(ctx, other))

	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	day, err := q.GetDayAgenda(ctx, "u1", now, now)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", day.Date)
	require.Len(t, day.Items, 2)
	assert.Equal(t, "b1", day.Items[0].ID)
	assert.Equal(t, "t1", day.Items[1].ID)
}

func TestGetMonthAgenda_UsesCachedIndexAcrossCalls(t *testing.T) {
	q, blocks, _, cache := newAgendaFixture(t)
	ctx := context.Background()

	block, err := schedule.NewBlock(schedule.NewBlockParams{
		ID: "b1", UserID: "u1", Title: "Guest lecture", Kind: schedule.KindStudy,
		Day: "2024-01-15", StartTime: "14:00", EndTime: "16:00",
	})
	require.NoError(t, err)
	require.NoError(t, blocks.Create(ctx, block))

	month, err := q.GetMonthAgenda(ctx, "u1", "2024-01")
	require.NoError(t, err)
	require.Contains(t, month.Days, "2024-01-15")
	assert.Equal(t, 1, cache.stores)
	assert.Equal(t, 0, cache.hits)

	// Second render reuses the cached index.
	_, err = q.GetMonthAgenda(ctx, "u1", "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.stores)
	assert.Equal(t, 1, cache.hits)
}

func TestGetMonthAgenda_RejectsBadMonth(t *testing.T) {
	q, _, _, _ := newAgendaFixture(t)

	_, err := q.GetMonthAgenda(context.Background(), "u1", "January 2024")
	assert.Error(t, err)
}
