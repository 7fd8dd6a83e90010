package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/domain/shared"
	"github.com/studyhall/studyhall/internal/infrastructure/persistence/memory"
)

func TestTodoCommands_QuickAddPersistsParsedTodo(t *testing.T) {
	repo := memory.NewTodoRepository()
	pub := &recordingPublisher{}
	svc := NewTodoCommands(repo, pub, nil)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	todo, err := svc.QuickAdd(ctx, "u1", "Buy milk tomorrow p1", now)
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", todo.Text)
	require.NotNil(t, todo.DueDate)
	assert.Equal(t, "2024-01-02", *todo.DueDate)
	assert.Equal(t, 1, todo.Priority)
	assert.False(t, todo.Completed)

	stored, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", stored.Text)

	require.Len(t, pub.events, 1)
	assert.Equal(t, shared.EventTaskChanged, pub.events[0].EventType())
}

func TestTodoCommands_QuickAddRejectsEmptyRemainder(t *testing.T) {
	svc := NewTodoCommands(memory.NewTodoRepository(), nil, nil)

	_, err := svc.QuickAdd(context.Background(), "u1", "tomorrow p1", time.Now().UTC())
	assert.Error(t, err)
}

func TestTodoCommands_ToggleFlipsCompletion(t *testing.T) {
	repo := memory.NewTodoRepository()
	svc := NewTodoCommands(repo, nil, nil)
	ctx := context.Background()

	todo, err := svc.Create(ctx, "u1", TodoInput{Text: "Read"})
	require.NoError(t, err)
	require.False(t, todo.Completed)

	toggled, err := svc.Toggle(ctx, "u1", todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = svc.Toggle(ctx, "u1", todo.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}
