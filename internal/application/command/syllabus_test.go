package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/domain/shared"
	"github.com/studyhall/studyhall/internal/domain/syllabus"
	"github.com/studyhall/studyhall/internal/infrastructure/persistence/memory"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []shared.Event
}

func (p *recordingPublisher) Publish(event shared.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) typesSeen() []shared.EventType {
	types := make([]shared.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

// failingSyllabusRepo wraps the memory repo and fails every Update.
type failingSyllabusRepo struct {
	*memory.SyllabusRepository
}

func (r *failingSyllabusRepo) Update(context.Context, *syllabus.Module) error {
	return errors.New("connection reset")
}

func TestSyllabusCommands_AdvanceCyclesAndStampsStudyTime(t *testing.T) {
	repo := memory.NewSyllabusRepository()
	pub := &recordingPublisher{}
	svc := NewSyllabusCommands(repo, pub, nil)
	ctx := context.Background()

	module, err := svc.Create(ctx, "u1", ModuleInput{Title: "Graphs", Strength: 2})
	require.NoError(t, err)
	require.Equal(t, syllabus.StatusPending, module.Status)

	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	advanced, err := svc.Advance(ctx, "u1", module.ID, now)
	require.NoError(t, err)
	assert.Equal(t, syllabus.StatusInProgress, advanced.Status)
	assert.Nil(t, advanced.LastStudiedAt)

	advanced, err = svc.Advance(ctx, "u1", module.ID, now)
	require.NoError(t, err)
	assert.Equal(t, syllabus.StatusCompleted, advanced.Status)
	require.NotNil(t, advanced.LastStudiedAt)
	assert.Equal(t, now, *advanced.LastStudiedAt)

	// The persisted row matches what was returned.
	stored, err := repo.GetByID(ctx, module.ID)
	require.NoError(t, err)
	assert.Equal(t, syllabus.StatusCompleted, stored.Status)

	assert.Contains(t, pub.typesSeen(), shared.EventModuleAdvanced)
	assert.Contains(t, pub.typesSeen(), shared.EventSyllabusChanged)
}

func TestSyllabusCommands_AdvanceRollsBackOnPersistFailure(t *testing.T) {
	inner := memory.NewSyllabusRepository()
	pub := &recordingPublisher{}
	svc := NewSyllabusCommands(&failingSyllabusRepo{inner}, pub, nil)
	ctx := context.Background()

	module, err := syllabus.NewModule(syllabus.NewModuleParams{ID: "m1", UserID: "u1", Title: "Graphs"})
	require.NoError(t, err)
	require.NoError(t, inner.Create(ctx, module))
	pub.events = nil

	_, err = svc.Advance(ctx, "u1", "m1", time.Now().UTC())
	require.Error(t, err)

	// The stored module keeps its prior state and no events leak out.
	stored, err := inner.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, syllabus.StatusPending, stored.Status)
	assert.Nil(t, stored.LastStudiedAt)
	assert.Empty(t, pub.events)
}

func TestSyllabusCommands_AdvanceRejectsForeignModule(t *testing.T) {
	repo := memory.NewSyllabusRepository()
	svc := NewSyllabusCommands(repo, nil, nil)
	ctx := context.Background()

	module, err := svc.Create(ctx, "u1", ModuleInput{Title: "Graphs"})
	require.NoError(t, err)

	_, err = svc.Advance(ctx, "u2", module.ID, time.Now().UTC())
	assert.ErrorIs(t, err, syllabus.ErrModuleNotFound)
}

func TestSyllabusCommands_UpdateKeepsStatus(t *testing.T) {
	repo := memory.NewSyllabusRepository()
	svc := NewSyllabusCommands(repo, nil, nil)
	ctx := context.Background()

	module, err := svc.Create(ctx, "u1", ModuleInput{Title: "Graphs"})
	require.NoError(t, err)

	now := time.Now().UTC()
	_, err = svc.Advance(ctx, "u1", module.ID, now)
	require.NoError(t, err)
	_, err = svc.Advance(ctx, "u1", module.ID, now)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", module.ID, ModuleInput{Title: "Graph Theory", Strength: 3})
	require.NoError(t, err)

	assert.Equal(t, "Graph Theory", updated.Title)
	assert.Equal(t, 3.0, updated.Strength)
	assert.Equal(t, syllabus.StatusCompleted, updated.Status)
	require.NotNil(t, updated.LastStudiedAt)
}
