// Package memory provides in-memory repository implementations backed by maps.
// Used in tests and in dev mode when no database is configured. Entities are
// cloned on the way in and out, so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/internal/domain/syllabus"
	"github.com/studyhall/studyhall/internal/domain/task"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ScheduleRepository is an in-memory schedule.Repository.
type ScheduleRepository struct {
	mu     sync.RWMutex
	blocks map[string]*schedule.Block
}

// NewScheduleRepository creates an empty in-memory schedule repository.
func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{blocks: make(map[string]*schedule.Block)}
}

func (r *ScheduleRepository) Create(_ context.Context, b *schedule.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.blocks[b.ID]; exists {
		return schedule.ErrBlockAlreadyExists
	}
	r.blocks[b.ID] = b.Clone()
	return nil
}

func (r *ScheduleRepository) GetByID(_ context.Context, id string) (*schedule.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.blocks[id]
	if !ok {
		return nil, schedule.ErrBlockNotFound
	}
	return b.Clone(), nil
}

func (r *ScheduleRepository) Update(_ context.Context, b *schedule.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blocks[b.ID]; !ok {
		return schedule.ErrBlockNotFound
	}
	r.blocks[b.ID] = b.Clone()
	return nil
}

func (r *ScheduleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blocks[id]; !ok {
		return schedule.ErrBlockNotFound
	}
	delete(r.blocks, id)
	return nil
}

func (r *ScheduleRepository) ListByUser(_ context.Context, userID string) ([]*schedule.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blocks := make([]*schedule.Block, 0)
	for _, b := range r.blocks {
		if b.UserID == userID {
			blocks = append(blocks, b.Clone())
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].CreatedAt.Before(blocks[j].CreatedAt) })
	return blocks, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ASSIGNMENT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// AssignmentRepository is an in-memory deadline.AssignmentRepository.
type AssignmentRepository struct {
	mu          sync.RWMutex
	assignments map[string]*deadline.Assignment
}

// NewAssignmentRepository creates an empty in-memory assignment repository.
func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{assignments: make(map[string]*deadline.Assignment)}
}

func (r *AssignmentRepository) Create(_ context.Context, a *deadline.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assignments[a.ID]; exists {
		return deadline.ErrAlreadyExists
	}
	r.assignments[a.ID] = a.Clone()
	return nil
}

func (r *AssignmentRepository) GetByID(_ context.Context, id string) (*deadline.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.assignments[id]
	if !ok {
		return nil, deadline.ErrAssignmentNotFound
	}
	return a.Clone(), nil
}

func (r *AssignmentRepository) Update(_ context.Context, a *deadline.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assignments[a.ID]; !ok {
		return deadline.ErrAssignmentNotFound
	}
	r.assignments[a.ID] = a.Clone()
	return nil
}

func (r *AssignmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assignments[id]; !ok {
		return deadline.ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	return nil
}

func (r *AssignmentRepository) ListByUser(_ context.Context, userID string) ([]*deadline.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assignments := make([]*deadline.Assignment, 0)
	for _, a := range r.assignments {
		if a.UserID == userID {
			assignments = append(assignments, a.Clone())
		}
	}
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].DueDate != assignments[j].DueDate {
			return assignments[i].DueDate < assignments[j].DueDate
		}
		return assignments[i].CreatedAt.Before(assignments[j].CreatedAt)
	})
	return assignments, nil
}

func (r *AssignmentRepository) DistinctUsers(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, a := range r.assignments {
		seen[a.UserID] = struct{}{}
	}
	users := make([]string, 0, len(seen))
	for id := range seen {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// EXAM REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ExamRepository is an in-memory deadline.ExamRepository.
type ExamRepository struct {
	mu    sync.RWMutex
	exams map[string]*deadline.Exam
}

// NewExamRepository creates an empty in-memory exam repository.
func NewExamRepository() *ExamRepository {
	return &ExamRepository{exams: make(map[string]*deadline.Exam)}
}

func (r *ExamRepository) Create(_ context.Context, e *deadline.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exams[e.ID]; exists {
		return deadline.ErrAlreadyExists
	}
	r.exams[e.ID] = e.Clone()
	return nil
}

func (r *ExamRepository) GetByID(_ context.Context, id string) (*deadline.Exam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.exams[id]
	if !ok {
		return nil, deadline.ErrExamNotFound
	}
	return e.Clone(), nil
}

func (r *ExamRepository) Update(_ context.Context, e *deadline.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exams[e.ID]; !ok {
		return deadline.ErrExamNotFound
	}
	r.exams[e.ID] = e.Clone()
	return nil
}

func (r *ExamRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exams[id]; !ok {
		return deadline.ErrExamNotFound
	}
	delete(r.exams, id)
	return nil
}

func (r *ExamRepository) ListByUser(_ context.Context, userID string) ([]*deadline.Exam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exams := make([]*deadline.Exam, 0)
	for _, e := range r.exams {
		if e.UserID == userID {
			exams = append(exams, e.Clone())
		}
	}
	sort.Slice(exams, func(i, j int) bool {
		if exams[i].Date != exams[j].Date {
			return exams[i].Date < exams[j].Date
		}
		return exams[i].CreatedAt.Before(exams[j].CreatedAt)
	})
	return exams, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// TODO REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// TodoRepository is an in-memory task.Repository.
type TodoRepository struct {
	mu    sync.RWMutex
	todos map[string]*task.Todo
}

// NewTodoRepository creates an empty in-memory todo repository.
func NewTodoRepository() *TodoRepository {
	return &TodoRepository{todos: make(map[string]*task.Todo)}
}

func (r *TodoRepository) Create(_ context.Context, t *task.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.todos[t.ID]; exists {
		return task.ErrTodoAlreadyExists
	}
	r.todos[t.ID] = t.Clone()
	return nil
}

func (r *TodoRepository) GetByID(_ context.Context, id string) (*task.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, task.ErrTodoNotFound
	}
	return t.Clone(), nil
}

func (r *TodoRepository) Update(_ context.Context, t *task.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[t.ID]; !ok {
		return task.ErrTodoNotFound
	}
	r.todos[t.ID] = t.Clone()
	return nil
}

func (r *TodoRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return task.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *TodoRepository) ListByUser(_ context.Context, userID string) ([]*task.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]*task.Todo, 0)
	for _, t := range r.todos {
		if t.UserID == userID {
			todos = append(todos, t.Clone())
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].CreatedAt.Before(todos[j].CreatedAt) })
	return todos, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SYLLABUS REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// SyllabusRepository is an in-memory syllabus.Repository.
type SyllabusRepository struct {
	mu      sync.RWMutex
	modules map[string]*syllabus.Module
}

// NewSyllabusRepository creates an empty in-memory syllabus repository.
func NewSyllabusRepository() *SyllabusRepository {
	return &SyllabusRepository{modules: make(map[string]*syllabus.Module)}
}

func (r *SyllabusRepository) Create(_ context.Context, m *syllabus.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[m.ID]; exists {
		return syllabus.ErrModuleAlreadyExists
	}
	r.modules[m.ID] = m.Clone()
	return nil
}

func (r *SyllabusRepository) GetByID(_ context.Context, id string) (*syllabus.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[id]
	if !ok {
		return nil, syllabus.ErrModuleNotFound
	}
	return m.Clone(), nil
}

func (r *SyllabusRepository) Update(_ context.Context, m *syllabus.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.modules[m.ID]; !ok {
		return syllabus.ErrModuleNotFound
	}
	r.modules[m.ID] = m.Clone()
	return nil
}

func (r *SyllabusRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.modules[id]; !ok {
		return syllabus.ErrModuleNotFound
	}
	delete(r.modules, id)
	return nil
}

func (r *SyllabusRepository) ListByUser(_ context.Context, userID string) ([]*syllabus.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modules := make([]*syllabus.Module, 0)
	for _, m := range r.modules {
		if m.UserID == userID {
			modules = append(modules, m.Clone())
		}
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].CreatedAt.Before(modules[j].CreatedAt) })
	return modules, nil
}

func (r *SyllabusRepository) DistinctUsers(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, m := range r.modules {
		seen[m.UserID] = struct{}{}
	}
	users := make([]string, 0, len(seen))
	for id := range seen {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}
