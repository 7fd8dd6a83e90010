// Package task contains the domain model for free-form todos and the
// quick-add text parser that turns a line of text into a structured todo.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrEmptyText - the todo text is empty after trimming.
	ErrEmptyText = errors.New("todo text cannot be empty")

	// ErrInvalidPriority - priority out of the 1..4 range.
	ErrInvalidPriority = errors.New("invalid priority: must be 1-4")

	// ErrInvalidDueDate - the due date is not a yyyy-MM-dd string.
	ErrInvalidDueDate = errors.New("invalid due date: must be yyyy-MM-dd")

	// ErrTodoNotFound - the todo does not exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrTodoAlreadyExists - a todo with this ID already exists.
	ErrTodoAlreadyExists = errors.New("todo already exists")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: TODO
// ══════════════════════════════════════════════════════════════════════════════

// Todo is a free-form task. A todo with a nil DueDate sits in the inbox and
// never appears on the agenda.
type Todo struct {
	ID     string
	UserID string

	// Text - the task text.
	Text string

	// DueDate - optional yyyy-MM-dd date. Nil means "no date" (inbox).
	DueDate *string

	// Priority - 1 (highest) to 4 (lowest).
	Priority int

	// Completed - done flag.
	Completed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTodoParams contains parameters for creating a todo.
type NewTodoParams struct {
	ID        string
	UserID    string
	Text      string
	DueDate   *string
	Priority  int
	Completed bool
}

// NewTodo creates a new todo, validating all fields.
// A zero priority defaults to 4.
func NewTodo(params NewTodoParams) (*Todo, error) {
	if params.ID == "" {
		return nil, errors.New("todo id is required")
	}
	if params.UserID == "" {
		return nil, errors.New("todo user id is required")
	}

	text := strings.TrimSpace(params.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	priority := params.Priority
	if priority == 0 {
		priority = 4
	}
	if priority < 1 || priority > 4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, params.Priority)
	}

	if params.DueDate != nil && !timeutil.IsISODate(*params.DueDate) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, *params.DueDate)
	}

	now := time.Now().UTC()
	return &Todo{
		ID:        params.ID,
		UserID:    params.UserID,
		Text:      text,
		DueDate:   cloneDate(params.DueDate),
		Priority:  priority,
		Completed: params.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply updates the mutable fields from params, revalidating them.
func (t *Todo) Apply(params NewTodoParams) error {
	updated, err := NewTodo(NewTodoParams{
		ID:        t.ID,
		UserID:    t.UserID,
		Text:      params.Text,
		DueDate:   params.DueDate,
		Priority:  params.Priority,
		Completed: params.Completed,
	})
	if err != nil {
		return err
	}

	t.Text = updated.Text
	t.DueDate = updated.DueDate
	t.Priority = updated.Priority
	t.Completed = updated.Completed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Toggle flips the completed flag.
func (t *Todo) Toggle() {
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now().UTC()
}

// DueOn reports whether the todo is due on the given yyyy-MM-dd day.
// Inbox todos are due on no day.
func (t *Todo) DueOn(dateKey string) bool {
	return t.DueDate != nil && *t.DueDate == dateKey
}

// IsOpen reports whether the todo is not yet completed.
func (t *Todo) IsOpen() bool {
	return !t.Completed
}

// Clone creates a copy of the todo, used for snapshot/rollback.
func (t *Todo) Clone() *Todo {
	if t == nil {
		return nil
	}
	clone := *t
	clone.DueDate = cloneDate(t.DueDate)
	return &clone
}

func cloneDate(d *string) *string {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
