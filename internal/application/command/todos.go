package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall/internal/domain/shared"
	"github.com/studyhall/studyhall/internal/domain/task"
	"github.com/studyhall/studyhall/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// TODO COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// TodoCommands mutates the todo collection.
type TodoCommands struct {
	todos     task.Repository
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewTodoCommands creates the todo command service.
func NewTodoCommands(todos task.Repository, publisher shared.EventPublisher, log *logger.Logger) *TodoCommands {
	if log == nil {
		log = logger.Default()
	}
	return &TodoCommands{
		todos:     todos,
		publisher: publisher,
		log:       log.With(logger.Component("todo_commands")),
	}
}

// TodoInput is the wire shape of a structured todo mutation.
type TodoInput struct {
	Text      string  `json:"text"`
	DueDate   *string `json:"due_date"`
	Priority  int     `json:"priority"`
	Completed bool    `json:"completed"`
}

// Create validates and persists a new todo.
func (c *TodoCommands) Create(ctx context.Context, userID string, input TodoInput) (*task.Todo, error) {
	todo, err := task.NewTodo(task.NewTodoParams{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      input.Text,
		DueDate:   input.DueDate,
		Priority:  input.Priority,
		Completed: input.Completed,
	})
	if err != nil {
		return nil, err
	}

	if err := c.todos.Create(ctx, todo); err != nil {
		return nil, err
	}

	c.publishChanged(todo.ID, userID, "created")
	c.log.Info("todo created", logger.UserID(userID), logger.TodoID(todo.ID))
	return todo, nil
}

// QuickAdd parses one line of free text into a todo and persists it.
// now anchors the "today"/"tomorrow" keywords.
func (c *TodoCommands) QuickAdd(ctx context.Context, userID, input string, now time.Time) (*task.Todo, error) {
	parsed := task.ParseQuickAdd(input, now)

	todo, err := task.NewTodo(task.NewTodoParams{
		ID:       uuid.NewString(),
		UserID:   userID,
		Text:     parsed.Text,
		DueDate:  parsed.DueDate,
		Priority: parsed.Priority,
	})
	if err != nil {
		return nil, err
	}

	if err := c.todos.Create(ctx, todo); err != nil {
		return nil, err
	}

	c.publishChanged(todo.ID, userID, "created")
	c.log.Info("todo quick-added", logger.UserID(userID), logger.TodoID(todo.ID))
	return todo, nil
}

// Update applies new field values to an existing todo.
func (c *TodoCommands) Update(ctx context.Context, userID, todoID string, input TodoInput) (*task.Todo, error) {
	todo, err := c.ownedTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if err := todo.Apply(task.NewTodoParams{
		Text:      input.Text,
		DueDate:   input.DueDate,
		Priority:  input.Priority,
		Completed: input.Completed,
	}); err != nil {
		return nil, err
	}

	if err := c.todos.Update(ctx, todo); err != nil {
		return nil, err
	}

	c.publishChanged(todoID, userID, "updated")
	return todo, nil
}

// Toggle flips the completed flag of a todo.
func (c *TodoCommands) Toggle(ctx context.Context, userID, todoID string) (*task.Todo, error) {
	todo, err := c.ownedTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	todo.Toggle()

	if err := c.todos.Update(ctx, todo); err != nil {
		return nil, err
	}

	c.publishChanged(todoID, userID, "updated")
	return todo, nil
}

// Delete removes a todo.
func (c *TodoCommands) Delete(ctx context.Context, userID, todoID string) error {
	if _, err := c.ownedTodo(ctx, userID, todoID); err != nil {
		return err
	}

	if err := c.todos.Delete(ctx, todoID); err != nil {
		return err
	}

	c.publishChanged(todoID, userID, "deleted")
	return nil
}

func (c *TodoCommands) ownedTodo(ctx context.Context, userID, todoID string) (*task.Todo, error) {
	todo, err := c.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		return nil, task.ErrTodoNotFound
	}
	return todo, nil
}

func (c *TodoCommands) publishChanged(todoID, userID, action string) {
	if c.publisher == nil {
		return
	}
	event := shared.NewCollectionChangedEvent(shared.EventTaskChanged, todoID, userID, "todos", action)
	if err := c.publisher.Publish(event); err != nil {
		c.log.Warn("failed to publish todo change", logger.Err(err))
	}
}
