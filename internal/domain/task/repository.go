package task

import "context"

// Repository defines the persistence interface for todos.
type Repository interface {
	// Create persists a new todo.
	// Returns ErrTodoAlreadyExists if the ID is taken.
	Create(ctx context.Context, todo *Todo) error

	// GetByID retrieves a todo by its ID.
	// Returns ErrTodoNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*Todo, error)

	// Update persists changes to an existing todo.
	// Returns ErrTodoNotFound if it does not exist.
	Update(ctx context.Context, todo *Todo) error

	// Delete removes a todo by its ID.
	// Returns ErrTodoNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// ListByUser returns all todos owned by the user, ordered by creation time.
	ListByUser(ctx context.Context, userID string) ([]*Todo, error)
}
