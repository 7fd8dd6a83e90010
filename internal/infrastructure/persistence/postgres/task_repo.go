package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studyhall/studyhall/internal/domain/task"
)

// ══════════════════════════════════════════════════════════════════════════════
// TODO REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// TodoRepository implements task.Repository for PostgreSQL.
// A NULL due_date column maps to a nil DueDate (inbox todo).
type TodoRepository struct {
	conn *Connection
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(conn *Connection) *TodoRepository {
	return &TodoRepository{conn: conn}
}

const todoColumns = `id, user_id, text, due_date, priority, completed, created_at, updated_at`

// Create persists a new todo.
func (r *TodoRepository) Create(ctx context.Context, t *task.Todo) error {
	query := `
		INSERT INTO todos (` + todoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.conn.Exec(ctx, query,
		t.ID, t.UserID, t.Text, t.DueDate, t.Priority, t.Completed, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return task.ErrTodoAlreadyExists
		}
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// GetByID returns a todo by ID.
func (r *TodoRepository) GetByID(ctx context.Context, id string) (*task.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanTodo(row)
}

// Update persists changes to an existing todo.
func (r *TodoRepository) Update(ctx context.Context, t *task.Todo) error {
	query := `
		UPDATE todos SET
			text = $1,
			due_date = $2,
			priority = $3,
			completed = $4,
			updated_at = $5
		WHERE id = $6
	`

	result, err := r.conn.Exec(ctx, query,
		t.Text, t.DueDate, t.Priority, t.Completed, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return task.ErrTodoNotFound
	}

	return nil
}

// Delete removes a todo by ID.
func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return task.ErrTodoNotFound
	}

	return nil
}

// ListByUser returns all todos owned by the user, ordered by creation time.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]*task.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*task.Todo, 0)
	for rows.Next() {
		t, err := r.scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

func (r *TodoRepository) scanTodo(row pgx.Row) (*task.Todo, error) {
	var t task.Todo

	err := row.Scan(
		&t.ID, &t.UserID, &t.Text, &t.DueDate, &t.Priority, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, task.ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to scan todo: %w", err)
	}

	return &t, nil
}
