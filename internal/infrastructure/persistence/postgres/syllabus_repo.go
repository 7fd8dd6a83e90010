package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studyhall/studyhall/internal/domain/syllabus"
)

// ══════════════════════════════════════════════════════════════════════════════
// SYLLABUS REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// SyllabusRepository implements syllabus.Repository for PostgreSQL.
// Topics are stored as a JSONB array. The status column is run through
// ParseStatus on load, so an unknown value degrades to Pending instead of
// breaking reads.
type SyllabusRepository struct {
	conn *Connection
}

// NewSyllabusRepository creates a new SyllabusRepository.
func NewSyllabusRepository(conn *Connection) *SyllabusRepository {
	return &SyllabusRepository{conn: conn}
}

const moduleColumns = `id, user_id, title, course, topics, status, last_studied_at, strength, created_at, updated_at`

// Create persists a new module.
func (r *SyllabusRepository) Create(ctx context.Context, m *syllabus.Module) error {
	query := `
		INSERT INTO syllabus_modules (` + moduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	topicsJSON, err := json.Marshal(m.Topics)
	if err != nil {
		return fmt.Errorf("failed to marshal topics: %w", err)
	}

	_, err = r.conn.Exec(ctx, query,
		m.ID, m.UserID, m.Title, m.Course, topicsJSON,
		string(m.Status), m.LastStudiedAt, m.Strength, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return syllabus.ErrModuleAlreadyExists
		}
		return fmt.Errorf("failed to create syllabus module: %w", err)
	}

	return nil
}

// GetByID returns a module by ID.
func (r *SyllabusRepository) GetByID(ctx context.Context, id string) (*syllabus.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM syllabus_modules WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanModule(row)
}

// Update persists changes to an existing module.
func (r *SyllabusRepository) Update(ctx context.Context, m *syllabus.Module) error {
	query := `
		UPDATE syllabus_modules SET
			title = $1,
			course = $2,
			topics = $3,
			status = $4,
			last_studied_at = $5,
			strength = $6,
			updated_at = $7
		WHERE id = $8
	`

	topicsJSON, err := json.Marshal(m.Topics)
	if err != nil {
		return fmt.Errorf("failed to marshal topics: %w", err)
	}

	result, err := r.conn.Exec(ctx, query,
		m.Title, m.Course, topicsJSON, string(m.Status),
		m.LastStudiedAt, m.Strength, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update syllabus module: %w", err)
	}

	if result.RowsAffected() == 0 {
		return syllabus.ErrModuleNotFound
	}

	return nil
}

// Delete removes a module by ID.
func (r *SyllabusRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM syllabus_modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete syllabus module: %w", err)
	}

	if result.RowsAffected() == 0 {
		return syllabus.ErrModuleNotFound
	}

	return nil
}

// ListByUser returns all modules owned by the user, ordered by creation time.
func (r *SyllabusRepository) ListByUser(ctx context.Context, userID string) ([]*syllabus.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM syllabus_modules WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list syllabus modules: %w", err)
	}
	defer rows.Close()

	modules := make([]*syllabus.Module, 0)
	for rows.Next() {
		m, err := r.scanModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}

	return modules, rows.Err()
}

// DistinctUsers returns the IDs of all users owning at least one module.
func (r *SyllabusRepository) DistinctUsers(ctx context.Context) ([]string, error) {
	rows, err := r.conn.Query(ctx, `SELECT DISTINCT user_id FROM syllabus_modules ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list syllabus users: %w", err)
	}
	defer rows.Close()

	users := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		users = append(users, id)
	}

	return users, rows.Err()
}

func (r *SyllabusRepository) scanModule(row pgx.Row) (*syllabus.Module, error) {
	var m syllabus.Module
	var topicsJSON []byte
	var status string

	err := row.Scan(
		&m.ID, &m.UserID, &m.Title, &m.Course, &topicsJSON,
		&status, &m.LastStudiedAt, &m.Strength, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, syllabus.ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to scan syllabus module: %w", err)
	}

	if err := json.Unmarshal(topicsJSON, &m.Topics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal topics for module %s: %w", m.ID, err)
	}
	m.Status = syllabus.ParseStatus(status)

	return &m, nil
}
