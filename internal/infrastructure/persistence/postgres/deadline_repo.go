package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studyhall/studyhall/internal/domain/deadline"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSIGNMENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AssignmentRepository implements deadline.AssignmentRepository for PostgreSQL.
// Due dates are stored as raw text: ordering by due_date is correct because
// ISO dates sort lexicographically.
type AssignmentRepository struct {
	conn *Connection
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(conn *Connection) *AssignmentRepository {
	return &AssignmentRepository{conn: conn}
}

const assignmentColumns = `id, user_id, title, course, due_date, priority, status, created_at, updated_at`

// Create persists a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *deadline.Assignment) error {
	query := `
		INSERT INTO assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.conn.Exec(ctx, query,
		a.ID, a.UserID, a.Title, a.Course, a.DueDate,
		a.Priority, string(a.Status), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return deadline.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// GetByID returns an assignment by ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*deadline.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanAssignment(row)
}

// Update persists changes to an existing assignment.
func (r *AssignmentRepository) Update(ctx context.Context, a *deadline.Assignment) error {
	query := `
		UPDATE assignments SET
			title = $1,
			course = $2,
			due_date = $3,
			priority = $4,
			status = $5,
			updated_at = $6
		WHERE id = $7
	`

	result, err := r.conn.Exec(ctx, query,
		a.Title, a.Course, a.DueDate, a.Priority, string(a.Status), a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return deadline.ErrAssignmentNotFound
	}

	return nil
}

// Delete removes an assignment by ID.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return deadline.ErrAssignmentNotFound
	}

	return nil
}

// ListByUser returns all assignments owned by the user, ordered by due date.
func (r *AssignmentRepository) ListByUser(ctx context.Context, userID string) ([]*deadline.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE user_id = $1 ORDER BY due_date, created_at`

	rows, err := r.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]*deadline.Assignment, 0)
	for rows.Next() {
		a, err := r.scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// DistinctUsers returns the IDs of all users owning at least one assignment.
func (r *AssignmentRepository) DistinctUsers(ctx context.Context) ([]string, error) {
	rows, err := r.conn.Query(ctx, `SELECT DISTINCT user_id FROM assignments ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment users: %w", err)
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

func (r *AssignmentRepository) scanAssignment(row pgx.Row) (*deadline.Assignment, error) {
	var a deadline.Assignment
	var status string

	err := row.Scan(
		&a.ID, &a.UserID, &a.Title, &a.Course, &a.DueDate,
		&a.Priority, &status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, deadline.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to scan assignment: %w", err)
	}

	a.Status = deadline.AssignmentStatus(status)
	return &a, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// EXAM REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ExamRepository implements deadline.ExamRepository for PostgreSQL.
type ExamRepository struct {
	conn *Connection
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(conn *Connection) *ExamRepository {
	return &ExamRepository{conn: conn}
}

const examColumns = `id, user_id, title, course, date, location, syllabus_notes, created_at, updated_at`

// Create persists a new exam.
func (r *ExamRepository) Create(ctx context.Context, e *deadline.Exam) error {
	query := `
		INSERT INTO exams (` + examColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.conn.Exec(ctx, query,
		e.ID, e.UserID, e.Title, e.Course, e.Date,
		e.Location, e.SyllabusNotes, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return deadline.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create exam: %w", err)
	}

	return nil
}

// GetByID returns an exam by ID.
func (r *ExamRepository) GetByID(ctx context.Context, id string) (*deadline.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanExam(row)
}

// Update persists changes to an existing exam.
func (r *ExamRepository) Update(ctx context.Context, e *deadline.Exam) error {
	query := `
		UPDATE exams SET
			title = $1,
			course = $2,
			date = $3,
			location = $4,
			syllabus_notes = $5,
			updated_at = $6
		WHERE id = $7
	`

	result, err := r.conn.Exec(ctx, query,
		e.Title, e.Course, e.Date, e.Location, e.SyllabusNotes, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update exam: %w", err)
	}

	if result.RowsAffected() == 0 {
		return deadline.ErrExamNotFound
	}

	return nil
}

// Delete removes an exam by ID.
func (r *ExamRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}

	if result.RowsAffected() == 0 {
		return deadline.ErrExamNotFound
	}

	return nil
}

// ListByUser returns all exams owned by the user, ordered by date.
func (r *ExamRepository) ListByUser(ctx context.Context, userID string) ([]*deadline.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE user_id = $1 ORDER BY date, created_at`

	rows, err := r.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	defer rows.Close()

	exams := make([]*deadline.Exam, 0)
	for rows.Next() {
		e, err := r.scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}

	return exams, rows.Err()
}

func (r *ExamRepository) scanExam(row pgx.Row) (*deadline.Exam, error) {
	var e deadline.Exam

	err := row.Scan(
		&e.ID, &e.UserID, &e.Title, &e.Course, &e.Date,
		&e.Location, &e.SyllabusNotes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, deadline.ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to scan exam: %w", err)
	}

	return &e, nil
}
