package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studyhall/studyhall/internal/domain/schedule"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ScheduleRepository implements schedule.Repository for PostgreSQL.
// The recurrence is stored in its wire form (weekday name or ISO date) and
// reparsed on load; a row with a corrupted day column fails to load rather
// than silently changing meaning.
type ScheduleRepository struct {
	conn *Connection
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(conn *Connection) *ScheduleRepository {
	return &ScheduleRepository{conn: conn}
}

const scheduleColumns = `id, user_id, title, kind, day, start_time, end_time, location, created_at, updated_at`

// Create persists a new block.
func (r *ScheduleRepository) Create(ctx context.Context, b *schedule.Block) error {
	query := `
		INSERT INTO schedule_blocks (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.conn.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.Title,
		string(b.Kind),
		b.Recurrence.DayString(),
		b.StartTime,
		b.EndTime,
		b.Location,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return schedule.ErrBlockAlreadyExists
		}
		return fmt.Errorf("failed to create schedule block: %w", err)
	}

	return nil
}

// GetByID returns a block by ID.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*schedule.Block, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_blocks WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanBlock(row)
}

// Update persists changes to an existing block.
func (r *ScheduleRepository) Update(ctx context.Context, b *schedule.Block) error {
	query := `
		UPDATE schedule_blocks SET
			title = $1,
			kind = $2,
			day = $3,
			start_time = $4,
			end_time = $5,
			location = $6,
			updated_at = $7
		WHERE id = $8
	`

	result, err := r.conn.Exec(ctx, query,
		b.Title,
		string(b.Kind),
		b.Recurrence.DayString(),
		b.StartTime,
		b.EndTime,
		b.Location,
		b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule block: %w", err)
	}

	if result.RowsAffected() == 0 {
		return schedule.ErrBlockNotFound
	}

	return nil
}

// Delete removes a block by ID.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM schedule_blocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule block: %w", err)
	}

	if result.RowsAffected() == 0 {
		return schedule.ErrBlockNotFound
	}

	return nil
}

// ListByUser returns all blocks owned by the user, ordered by creation time.
func (r *ScheduleRepository) ListByUser(ctx context.Context, userID string) ([]*schedule.Block, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_blocks WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule blocks: %w", err)
	}
	defer rows.Close()

	blocks := make([]*schedule.Block, 0)
	for rows.Next() {
		block, err := r.scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, rows.Err()
}

// scanBlock scans a block row from pgx.Row or pgx.Rows.
func (r *ScheduleRepository) scanBlock(row pgx.Row) (*schedule.Block, error) {
	var b schedule.Block
	var kind, day string

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&kind,
		&day,
		&b.StartTime,
		&b.EndTime,
		&b.Location,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, schedule.ErrBlockNotFound
		}
		return nil, fmt.Errorf("failed to scan schedule block: %w", err)
	}

	b.Kind = schedule.Kind(kind)
	b.Recurrence, err = schedule.ParseRecurrence(day)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored recurrence for block %s: %w", b.ID, err)
	}

	return &b, nil
}
