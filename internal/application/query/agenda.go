// Package query contains the read-side application services. Each service
// assembles a snapshot from the repositories and derives its view with the
// domain packages; nothing here writes.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/studyhall/studyhall/internal/domain/agenda"
	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/internal/domain/task"
	"github.com/studyhall/studyhall/pkg/logger"
	"github.com/studyhall/studyhall/pkg/timeutil"
)

// AgendaIndexCache caches per-user date indexes between mutations.
// Implementations must fail soft: a miss and an error look the same.
type AgendaIndexCache interface {
	StoreIndex(ctx context.Context, userID string, idx agenda.Index) error
	GetIndex(ctx context.Context, userID string) (agenda.Index, bool)
	Invalidate(ctx context.Context, userID string) error
}

// AgendaQueries serves the day and month agenda views.
type AgendaQueries struct {
	blocks      schedule.Repository
	assignments deadline.AssignmentRepository
	exams       deadline.ExamRepository
	todos       task.Repository
	cache       AgendaIndexCache // nil disables caching
	log         *logger.Logger
}

// NewAgendaQueries creates the agenda query service. cache may be nil.
func NewAgendaQueries(
	blocks schedule.Repository,
	assignments deadline.AssignmentRepository,
	exams deadline.ExamRepository,
	todos task.Repository,
	cache AgendaIndexCache,
	log *logger.Logger,
) *AgendaQueries {
	if log == nil {
		log = logger.Default()
	}
	return &AgendaQueries{
		blocks:      blocks,
		assignments: assignments,
		exams:       exams,
		todos:       todos,
		cache:       cache,
		log:         log.With(logger.Component("agenda_queries")),
	}
}

// DayAgenda is the detailed view of one calendar day.
type DayAgenda struct {
	Date  string        `json:"date"`
	Items []agenda.Item `json:"items"`
}

// MonthAgenda maps each day of a month to its compact entries. Days without
// entries are omitted.
type MonthAgenda struct {
	Month string                    `json:"month"`
	Days  map[string][]agenda.Entry `json:"days"`
}

// Snapshot loads the user's four collections. Exposed for the scheduler jobs
// and the ICS exporter, which need the raw snapshot rather than a view.
func (q *AgendaQueries) Snapshot(ctx context.Context, userID string) (agenda.Snapshot, error) {
	blocks, err := q.blocks.ListByUser(ctx, userID)
	if err != nil {
		return agenda.Snapshot{}, fmt.Errorf("load schedule blocks: %w", err)
	}
	assignments, err := q.assignments.ListByUser(ctx, userID)
	if err != nil {
		return agenda.Snapshot{}, fmt.Errorf("load assignments: %w", err)
	}
	exams, err := q.exams.ListByUser(ctx, userID)
	if err != nil {
		return agenda.Snapshot{}, fmt.Errorf("load exams: %w", err)
	}
	todos, err := q.todos.ListByUser(ctx, userID)
	if err != nil {
		return agenda.Snapshot{}, fmt.Errorf("load todos: %w", err)
	}

	return agenda.Snapshot{
		Blocks:      blocks,
		Assignments: assignments,
		Exams:       exams,
		Todos:       todos,
	}, nil
}

// merger builds a merger for the user, reusing the cached index when present.
func (q *AgendaQueries) merger(ctx context.Context, userID string) (*agenda.Merger, error) {
	snap, err := q.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	if q.cache == nil {
		return agenda.NewMerger(snap), nil
	}

	if idx, ok := q.cache.GetIndex(ctx, userID); ok {
		return agenda.NewMergerWithIndex(snap, idx), nil
	}

	m := agenda.NewMerger(snap)
	if err := q.cache.StoreIndex(ctx, userID, m.Index()); err != nil {
		q.log.Warn("failed to cache agenda index", logger.UserID(userID), logger.Err(err))
	}
	return m, nil
}

// GetDayAgenda returns the ordered detailed agenda for one date.
// now decides todo visibility: only today's view shows open todos due today.
func (q *AgendaQueries) GetDayAgenda(ctx context.Context, userID string, date, now time.Time) (*DayAgenda, error) {
	m, err := q.merger(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DayAgenda{
		Date:  timeutil.DateKey(date),
		Items: m.Detailed(date, now),
	}, nil
}

// GetMonthAgenda returns the compact entries for every day of a month that
// has any. month is "yyyy-MM".
func (q *AgendaQueries) GetMonthAgenda(ctx context.Context, userID, month string) (*MonthAgenda, error) {
	days, err := timeutil.MonthDays(month)
	if err != nil {
		return nil, err
	}

	m, err := q.merger(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &MonthAgenda{Month: month, Days: make(map[string][]agenda.Entry)}
	for _, d := range days {
		entries := m.Compact(d)
		if len(entries) > 0 {
			out.Days[timeutil.DateKey(d)] = entries
		}
	}
	return out, nil
}
