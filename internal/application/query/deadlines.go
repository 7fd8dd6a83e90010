package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPCOMING DEADLINES
// ══════════════════════════════════════════════════════════════════════════════

// DeadlineQueries serves the combined upcoming-deadlines list.
type DeadlineQueries struct {
	assignments deadline.AssignmentRepository
	exams       deadline.ExamRepository
}

// NewDeadlineQueries creates the deadline query service.
func NewDeadlineQueries(assignments deadline.AssignmentRepository, exams deadline.ExamRepository) *DeadlineQueries {
	return &DeadlineQueries{assignments: assignments, exams: exams}
}

// UpcomingDeadline is one assignment or exam in the upcoming window.
type UpcomingDeadline struct {
	Kind     string `json:"kind"` // "assignment" or "exam"
	ID       string `json:"id"`
	Title    string `json:"title"`
	Course   string `json:"course"`
	Date     string `json:"date"` // yyyy-MM-dd
	Time     string `json:"time"` // HH:mm display time
	Priority int    `json:"priority,omitempty"`
	DaysLeft int    `json:"days_left"`
}

// GetUpcoming returns open assignments and exams landing within the next
// `days` days of now, soonest first. Items with unparseable dates are
// skipped.
func (q *DeadlineQueries) GetUpcoming(ctx context.Context, userID string, now time.Time, days int) ([]UpcomingDeadline, error) {
	if days <= 0 {
		days = 7
	}

	assignments, err := q.assignments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}
	exams, err := q.exams.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load exams: %w", err)
	}

	from := timeutil.DateKey(now)
	to := timeutil.DateKey(timeutil.AddDays(now, days))

	upcoming := make([]UpcomingDeadline, 0)

	for _, a := range assignments {
		day, ok := a.DueDay()
		if !ok || !a.IsOpen() || day < from || day > to {
			continue
		}
		upcoming = append(upcoming, UpcomingDeadline{
			Kind:     "assignment",
			ID:       a.ID,
			Title:    a.Title,
			Course:   a.Course,
			Date:     day,
			Time:     a.DueClock(),
			Priority: a.Priority,
			DaysLeft: daysLeft(from, day),
		})
	}

	for _, e := range exams {
		day, ok := e.Day()
		if !ok || day < from || day > to {
			continue
		}
		upcoming = append(upcoming, UpcomingDeadline{
			Kind:     "exam",
			ID:       e.ID,
			Title:    e.Title,
			Course:   e.Course,
			Date:     day,
			Time:     e.Clock(),
			DaysLeft: daysLeft(from, day),
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].Time < upcoming[j].Time
	})

	return upcoming, nil
}

func daysLeft(fromKey, dayKey string) int {
	from, err1 := timeutil.ParseDate(fromKey)
	day, err2 := timeutil.ParseDate(dayKey)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(day.Sub(from).Hours() / 24)
}
