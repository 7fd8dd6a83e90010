// Package jobs contains the periodic background jobs.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall/internal/application/query"
	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/internal/domain/notification"
	"github.com/studyhall/studyhall/pkg/logger"
	"github.com/studyhall/studyhall/pkg/timeutil"
)

// AgendaDigestJob sends each user a morning summary of today's agenda.
// Users are enumerated from the assignment collection; a user with no
// assignments has nothing deadline-shaped to digest.
type AgendaDigestJob struct {
	agendas     *query.AgendaQueries
	assignments deadline.AssignmentRepository
	channel     notification.Channel
	log         *logger.Logger
}

// NewAgendaDigestJob creates the digest job.
func NewAgendaDigestJob(
	agendas *query.AgendaQueries,
	assignments deadline.AssignmentRepository,
	channel notification.Channel,
	log *logger.Logger,
) *AgendaDigestJob {
	if log == nil {
		log = logger.Default()
	}
	return &AgendaDigestJob{
		agendas:     agendas,
		assignments: assignments,
		channel:     channel,
		log:         log.With(logger.Component("agenda_digest")),
	}
}

// Name implements scheduler.Job.
func (j *AgendaDigestJob) Name() string { return "agenda_digest" }

// Run implements scheduler.Job. A failure for one user is logged and does
// not block the rest.
func (j *AgendaDigestJob) Run(ctx context.Context) error {
	users, err := j.assignments.DistinctUsers(ctx)
	if err != nil {
		return fmt.Errorf("enumerate users: %w", err)
	}

	now := time.Now().UTC()
	var failed int
	for _, userID := range users {
		if err := j.sendDigest(ctx, userID, now); err != nil {
			failed++
			j.log.Warn("digest failed", logger.UserID(userID), logger.Err(err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("digest failed for %d of %d users", failed, len(users))
	}
	return nil
}

func (j *AgendaDigestJob) sendDigest(ctx context.Context, userID string, now time.Time) error {
	day, err := j.agendas.GetDayAgenda(ctx, userID, now, now)
	if err != nil {
		return err
	}
	if len(day.Items) == 0 {
		return nil
	}

	var b strings.Builder
	for i, item := range day.Items {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s %s (%s)", item.Time, item.Title, item.Kind)
	}

	return j.channel.Send(ctx, &notification.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      notification.TypeAgendaDigest,
		Title:     fmt.Sprintf("Your agenda for %s", day.Date),
		Body:      b.String(),
		CreatedAt: now,
		Metadata:  map[string]string{"agenda_date": timeutil.DateKey(now)},
	})
}
