package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall/internal/application/query"
	"github.com/studyhall/studyhall/internal/domain/notification"
	"github.com/studyhall/studyhall/internal/domain/syllabus"
	"github.com/studyhall/studyhall/pkg/logger"
)

// RevisionScanJob alerts users whose studied modules have decayed into the
// at-risk retention band.
type RevisionScanJob struct {
	syllabi *query.SyllabusQueries
	modules syllabus.Repository
	channel notification.Channel
	log     *logger.Logger
}

// NewRevisionScanJob creates the revision scan job.
func NewRevisionScanJob(
	syllabi *query.SyllabusQueries,
	modules syllabus.Repository,
	channel notification.Channel,
	log *logger.Logger,
) *RevisionScanJob {
	if log == nil {
		log = logger.Default()
	}
	return &RevisionScanJob{
		syllabi: syllabi,
		modules: modules,
		channel: channel,
		log:     log.With(logger.Component("revision_scan")),
	}
}

// Name implements scheduler.Job.
func (j *RevisionScanJob) Name() string { return "revision_scan" }

// Run implements scheduler.Job.
func (j *RevisionScanJob) Run(ctx context.Context) error {
	users, err := j.modules.DistinctUsers(ctx)
	if err != nil {
		return fmt.Errorf("enumerate users: %w", err)
	}

	now := time.Now().UTC()
	var failed int
	for _, userID := range users {
		if err := j.scanUser(ctx, userID, now); err != nil {
			failed++
			j.log.Warn("revision scan failed", logger.UserID(userID), logger.Err(err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("revision scan failed for %d of %d users", failed, len(users))
	}
	return nil
}

func (j *RevisionScanJob) scanUser(ctx context.Context, userID string, now time.Time) error {
	atRisk, err := j.syllabi.GetAtRisk(ctx, userID, now)
	if err != nil {
		return err
	}
	if len(atRisk) == 0 {
		return nil
	}

	titles := make([]string, len(atRisk))
	ids := make([]string, len(atRisk))
	for i, v := range atRisk {
		titles[i] = fmt.Sprintf("%s (%d%%)", v.Title, *v.Retention)
		ids[i] = v.ID
	}

	return j.channel.Send(ctx, &notification.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      notification.TypeRevisionAlert,
		Title:     fmt.Sprintf("%d module(s) need revision", len(atRisk)),
		Body:      strings.Join(titles, "; "),
		CreatedAt: now,
		Metadata:  map[string]string{"module_ids": strings.Join(ids, ",")},
	})
}
