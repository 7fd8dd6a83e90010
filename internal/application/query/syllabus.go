package query

import (
	"context"
	"fmt"
	"time"

	"github.com/studyhall/studyhall/internal/domain/syllabus"
)

// ══════════════════════════════════════════════════════════════════════════════
// SYLLABUS OVERVIEW
// ══════════════════════════════════════════════════════════════════════════════

// SyllabusQueries serves the syllabus tracker views.
type SyllabusQueries struct {
	modules syllabus.Repository
}

// NewSyllabusQueries creates the syllabus query service.
func NewSyllabusQueries(modules syllabus.Repository) *SyllabusQueries {
	return &SyllabusQueries{modules: modules}
}

// ModuleView is one module with its derived retention state.
type ModuleView struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Course        string        `json:"course"`
	Topics        []string      `json:"topics"`
	Status        string        `json:"status"`
	LastStudiedAt *time.Time    `json:"last_studied_at,omitempty"`
	Strength      float64       `json:"strength"`
	Retention     *int          `json:"retention,omitempty"`
	RetentionBand syllabus.Band `json:"retention_band,omitempty"`
}

// NewModuleView derives the view for one module at the given instant.
// Retention is only populated for studied modules; the score is derived on
// every read and never persisted.
func NewModuleView(m *syllabus.Module, now time.Time) ModuleView {
	view := ModuleView{
		ID:            m.ID,
		Title:         m.Title,
		Course:        m.Course,
		Topics:        m.Topics,
		Status:        string(m.Status),
		LastStudiedAt: m.LastStudiedAt,
		Strength:      m.Strength,
	}

	if m.ShowsRetention() {
		score := m.RetentionAt(now)
		view.Retention = &score
		view.RetentionBand = syllabus.ClassifyRetention(score)
	}

	return view
}

// GetOverview returns every module of the user with retention computed at now.
func (q *SyllabusQueries) GetOverview(ctx context.Context, userID string, now time.Time) ([]ModuleView, error) {
	modules, err := q.modules.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load syllabus modules: %w", err)
	}

	views := make([]ModuleView, len(modules))
	for i, m := range modules {
		views[i] = NewModuleView(m, now)
	}
	return views, nil
}

// GetAtRisk returns the studied modules whose retention has dropped into the
// at-risk band. Used by the revision scan job.
func (q *SyllabusQueries) GetAtRisk(ctx context.Context, userID string, now time.Time) ([]ModuleView, error) {
	views, err := q.GetOverview(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	atRisk := make([]ModuleView, 0)
	for _, v := range views {
		if v.Retention != nil && v.RetentionBand == syllabus.BandAtRisk {
			atRisk = append(atRisk, v)
		}
	}
	return atRisk, nil
}
