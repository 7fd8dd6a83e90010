package syllabus

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidTitle - the title is empty or too long.
	ErrInvalidTitle = errors.New("invalid title: must be 1-200 chars")

	// ErrInvalidStrength - the decay strength is not positive.
	ErrInvalidStrength = errors.New("invalid strength: must be > 0")

	// ErrModuleNotFound - the module does not exist.
	ErrModuleNotFound = errors.New("syllabus module not found")

	// ErrModuleAlreadyExists - a module with this ID already exists.
	ErrModuleAlreadyExists = errors.New("syllabus module already exists")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: MODULE
// ══════════════════════════════════════════════════════════════════════════════

// Module is one unit of a course syllabus moving through the study lifecycle.
type Module struct {
	ID     string
	UserID string

	// Title - module title.
	Title string

	// Course - owning course name, free text.
	Course string

	// Topics - the subtopics covered by the module.
	Topics []string

	// Status - lifecycle position.
	Status Status

	// LastStudiedAt - set every time the module enters Completed or Revised.
	// Nil until the module has been studied once.
	LastStudiedAt *time.Time

	// Strength - forgetting-curve decay constant in days. Higher means the
	// material is retained longer.
	Strength float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewModuleParams contains parameters for creating a module.
type NewModuleParams struct {
	ID       string
	UserID   string
	Title    string
	Course   string
	Topics   []string
	Strength float64
}

// NewModule creates a new module in the Pending state.
// A zero strength defaults to 1.0 (forgetting halves in about 17 hours,
// typical for unreviewed material).
func NewModule(params NewModuleParams) (*Module, error) {
	if params.ID == "" {
		return nil, errors.New("module id is required")
	}
	if params.UserID == "" {
		return nil, errors.New("module user id is required")
	}

	title := strings.TrimSpace(params.Title)
	if len(title) == 0 || len(title) > 200 {
		return nil, ErrInvalidTitle
	}

	strength := params.Strength
	if strength == 0 {
		strength = 1.0
	}
	if strength < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStrength, params.Strength)
	}

	now := time.Now().UTC()
	return &Module{
		ID:        params.ID,
		UserID:    params.UserID,
		Title:     title,
		Course:    strings.TrimSpace(params.Course),
		Topics:    append([]string(nil), params.Topics...),
		Status:    StatusPending,
		Strength:  strength,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Advance moves the module to the next lifecycle status. This is the single
// status mutator: entering Completed or Revised records now as the last study
// session, which restarts the forgetting curve.
func (m *Module) Advance(now time.Time) {
	m.Status = m.Status.Next()
	if m.Status.IsStudied() {
		at := now
		m.LastStudiedAt = &at
	}
	m.UpdatedAt = now
}

// ShowsRetention reports whether a retention score should be displayed for
// this module.
func (m *Module) ShowsRetention() bool {
	return m.Status.IsStudied()
}

// RetentionAt returns the module's retention score at the given instant.
func (m *Module) RetentionAt(now time.Time) int {
	return Retention(m.LastStudiedAt, m.Strength, now)
}

// Apply updates the descriptive fields from params, revalidating them.
// Status and LastStudiedAt are only ever changed through Advance.
func (m *Module) Apply(params NewModuleParams) error {
	updated, err := NewModule(NewModuleParams{
		ID:       m.ID,
		UserID:   m.UserID,
		Title:    params.Title,
		Course:   params.Course,
		Topics:   params.Topics,
		Strength: params.Strength,
	})
	if err != nil {
		return err
	}

	m.Title = updated.Title
	m.Course = updated.Course
	m.Topics = updated.Topics
	m.Strength = updated.Strength
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// String returns a short representation for logging.
func (m *Module) String() string {
	return fmt.Sprintf("Module{ID: %s, Title: %s, Status: %s}", m.ID, m.Title, m.Status)
}

// Clone creates a deep copy of the module, used for snapshot/rollback.
func (m *Module) Clone() *Module {
	if m == nil {
		return nil
	}
	clone := *m
	clone.Topics = append([]string(nil), m.Topics...)
	if m.LastStudiedAt != nil {
		at := *m.LastStudiedAt
		clone.LastStudiedAt = &at
	}
	return &clone
}
