// Package deadline contains the domain model for dated obligations:
// assignments with a due timestamp and exams with a scheduled date.
// Due dates are kept in their raw wire form (yyyy-MM-dd, optionally followed
// by THH:mm); the agenda layer extracts the portions it needs and drops
// malformed values instead of failing.
package deadline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// AssignmentStatus tracks an assignment through hand-in.
type AssignmentStatus string

const (
	StatusPending   AssignmentStatus = "pending"
	StatusSubmitted AssignmentStatus = "submitted"
	StatusGraded    AssignmentStatus = "graded"
)

// IsValid reports whether the status is a known value.
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusGraded:
		return true
	default:
		return false
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidDueDate - the due date has no yyyy-MM-dd prefix.
	ErrInvalidDueDate = errors.New("invalid due date: must start with yyyy-MM-dd")

	// ErrInvalidPriority - priority out of the 1..4 range.
	ErrInvalidPriority = errors.New("invalid priority: must be 1-4")

	// ErrInvalidStatus - unknown assignment status.
	ErrInvalidStatus = errors.New("invalid assignment status")

	// ErrInvalidTitle - the title is empty or too long.
	ErrInvalidTitle = errors.New("invalid title: must be 1-200 chars")

	// ErrAssignmentNotFound - the assignment does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrExamNotFound - the exam does not exist.
	ErrExamNotFound = errors.New("exam not found")

	// ErrAlreadyExists - an entity with this ID already exists.
	ErrAlreadyExists = errors.New("deadline entity already exists")
)

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY: ASSIGNMENT
// ══════════════════════════════════════════════════════════════════════════════

// Assignment is a piece of coursework with a due timestamp.
type Assignment struct {
	ID     string
	UserID string

	// Title - display title.
	Title string

	// Course - owning course name, free text.
	Course string

	// DueDate - raw wire form: "2025-04-02" or "2025-04-02T17:00".
	// Validated to carry a date prefix on creation; the time portion is
	// optional and items without one render at end of day.
	DueDate string

	// Priority - 1 (highest) to 4 (lowest).
	Priority int

	// Status - hand-in progress.
	Status AssignmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAssignmentParams contains parameters for creating an assignment.
type NewAssignmentParams struct {
	ID       string
	UserID   string
	Title    string
	Course   string
	DueDate  string
	Priority int
	Status   AssignmentStatus
}

// NewAssignment creates a new assignment, validating all fields.
// An empty status defaults to pending; a zero priority defaults to 4.
func NewAssignment(params NewAssignmentParams) (*Assignment, error) {
	if params.ID == "" {
		return nil, errors.New("assignment id is required")
	}
	if params.UserID == "" {
		return nil, errors.New("assignment user id is required")
	}

	title := strings.TrimSpace(params.Title)
	if len(title) == 0 || len(title) > 200 {
		return nil, ErrInvalidTitle
	}

	if _, ok := timeutil.DatePortion(params.DueDate); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, params.DueDate)
	}

	priority := params.Priority
	if priority == 0 {
		priority = 4
	}
	if priority < 1 || priority > 4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, params.Priority)
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, params.Status)
	}

	now := time.Now().UTC()
	return &Assignment{
		ID:        params.ID,
		UserID:    params.UserID,
		Title:     title,
		Course:    strings.TrimSpace(params.Course),
		DueDate:   params.DueDate,
		Priority:  priority,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply updates the mutable fields from params, revalidating them.
func (a *Assignment) Apply(params NewAssignmentParams) error {
	updated, err := NewAssignment(NewAssignmentParams{
		ID:       a.ID,
		UserID:   a.UserID,
		Title:    params.Title,
		Course:   params.Course,
		DueDate:  params.DueDate,
		Priority: params.Priority,
		Status:   params.Status,
	})
	if err != nil {
		return err
	}

	a.Title = updated.Title
	a.Course = updated.Course
	a.DueDate = updated.DueDate
	a.Priority = updated.Priority
	a.Status = updated.Status
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// DueDay returns the yyyy-MM-dd portion of the due date.
func (a *Assignment) DueDay() (string, bool) {
	return timeutil.DatePortion(a.DueDate)
}

// DueClock returns the HH:mm portion of the due date, falling back to end of
// day when the due date is date-only.
func (a *Assignment) DueClock() string {
	if clock, ok := timeutil.ClockPortion(a.DueDate); ok {
		return clock
	}
	return timeutil.EndOfDayClock
}

// IsOpen reports whether the assignment still needs work.
func (a *Assignment) IsOpen() bool {
	return a.Status == StatusPending
}

// Clone creates a copy of the assignment, used for snapshot/rollback.
func (a *Assignment) Clone() *Assignment {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY: EXAM
// ══════════════════════════════════════════════════════════════════════════════

// Exam is a scheduled examination.
type Exam struct {
	ID     string
	UserID string

	Title  string
	Course string

	// Date - raw wire form: "2025-06-12" or "2025-06-12T09:00".
	Date string

	// Location - optional hall/room.
	Location string

	// SyllabusNotes - free-text revision notes attached to the exam.
	SyllabusNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExamParams contains parameters for creating an exam.
type NewExamParams struct {
	ID            string
	UserID        string
	Title         string
	Course        string
	Date          string
	Location      string
	SyllabusNotes string
}

// NewExam creates a new exam, validating all fields.
func NewExam(params NewExamParams) (*Exam, error) {
	if params.ID == "" {
		return nil, errors.New("exam id is required")
	}
	if params.UserID == "" {
		return nil, errors.New("exam user id is required")
	}

	title := strings.TrimSpace(params.Title)
	if len(title) == 0 || len(title) > 200 {
		return nil, ErrInvalidTitle
	}

	if _, ok := timeutil.DatePortion(params.Date); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, params.Date)
	}

	now := time.Now().UTC()
	return &Exam{
		ID:            params.ID,
		UserID:        params.UserID,
		Title:         title,
		Course:        strings.TrimSpace(params.Course),
		Date:          params.Date,
		Location:      strings.TrimSpace(params.Location),
		SyllabusNotes: params.SyllabusNotes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Apply updates the mutable fields from params, revalidating them.
func (e *Exam) Apply(params NewExamParams) error {
	updated, err := NewExam(NewExamParams{
		ID:            e.ID,
		UserID:        e.UserID,
		Title:         params.Title,
		Course:        params.Course,
		Date:          params.Date,
		Location:      params.Location,
		SyllabusNotes: params.SyllabusNotes,
	})
	if err != nil {
		return err
	}

	e.Title = updated.Title
	e.Course = updated.Course
	e.Date = updated.Date
	e.Location = updated.Location
	e.SyllabusNotes = updated.SyllabusNotes
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// Day returns the yyyy-MM-dd portion of the exam date.
func (e *Exam) Day() (string, bool) {
	return timeutil.DatePortion(e.Date)
}

// Clock returns the HH:mm portion of the exam date, falling back to end of
// day when the date is date-only.
func (e *Exam) Clock() string {
	if clock, ok := timeutil.ClockPortion(e.Date); ok {
		return clock
	}
	return timeutil.EndOfDayClock
}

// Clone creates a copy of the exam, used for snapshot/rollback.
func (e *Exam) Clone() *Exam {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}
