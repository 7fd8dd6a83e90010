// Package schedule contains the domain model for timetable blocks: recurring
// weekly classes and one-off dated sessions. This is core business logic with
// no external dependencies.
package schedule

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

// Kind classifies a schedule block.
type Kind string

const (
	KindLecture  Kind = "Lecture"
	KindLab      Kind = "Lab"
	KindStudy    Kind = "Study"
	KindPersonal Kind = "Personal"
)

// IsValid reports whether the kind is one of the four known values.
func (k Kind) IsValid() bool {
	switch k {
	case KindLecture, KindLab, KindStudy, KindPersonal:
		return true
	default:
		return false
	}
}

// ColorTag returns the display color associated with the kind.
func (k Kind) ColorTag() string {
	switch k {
	case KindLecture:
		return "blue"
	case KindLab:
		return "purple"
	case KindStudy:
		return "green"
	default:
		return "gray"
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidKind - the block kind is not one of the known values.
	ErrInvalidKind = errors.New("invalid block kind")

	// ErrInvalidRecurrence - the day field is neither an ISO date nor a weekday name.
	ErrInvalidRecurrence = errors.New("invalid recurrence: day must be yyyy-MM-dd or an English weekday name")

	// ErrInvalidClock - a start/end time is not a zero-padded 24h HH:mm string.
	ErrInvalidClock = errors.New("invalid time: must be HH:mm (24h, zero-padded)")

	// ErrInvalidTitle - the title is empty or too long.
	ErrInvalidTitle = errors.New("invalid title: must be 1-200 chars")

	// ErrBlockNotFound - the schedule block does not exist.
	ErrBlockNotFound = errors.New("schedule block not found")

	// ErrBlockAlreadyExists - a block with this ID already exists.
	ErrBlockAlreadyExists = errors.New("schedule block already exists")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: BLOCK
// ══════════════════════════════════════════════════════════════════════════════

// Block is a timetable entry: either a weekly recurring slot (e.g. a lecture
// every Monday) or a one-off session on an exact date.
type Block struct {
	// ID - unique identifier (UUID string).
	ID string

	// UserID - owner reference. Authentication is external; this is an
	// opaque string supplied by the host.
	UserID string

	// Title - display title.
	Title string

	// Kind - block classification.
	Kind Kind

	// Recurrence - exactly one recurrence mode, parsed from the wire "day"
	// field at the ingestion boundary.
	Recurrence Recurrence

	// StartTime / EndTime - HH:mm wall-clock strings.
	StartTime string
	EndTime   string

	// Location - optional room/place.
	Location string

	// CreatedAt / UpdatedAt - record timestamps.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBlockParams contains parameters for creating a new block.
type NewBlockParams struct {
	ID        string
	UserID    string
	Title     string
	Kind      Kind
	Day       string // wire form: ISO date or weekday name
	StartTime string
	EndTime   string
	Location  string
}

// NewBlock creates a new schedule block, validating all fields and parsing
// the recurrence discriminator once.
func NewBlock(params NewBlockParams) (*Block, error) {
	if params.ID == "" {
		return nil, errors.New("block id is required")
	}
	if params.UserID == "" {
		return nil, errors.New("block user id is required")
	}

	title := strings.TrimSpace(params.Title)
	if len(title) == 0 || len(title) > 200 {
		return nil, ErrInvalidTitle
	}

	if !params.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, params.Kind)
	}

	rec, err := ParseRecurrence(params.Day)
	if err != nil {
		return nil, err
	}

	if !timeutil.IsClock(params.StartTime) || !timeutil.IsClock(params.EndTime) {
		return nil, ErrInvalidClock
	}

	now := time.Now().UTC()
	return &Block{
		ID:         params.ID,
		UserID:     params.UserID,
		Title:      title,
		Kind:       params.Kind,
		Recurrence: rec,
		StartTime:  params.StartTime,
		EndTime:    params.EndTime,
		Location:   strings.TrimSpace(params.Location),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Apply updates the mutable fields from params, revalidating them.
// ID, UserID and CreatedAt never change.
func (b *Block) Apply(params NewBlockParams) error {
	updated, err := NewBlock(NewBlockParams{
		ID:        b.ID,
		UserID:    b.UserID,
		Title:     params.Title,
		Kind:      params.Kind,
		Day:       params.Day,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Location:  params.Location,
	})
	if err != nil {
		return err
	}

	b.Title = updated.Title
	b.Kind = updated.Kind
	b.Recurrence = updated.Recurrence
	b.StartTime = updated.StartTime
	b.EndTime = updated.EndTime
	b.Location = updated.Location
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// String returns a short representation for logging.
func (b *Block) String() string {
	return fmt.Sprintf("Block{ID: %s, Title: %s, Kind: %s, Day: %s}",
		b.ID, b.Title, b.Kind, b.Recurrence.DayString())
}

// Clone creates a copy of the block, used for snapshot/rollback.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}
