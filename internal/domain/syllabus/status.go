// Package syllabus contains the domain model for study modules: the four-state
// study lifecycle and the forgetting-curve retention score.
package syllabus

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status is a syllabus module's position in the study lifecycle.
// The literals are part of the wire contract.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusRevised    Status = "Revised"
)

// ParseStatus maps a stored string to a Status. Unknown values fall back to
// Pending rather than erroring, so a corrupted row never crashes a render.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusRevised:
		return Status(s)
	default:
		return StatusPending
	}
}

// Next returns the successor in the fixed cycle
// Pending → InProgress → Completed → Revised → Pending.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	case StatusCompleted:
		return StatusRevised
	case StatusRevised:
		return StatusPending
	default:
		// Unknown statuses behave as Pending.
		return StatusInProgress
	}
}

// IsStudied reports whether the status represents completed study, i.e. the
// states in which a retention score is meaningful.
func (s Status) IsStudied() bool {
	return s == StatusCompleted || s == StatusRevised
}
