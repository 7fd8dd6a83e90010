// Package agenda builds calendar views over the four source collections:
// schedule blocks, assignments, exams and todos. A date-keyed index gives O(1)
// per-day lookup of dated items; the merger layers weekday recurrence and
// today-only todos on top and orders the result for display.
//
// Everything here is a pure function over an in-memory snapshot. Malformed
// dates drop the affected item from the views; they never fail a render.
package agenda

import (
	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/internal/domain/task"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// ItemKind identifies the source collection of an agenda item.
type ItemKind string

const (
	ItemSchedule   ItemKind = "schedule"
	ItemAssignment ItemKind = "assignment"
	ItemExam       ItemKind = "exam"
	ItemTodo       ItemKind = "todo"
)

// ColorTag returns the display color for the item kind in compact views.
func (k ItemKind) ColorTag() string {
	switch k {
	case ItemSchedule:
		return "blue"
	case ItemAssignment:
		return "amber"
	case ItemExam:
		return "red"
	default:
		return "green"
	}
}

// Entry is the compact month-view cell representation of one item.
type Entry struct {
	Kind     ItemKind `json:"kind"`
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	ColorTag string   `json:"color_tag"`
}

// Item is the detailed day-view representation of one item.
type Item struct {
	Kind     ItemKind `json:"kind"`
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Time     string   `json:"time"`               // HH:mm display time
	EndTime  string   `json:"end_time,omitempty"` // schedule blocks only
	Location string   `json:"location,omitempty"`
	Priority int      `json:"priority,omitempty"` // assignments and todos
}

// Snapshot is a read-only view of the four source collections for one user,
// taken at query time.
type Snapshot struct {
	Blocks      []*schedule.Block
	Assignments []*deadline.Assignment
	Exams       []*deadline.Exam
	Todos       []*task.Todo
}
