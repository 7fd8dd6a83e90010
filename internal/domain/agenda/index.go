package agenda

import (
	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// TEMPORAL INDEX
// ══════════════════════════════════════════════════════════════════════════════

// Index maps yyyy-MM-dd date keys to the compact entries landing on that day.
// It covers every item with an exact date: one-off schedule blocks,
// assignments and exams. Weekly blocks have no single date and are matched by
// weekday at query time; todos are today-only and never indexed.
//
// The index is rebuilt from a fresh snapshot whenever a source collection
// changes, never patched in place.
type Index map[string][]Entry

// BuildIndex constructs the date index from a snapshot. Items whose date
// fails to parse are skipped.
func BuildIndex(snap Snapshot) Index {
	idx := make(Index)

	for _, block := range snap.Blocks {
		if block.Recurrence.Mode != schedule.RecurOnce {
			continue
		}
		key := timeutil.DateKey(block.Recurrence.Date)
		idx[key] = append(idx[key], Entry{
			Kind:     ItemSchedule,
			ID:       block.ID,
			Title:    block.Title,
			ColorTag: block.Kind.ColorTag(),
		})
	}

	for _, assignment := range snap.Assignments {
		key, ok := assignment.DueDay()
		if !ok {
			continue
		}
		idx[key] = append(idx[key], Entry{
			Kind:     ItemAssignment,
			ID:       assignment.ID,
			Title:    assignment.Title,
			ColorTag: ItemAssignment.ColorTag(),
		})
	}

	for _, exam := range snap.Exams {
		key, ok := exam.Day()
		if !ok {
			continue
		}
		idx[key] = append(idx[key], Entry{
			Kind:     ItemExam,
			ID:       exam.ID,
			Title:    exam.Title,
			ColorTag: ItemExam.ColorTag(),
		})
	}

	return idx
}

// Lookup returns the indexed entries for a date key. The returned slice is
// shared with the index and must not be mutated.
func (idx Index) Lookup(dateKey string) []Entry {
	return idx[dateKey]
}
