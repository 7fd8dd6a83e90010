package agenda

import (
	"sort"
	"time"

	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// AGENDA MERGER
// ══════════════════════════════════════════════════════════════════════════════

// Merger answers per-day agenda queries over one snapshot. Build one per
// request; the index is computed once and reused across every day of a month
// render.
type Merger struct {
	snap  Snapshot
	index Index
}

// NewMerger builds a merger (and its index) from a snapshot.
func NewMerger(snap Snapshot) *Merger {
	return &Merger{snap: snap, index: BuildIndex(snap)}
}

// NewMergerWithIndex builds a merger reusing an already-built index, e.g. one
// loaded from the cache. The index must have been built from the same
// snapshot contents.
func NewMergerWithIndex(snap Snapshot, idx Index) *Merger {
	if idx == nil {
		idx = BuildIndex(snap)
	}
	return &Merger{snap: snap, index: idx}
}

// Index exposes the underlying date index, used by the cache layer.
func (m *Merger) Index() Index {
	return m.index
}

// Compact returns the month-view entries for one date: the indexed dated
// items plus any weekly blocks recurring on that weekday. Unordered; compact
// cells render dots, not times.
func (m *Merger) Compact(date time.Time) []Entry {
	indexed := m.index.Lookup(timeutil.DateKey(date))
	entries := make([]Entry, 0, len(indexed)+4)

	for _, block := range m.snap.Blocks {
		if block.Recurrence.IsWeekly() && block.Recurrence.Matches(date) {
			entries = append(entries, Entry{
				Kind:     ItemSchedule,
				ID:       block.ID,
				Title:    block.Title,
				ColorTag: block.Kind.ColorTag(),
			})
		}
	}

	return append(entries, indexed...)
}

// Detailed returns the full day view for one date, ordered by display time.
//
// Schedule blocks match by recurrence (weekly weekday or exact date).
// Assignments and exams land on their date, showing their time of day when
// the raw date carries one and end of day otherwise. Todos appear only when
// the requested date is today's date under now: open todos due today. A stale
// todo due yesterday vanishes from every view until rescheduled.
//
// Ordering is ascending by HH:mm (zero-padded, so string order is time
// order); items sharing a time keep source order: blocks, then assignments,
// then exams, then todos.
func (m *Merger) Detailed(date time.Time, now time.Time) []Item {
	dateKey := timeutil.DateKey(date)
	items := make([]Item, 0, 8)

	for _, block := range m.snap.Blocks {
		if !block.Recurrence.Matches(date) {
			continue
		}
		items = append(items, Item{
			Kind:     ItemSchedule,
			ID:       block.ID,
			Title:    block.Title,
			Time:     block.StartTime,
			EndTime:  block.EndTime,
			Location: block.Location,
		})
	}

	for _, assignment := range m.snap.Assignments {
		day, ok := assignment.DueDay()
		if !ok || day != dateKey {
			continue
		}
		items = append(items, Item{
			Kind:     ItemAssignment,
			ID:       assignment.ID,
			Title:    assignment.Title,
			Time:     assignment.DueClock(),
			Priority: assignment.Priority,
		})
	}

	for _, exam := range m.snap.Exams {
		day, ok := exam.Day()
		if !ok || day != dateKey {
			continue
		}
		items = append(items, Item{
			Kind:     ItemExam,
			ID:       exam.ID,
			Title:    exam.Title,
			Time:     exam.Clock(),
			Location: exam.Location,
		})
	}

	if dateKey == timeutil.DateKey(now) {
		for _, todo := range m.snap.Todos {
			if !todo.IsOpen() || !todo.DueOn(dateKey) {
				continue
			}
			items = append(items, Item{
				Kind:     ItemTodo,
				ID:       todo.ID,
				Title:    todo.Text,
				Time:     timeutil.EndOfDayClock,
				Priority: todo.Priority,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time < items[j].Time
	})
	return items
}
