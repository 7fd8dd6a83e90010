package task

import (
	"regexp"
	"strings"
	"time"

	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// QUICK-ADD PARSER
// ══════════════════════════════════════════════════════════════════════════════

var (
	inboxRe    = regexp.MustCompile(`(?i)\b(inbox|no date)\b`)
	priorityRe = regexp.MustCompile(`(?i)\bp([1-4])\b`)
	todayRe    = regexp.MustCompile(`\btoday\b`)
	tomorrowRe = regexp.MustCompile(`\btomorrow\b`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// QuickAddResult is the structured outcome of parsing one quick-add line.
type QuickAddResult struct {
	// Text - the remaining task text after keyword extraction.
	Text string

	// DueDate - yyyy-MM-dd, or nil for an inbox task.
	DueDate *string

	// Priority - 1..4, defaulting to 4.
	Priority int
}

// ParseQuickAdd extracts a due date and priority from a free-text task line.
//
// Rules run in a fixed order and each strips its matched token before the
// next rule sees the text:
//
//  1. The due date defaults to today.
//  2. "inbox" or "no date" clears the due date.
//  3. A p1..p4 token sets the priority; absent means 4.
//  4. "today" is stripped without effect; otherwise "tomorrow" sets the due
//     date to today+1.
//  5. Whatever remains, trimmed, is the task text.
//
// Note the rule 2 / rule 4 interaction: "inbox" clears the date but a later
// "tomorrow" in the same line still sets it, because rule 4 runs
// unconditionally after rule 2. Kept for compatibility with existing inputs.
func ParseQuickAdd(input string, today time.Time) QuickAddResult {
	text := input

	todayKey := timeutil.DateKey(today)
	dueDate := &todayKey

	if inboxRe.MatchString(text) {
		dueDate = nil
		text = inboxRe.ReplaceAllString(text, "")
	}

	priority := 4
	if m := priorityRe.FindStringSubmatch(text); m != nil {
		priority = int(m[1][0] - '0')
		text = priorityRe.ReplaceAllString(text, "")
	}

	if todayRe.MatchString(text) {
		text = todayRe.ReplaceAllString(text, "")
	} else if tomorrowRe.MatchString(text) {
		tomorrowKey := timeutil.DateKey(timeutil.AddDays(today, 1))
		dueDate = &tomorrowKey
		text = tomorrowRe.ReplaceAllString(text, "")
	}

	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))

	return QuickAddResult{
		Text:     text,
		DueDate:  dueDate,
		Priority: priority,
	}
}
