package http

import (
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/studyhall/studyhall/internal/domain/agenda"
	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ICS CALENDAR EXPORT
// ══════════════════════════════════════════════════════════════════════════════

// byDay maps a weekday to its iCalendar BYDAY token.
var byDay = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

// handleExportICS renders the user's collections as an iCalendar feed.
// Weekly blocks become recurring VEVENTs; one-off blocks, assignments and
// exams become single events. Items with unparseable dates are skipped,
// matching the agenda views.
func (s *Server) handleExportICS(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	snap, err := s.deps.AgendaQueries.Snapshot(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	now := time.Now().UTC()
	cal := buildCalendar(snap, now)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="studyhall.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(cal.Serialize()))
}

// buildCalendar assembles the VCALENDAR from a snapshot. Split out so the
// rendering is testable without a server.
func buildCalendar(snap agenda.Snapshot, now time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//StudyHall//Dashboard//EN")

	for _, b := range snap.Blocks {
		addBlockEvent(cal, b, now)
	}

	for _, a := range snap.Assignments {
		day, ok := a.DueDay()
		if !ok {
			continue
		}
		start, err := combineDateClock(day, a.DueClock())
		if err != nil {
			continue
		}
		e := cal.AddEvent("assignment-" + a.ID + "@studyhall")
		e.SetDtStampTime(now)
		e.SetStartAt(start)
		e.SetEndAt(start.Add(30 * time.Minute))
		e.SetSummary(fmt.Sprintf("Due: %s", a.Title))
		if a.Course != "" {
			e.SetDescription(a.Course)
		}
	}

	for _, x := range snap.Exams {
		day, ok := x.Day()
		if !ok {
			continue
		}
		start, err := combineDateClock(day, x.Clock())
		if err != nil {
			continue
		}
		e := cal.AddEvent("exam-" + x.ID + "@studyhall")
		e.SetDtStampTime(now)
		e.SetStartAt(start)
		e.SetEndAt(start.Add(2 * time.Hour))
		e.SetSummary(fmt.Sprintf("Exam: %s", x.Title))
		if x.Location != "" {
			e.SetLocation(x.Location)
		}
		if x.Course != "" {
			e.SetDescription(x.Course)
		}
	}

	return cal
}

func addBlockEvent(cal *ics.Calendar, b *schedule.Block, now time.Time) {
	var start time.Time
	var err error

	if b.Recurrence.IsWeekly() {
		start, err = combineDateClock(timeutil.DateKey(nextWeekday(now, b.Recurrence.Weekday)), b.StartTime)
	} else {
		start, err = combineDateClock(timeutil.DateKey(b.Recurrence.Date), b.StartTime)
	}
	if err != nil {
		return
	}

	end, err := combineDateClock(timeutil.DateKey(start), b.EndTime)
	if err != nil {
		return
	}
	if end.Before(start) {
		end = start
	}

	e := cal.AddEvent("block-" + b.ID + "@studyhall")
	e.SetDtStampTime(now)
	e.SetStartAt(start)
	e.SetEndAt(end)
	e.SetSummary(b.Title)
	if b.Location != "" {
		e.SetLocation(b.Location)
	}
	if b.Recurrence.IsWeekly() {
		e.AddRrule("FREQ=WEEKLY;BYDAY=" + byDay[b.Recurrence.Weekday])
	}
}

// nextWeekday returns the first date on or after t that falls on wd.
func nextWeekday(t time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(t.Weekday()) + 7) % 7
	return timeutil.AddDays(t, delta)
}

// combineDateClock parses "yyyy-MM-dd" + "HH:mm" into a UTC instant.
func combineDateClock(day, clock string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", day+" "+clock)
}
