package server

import (
	"log/slog"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/teemow/homecal/internal/logging"
	"github.com/teemow/homecal/internal/store"
)

// defaultEventDuration is assumed for timed events, which are stored
// with a start time only.
const defaultEventDuration = time.Hour

// handleICS serves the stored events as an iCalendar feed.
//
// GET /calendar.ics
func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	events, err := s.sc.Events().List(r.Context())
	if err != nil {
		slog.Error("failed to load events for ICS feed", logging.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	cal := buildICS(events)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(cal.Serialize()))
}

// buildICS converts the event collection into a VCALENDAR. Events with
// unparseable dates are skipped rather than failing the whole feed.
func buildICS(events []store.Event) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//homecal//calendar//EN")

	now := time.Now().UTC()
	for _, e := range events {
		day, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			slog.Warn("skipping event with invalid date in ICS feed", "id", e.ID, "date", e.Date)
			continue
		}

		ev := cal.AddEvent(e.ID)
		ev.SetDtStampTime(now)
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}

		if e.Time == "" {
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}

		start := day
		if tod, err := time.Parse("15:04", e.Time); err == nil {
			start = day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute)
		}
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(defaultEventDuration))
	}
	return cal
}
