package server

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/teemow/homecal/internal/calendar"
	"github.com/teemow/homecal/internal/logging"
	"github.com/teemow/homecal/internal/store"
	"github.com/teemow/homecal/internal/view"
)

// pageData carries everything the HTML templates need. Settings feed
// the CSS variables on every page; the remaining fields are per-page.
type pageData struct {
	Title    string
	Active   string
	Settings store.Settings

	// Index page
	Month     *view.Month
	Detail    *view.DayDetail
	PrevYear  int
	PrevMonth int
	NextYear  int
	NextMonth int

	// Events page
	Events []store.Event

	// Settings page
	Palettes []store.Palette

	// Sync page
	Account    string
	Authorized bool
}

// ThemeCSS renders the settings as CSS custom properties. Built by hand
// because the contextual CSS escaper rejects quoted font family lists.
func (d pageData) ThemeCSS() template.CSS {
	css := fmt.Sprintf(`:root {
  --primary-color: %s;
  --secondary-color: %s;
  --accent-color: %s;
  --background-color: %s;
  --text-color: %s;
  --font-family: %s;
  --font-size: %s;
}`,
		d.Settings.PrimaryColor,
		d.Settings.SecondaryColor,
		d.Settings.AccentColor,
		d.Settings.BackgroundColor,
		d.Settings.TextColor,
		d.Settings.FontFamily,
		d.Settings.FontSize)
	return template.CSS(css)
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("failed to render page", "template", name, logging.Err(err))
	}
}

// handleIndex renders the month grid with prev/next navigation and an
// optional day detail panel.
//
// GET /?year=2026&month=9&date=2026-09-14
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	settings, err := s.sc.Settings().Get(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	now := time.Now()
	year := parseIntDefault(r.URL.Query().Get("year"), now.Year())
	monthNum := parseIntDefault(r.URL.Query().Get("month"), int(now.Month()))
	if monthNum < 1 || monthNum > 12 {
		monthNum = int(now.Month())
	}

	model, err := s.buildMonth(ctx, year, time.Month(monthNum), now)
	if err != nil {
		slog.Error("failed to build month grid", logging.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to build month grid")
		return
	}

	data := pageData{
		Title:    model.Title,
		Active:   "calendar",
		Settings: settings,
		Month:    &model,
	}

	prev := time.Date(year, time.Month(monthNum), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	next := time.Date(year, time.Month(monthNum), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	data.PrevYear, data.PrevMonth = prev.Year(), int(prev.Month())
	data.NextYear, data.NextMonth = next.Year(), int(next.Month())

	if date := r.URL.Query().Get("date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err == nil {
			events, err := s.sc.Events().ListForDate(ctx, date)
			if err == nil {
				detail := view.BuildDayDetail(date, events, settings)
				data.Detail = &detail
			}
		}
	}

	s.renderPage(w, "index.html", data)
}

// handleEventsPage renders the event form and the full event list.
func (s *Server) handleEventsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := s.sc.Settings().Get(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	events, err := s.sc.Events().List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	s.renderPage(w, "events.html", pageData{
		Title:    "Events",
		Active:   "events",
		Settings: settings,
		Events:   events,
	})
}

// handleSettingsPage renders the theme editor with palette presets.
func (s *Server) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := s.sc.Settings().Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	s.renderPage(w, "settings.html", pageData{
		Title:    "Settings",
		Active:   "settings",
		Settings: settings,
		Palettes: store.Palettes,
	})
}

// handleSyncPage renders the Google Calendar sync page with the
// authorization state of the configured account.
func (s *Server) handleSyncPage(w http.ResponseWriter, r *http.Request) {
	settings, err := s.sc.Settings().Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	account := s.sc.Config().Sync.Account
	s.renderPage(w, "google-sync.html", pageData{
		Title:      "Google Sync",
		Active:     "sync",
		Settings:   settings,
		Account:    account,
		Authorized: calendar.HasTokenForAccount(account),
	})
}
