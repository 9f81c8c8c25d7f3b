package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/teemow/homecal/internal/calendar"
	"github.com/teemow/homecal/internal/instrumentation"
	"github.com/teemow/homecal/internal/logging"
	"github.com/teemow/homecal/internal/store"
	"github.com/teemow/homecal/internal/view"
)

// handleEvents serves the event collection.
//
// GET  /api/events  — list all events
// POST /api/events  — add an event (JSON body), responds 201 with the
// stored event including its assigned id
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		events, err := s.sc.Events().List(ctx)
		if err != nil {
			s.recordStoreOp(ctx, instrumentation.OperationList, instrumentation.StatusError)
			slog.Error("failed to list events", logging.Err(err))
			writeError(w, http.StatusInternalServerError, "failed to load events")
			return
		}
		s.recordStoreOp(ctx, instrumentation.OperationList, instrumentation.StatusSuccess)
		writeJSON(w, http.StatusOK, events)

	case http.MethodPost:
		var e store.Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			writeError(w, http.StatusBadRequest, "invalid event payload")
			return
		}

		stored, err := s.sc.Events().Add(ctx, e)
		if err != nil {
			s.recordStoreOp(ctx, instrumentation.OperationAdd, instrumentation.StatusError)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.recordStoreOp(ctx, instrumentation.OperationAdd, instrumentation.StatusSuccess)
		slog.Info("event added", logging.Operation("add"), "id", stored.ID, "date", stored.Date)
		writeJSON(w, http.StatusCreated, stored)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleEventByPath serves the id- and date-addressed event routes.
//
// DELETE /api/events/{id}          — remove one event
// GET    /api/events/date/{date}   — events on a YYYY-MM-DD date
func (s *Server) handleEventByPath(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rest := strings.TrimPrefix(r.URL.Path, "/api/events/")

	if date, ok := strings.CutPrefix(rest, "date/"); ok {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}

		events, err := s.sc.Events().ListForDate(ctx, date)
		if err != nil {
			s.recordStoreOp(ctx, instrumentation.OperationList, instrumentation.StatusError)
			writeError(w, http.StatusInternalServerError, "failed to load events")
			return
		}
		s.recordStoreOp(ctx, instrumentation.OperationList, instrumentation.StatusSuccess)
		writeJSON(w, http.StatusOK, events)
		return
	}

	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := rest
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	remaining, err := s.sc.Events().Remove(ctx, id)
	if err != nil {
		s.recordStoreOp(ctx, instrumentation.OperationRemove, instrumentation.StatusError)
		writeError(w, http.StatusInternalServerError, "failed to remove event")
		return
	}
	s.recordStoreOp(ctx, instrumentation.OperationRemove, instrumentation.StatusSuccess)
	slog.Info("event removed", logging.Operation("remove"), "id", id)
	writeJSON(w, http.StatusOK, remaining)
}

// handleGrid serves the month view model.
//
// GET /api/grid?year=2026&month=9 — defaults to the current month
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := time.Now()
	year := parseIntDefault(r.URL.Query().Get("year"), now.Year())
	month := parseIntDefault(r.URL.Query().Get("month"), int(now.Month()))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	model, err := s.buildMonth(ctx, year, time.Month(month), now)
	if err != nil {
		slog.Error("failed to build month grid", logging.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to build month grid")
		return
	}
	writeJSON(w, http.StatusOK, model)
}

// buildMonth assembles the month view model from the store.
func (s *Server) buildMonth(ctx context.Context, year int, month time.Month, now time.Time) (view.Month, error) {
	settings, err := s.sc.Settings().Get(ctx)
	if err != nil {
		return view.Month{}, err
	}
	events, err := s.sc.Events().List(ctx)
	if err != nil {
		return view.Month{}, err
	}
	return view.BuildMonth(year, month, now, events, settings), nil
}

// handleSettings serves the settings singleton.
//
// GET /api/settings — current settings (defaults before first save)
// PUT /api/settings — replace wholesale; a palette name in the payload
// applies that palette's colors
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		settings, err := s.sc.Settings().Get(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		var settings store.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, "invalid settings payload")
			return
		}
		if _, err := store.ParsePalette(string(settings.Palette)); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := s.sc.Settings().Put(ctx, settings); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
		slog.Info("settings saved", logging.Operation("settings.put"), "palette", settings.Palette)
		writeJSON(w, http.StatusOK, settings)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSettingsReset restores the default settings.
//
// POST /api/settings/reset
func (s *Server) handleSettingsReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	settings, err := s.sc.Settings().Reset(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reset settings")
		return
	}
	slog.Info("settings reset to defaults", logging.Operation("settings.reset"))
	writeJSON(w, http.StatusOK, settings)
}

// handleSync runs one Google Calendar import.
//
// POST /api/sync — responds with the sync result counts. Responds 409
// when a run is already in flight and 503 when no account is authorized.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cfg := s.sc.Config().Sync
	syncer, err := s.sc.Syncer()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	ctx, span := instrumentation.StartSyncSpan(r.Context(), cfg.Account,
		instrumentation.NewSpanAttributeBuilder().WithResource("calendar", cfg.CalendarID).Build()...)
	defer span.End()

	start := time.Now()
	result, err := syncer.Sync(ctx, calendar.SyncOptions{
		CalendarID:    cfg.CalendarID,
		IncludePast:   cfg.IncludePast,
		IncludeFuture: cfg.IncludeFuture,
	})
	if err != nil {
		instrumentation.SetSpanError(span, err)
		if errors.Is(err, calendar.ErrSyncInProgress) {
			s.recordSyncRun(ctx, instrumentation.StatusBusy, cfg.Account, 0, time.Since(start))
			writeError(w, http.StatusConflict, "sync already in progress")
			return
		}
		s.recordSyncRun(ctx, instrumentation.StatusError, cfg.Account, 0, time.Since(start))
		slog.Error("calendar sync failed",
			logging.Operation("sync"),
			logging.Account(cfg.Account),
			"trace_id", instrumentation.GetTraceID(ctx),
			logging.Err(err))
		writeError(w, http.StatusBadGateway, "calendar sync failed: "+err.Error())
		return
	}

	instrumentation.SetSpanSuccess(span)
	instrumentation.AddSyncResultEvent(span, result.Fetched, result.Imported, result.Skipped)
	s.recordSyncRun(ctx, instrumentation.StatusSuccess, cfg.Account, result.Imported, time.Since(start))
	slog.Info("calendar sync finished",
		logging.Operation("sync"),
		logging.Account(cfg.Account),
		"fetched", result.Fetched,
		"imported", result.Imported,
		"skipped", result.Skipped)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) recordStoreOp(ctx context.Context, operation, status string) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(ctx, operation, status)
	}
}

func (s *Server) recordSyncRun(ctx context.Context, status, account string, imported int, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordSyncRun(ctx, status, account, imported, duration)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
