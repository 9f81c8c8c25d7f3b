package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teemow/homecal/internal/store"
)

// ErrSyncInProgress is returned when a sync run is requested while a
// previous run has not finished.
var ErrSyncInProgress = errors.New("sync already in progress")

// untitledEvent is the title given to imported events without a summary.
const untitledEvent = "Untitled Event"

// EventLister is the read surface of the Calendar client that the sync
// engine needs. Tests substitute a fake.
type EventLister interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]EventSummary, error)
}

// SyncOptions control the import window.
type SyncOptions struct {
	// CalendarID defaults to "primary".
	CalendarID string

	// IncludePast extends the window back to January 1 of the current
	// year; otherwise the window starts now.
	IncludePast bool

	// IncludeFuture extends the window to December 31 of next year;
	// otherwise it ends December 31 of the current year.
	IncludeFuture bool
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Syncer imports Google Calendar events into the local event store.
//
// Imports are additive: remote events are appended as local records and
// never update or delete anything already stored. Duplicates are
// detected by external id, or by identical title and date for events
// created by hand before sync was set up.
type Syncer struct {
	events *store.EventStore
	source EventLister

	mu  sync.Mutex
	now func() time.Time
}

// NewSyncer builds a Syncer over the given store and remote source.
func NewSyncer(events *store.EventStore, source EventLister) *Syncer {
	return &Syncer{
		events: events,
		source: source,
		now:    time.Now,
	}
}

// Sync runs one import. Only one run may be active at a time; concurrent
// calls fail fast with ErrSyncInProgress.
func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) (SyncResult, error) {
	if !s.mu.TryLock() {
		return SyncResult{}, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	calendarID := opts.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	timeMin, timeMax := s.window(opts)

	remote, err := s.source.ListEvents(ctx, calendarID, timeMin, timeMax)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to fetch remote events: %w", err)
	}

	existing, err := s.events.List(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	result := SyncResult{Fetched: len(remote)}
	merged := existing
	for _, r := range remote {
		mapped := mapRemoteEvent(r)
		if isDuplicate(merged, r.ID, mapped) {
			result.Skipped++
			continue
		}
		merged = append(merged, mapped)
		result.Imported++
	}

	if result.Imported > 0 {
		if err := s.events.Replace(ctx, merged); err != nil {
			return SyncResult{}, err
		}
	}
	return result, nil
}

// window computes the fetch time range from the options.
func (s *Syncer) window(opts SyncOptions) (time.Time, time.Time) {
	now := s.now()

	timeMin := now
	if opts.IncludePast {
		timeMin = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}

	maxYear := now.Year()
	if opts.IncludeFuture {
		maxYear++
	}
	timeMax := time.Date(maxYear, time.December, 31, 23, 59, 59, 0, now.Location())

	return timeMin, timeMax
}

// mapRemoteEvent converts a remote event into a stored one with a fresh
// local id.
func mapRemoteEvent(r EventSummary) store.Event {
	title := r.Summary
	if title == "" {
		title = untitledEvent
	}

	e := store.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Date:        r.Start.Format("2006-01-02"),
		Type:        store.TypeOther,
		Priority:    store.PriorityMedium,
		Description: r.Description,
		Location:    r.Location,
		Reminder:    "none",
		ExternalID:  r.ID,
		Source:      store.SourceGoogle,
	}
	if !r.AllDay {
		e.Time = r.Start.Format("15:04")
	}
	return e
}

// isDuplicate reports whether the mapped event is already present, by
// external id or by matching title and date.
func isDuplicate(existing []store.Event, externalID string, mapped store.Event) bool {
	for _, e := range existing {
		if externalID != "" && e.ExternalID == externalID {
			return true
		}
		if e.Title == mapped.Title && e.Date == mapped.Date {
			return true
		}
	}
	return false
}
