package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/homecal/internal/store"
)

type fakeLister struct {
	events   []EventSummary
	err      error
	lastMin  time.Time
	lastMax  time.Time
	lastCal  string
	listings int
}

func (f *fakeLister) ListEvents(_ context.Context, calendarID string, timeMin, timeMax time.Time) ([]EventSummary, error) {
	f.lastCal = calendarID
	f.lastMin = timeMin
	f.lastMax = timeMax
	f.listings++
	return f.events, f.err
}

func newTestSyncer(t *testing.T, remote []EventSummary) (*Syncer, *store.EventStore, *fakeLister) {
	t.Helper()
	events := store.NewEventStore(store.NewMemoryKV())
	lister := &fakeLister{events: remote}
	s := NewSyncer(events, lister)
	s.now = func() time.Time {
		return time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	}
	return s, events, lister
}

func TestSync_ImportsNewEvents(t *testing.T) {
	remote := []EventSummary{
		{ID: "g-1", Summary: "Offsite", Start: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "g-2", Start: time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), AllDay: true},
	}
	s, events, _ := newTestSyncer(t, remote)

	result, err := s.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Fetched: 2, Imported: 2, Skipped: 0}, result)

	stored, err := events.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, "Offsite", stored[0].Title)
	assert.Equal(t, "2026-04-02", stored[0].Date)
	assert.Equal(t, "09:00", stored[0].Time)
	assert.Equal(t, "g-1", stored[0].ExternalID)
	assert.Equal(t, store.SourceGoogle, stored[0].Source)
	assert.Equal(t, store.TypeOther, stored[0].Type)
	assert.Equal(t, store.PriorityMedium, stored[0].Priority)
	assert.NotEmpty(t, stored[0].ID)

	// Missing summary falls back, all-day events carry no time.
	assert.Equal(t, "Untitled Event", stored[1].Title)
	assert.Empty(t, stored[1].Time)
}

func TestSync_ReplayIsIdempotent(t *testing.T) {
	remote := []EventSummary{
		{ID: "g-1", Summary: "Offsite", Start: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)},
	}
	s, events, _ := newTestSyncer(t, remote)
	ctx := context.Background()

	_, err := s.Sync(ctx, SyncOptions{})
	require.NoError(t, err)

	result, err := s.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Fetched: 1, Imported: 0, Skipped: 1}, result)

	stored, err := events.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSync_TitleDateCollisionSkips(t *testing.T) {
	remote := []EventSummary{
		{ID: "g-1", Summary: "Dentist", Start: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)},
	}
	s, events, _ := newTestSyncer(t, remote)
	ctx := context.Background()

	// A hand-entered event with the same title and date but no external id.
	_, err := events.Add(ctx, store.Event{Title: "Dentist", Date: "2026-04-02"})
	require.NoError(t, err)

	result, err := s.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Fetched: 1, Imported: 0, Skipped: 1}, result)
}

func TestSync_Window(t *testing.T) {
	cases := []struct {
		name    string
		opts    SyncOptions
		wantMin string
		wantMax string
	}{
		{
			name:    "default window",
			opts:    SyncOptions{},
			wantMin: "2026-03-14",
			wantMax: "2026-12-31",
		},
		{
			name:    "include past",
			opts:    SyncOptions{IncludePast: true},
			wantMin: "2026-01-01",
			wantMax: "2026-12-31",
		},
		{
			name:    "include future",
			opts:    SyncOptions{IncludeFuture: true},
			wantMin: "2026-03-14",
			wantMax: "2027-12-31",
		},
		{
			name:    "include both",
			opts:    SyncOptions{IncludePast: true, IncludeFuture: true},
			wantMin: "2026-01-01",
			wantMax: "2027-12-31",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, lister := newTestSyncer(t, nil)

			_, err := s.Sync(context.Background(), tc.opts)
			require.NoError(t, err)

			assert.Equal(t, tc.wantMin, lister.lastMin.Format("2006-01-02"))
			assert.Equal(t, tc.wantMax, lister.lastMax.Format("2006-01-02"))
		})
	}
}

func TestSync_DefaultCalendarID(t *testing.T) {
	s, _, lister := newTestSyncer(t, nil)

	_, err := s.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, "primary", lister.lastCal)

	_, err = s.Sync(context.Background(), SyncOptions{CalendarID: "team@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "team@example.com", lister.lastCal)
}

func TestSync_ConcurrentRunRejected(t *testing.T) {
	s, _, _ := newTestSyncer(t, nil)

	s.mu.Lock()
	_, err := s.Sync(context.Background(), SyncOptions{})
	s.mu.Unlock()

	assert.ErrorIs(t, err, ErrSyncInProgress)
}
