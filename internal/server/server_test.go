package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/homecal/internal/calendar"
	"github.com/teemow/homecal/internal/config"
	"github.com/teemow/homecal/internal/store"
	"github.com/teemow/homecal/internal/view"
)

type fakeLister struct {
	events []calendar.EventSummary
	err    error
}

func (f *fakeLister) ListEvents(_ context.Context, _ string, _, _ time.Time) ([]calendar.EventSummary, error) {
	return f.events, f.err
}

func newTestServer(t *testing.T) (*Server, *ServerContext) {
	t.Helper()

	cfg := config.DefaultConfig()
	sc, err := NewServerContext(context.Background(), cfg, store.NewMemoryKV())
	require.NoError(t, err)

	srv, err := New(sc, nil)
	require.NoError(t, err)
	return srv, sc
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAPIEvents_EmptyList(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestAPIEvents_AddThenListForDate(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/events", store.Event{
		Title: "Dentist",
		Date:  "2026-09-14",
		Time:  "09:30",
		Type:  store.TypePersonal,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored store.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, store.SourceLocal, stored.Source)

	rec = doJSON(t, h, http.MethodGet, "/api/events/date/2026-09-14", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var events []store.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Dentist", events[0].Title)

	// A different date is empty.
	rec = doJSON(t, h, http.MethodGet, "/api/events/date/2026-09-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestAPIEvents_ValidationError(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/events", store.Event{Date: "2026-09-14"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title")
}

func TestAPIEvents_Delete(t *testing.T) {
	srv, sc := newTestServer(t)
	h := srv.Handler()

	stored, err := sc.Events().Add(context.Background(), store.Event{Title: "Standup", Date: "2026-09-14"})
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodDelete, "/api/events/"+stored.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var remaining []store.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &remaining))
	assert.Empty(t, remaining)
}

func TestAPIEvents_InvalidDate(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/events/date/not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIGrid(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/grid?year=2026&month=9", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var month view.Month
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &month))
	assert.Equal(t, 2026, month.Year)
	assert.Equal(t, 9, month.Month)
	assert.Equal(t, "September 2026", month.Title)
	assert.Len(t, month.Days, 42)
}

func TestAPIGrid_InvalidMonth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/grid?year=2026&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPISettings_Defaults(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var settings store.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, store.DefaultSettings(), settings)
}

func TestAPISettings_PutAndReset(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	custom := store.PaletteDark.Apply(store.DefaultSettings())
	rec := doJSON(t, h, http.MethodPut, "/api/settings", custom)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/settings", nil)
	var settings store.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, store.PaletteDark, settings.Palette)

	rec = doJSON(t, h, http.MethodPost, "/api/settings/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, store.DefaultSettings(), settings)
}

func TestAPISettings_UnknownPalette(t *testing.T) {
	srv, _ := newTestServer(t)

	settings := store.DefaultSettings()
	settings.Palette = "neon"
	rec := doJSON(t, srv.Handler(), http.MethodPut, "/api/settings", settings)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPISync(t *testing.T) {
	srv, sc := newTestServer(t)

	sc.SetSyncer(calendar.NewSyncer(sc.Events(), &fakeLister{
		events: []calendar.EventSummary{
			{ID: "remote-1", Summary: "Team offsite", Start: time.Date(2026, 9, 21, 10, 0, 0, 0, time.UTC)},
		},
	}))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/sync", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result calendar.SyncResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.Imported)

	events, err := sc.Events().List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, store.SourceGoogle, events[0].Source)
	assert.Equal(t, "remote-1", events[0].ExternalID)
}

func TestAPISync_NoToken(t *testing.T) {
	srv, _ := newTestServer(t)

	// Without an injected syncer there is no authorized account.
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/sync", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAPISync_RemoteFailure(t *testing.T) {
	srv, sc := newTestServer(t)

	sc.SetSyncer(calendar.NewSyncer(sc.Events(), &fakeLister{err: assert.AnError}))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/sync", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAPIMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	assert.Equal(t, http.StatusMethodNotAllowed, doJSON(t, h, http.MethodDelete, "/api/events", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doJSON(t, h, http.MethodGet, "/api/sync", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doJSON(t, h, http.MethodGet, "/api/settings/reset", nil).Code)
}

func TestPages_Render(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	for _, path := range []string{"/", "/events", "/settings", "/google-sync"} {
		rec := doJSON(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "page %s", path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", "page %s", path)
	}
}

func TestPageIndex_RendersGridAndDetail(t *testing.T) {
	srv, sc := newTestServer(t)

	_, err := sc.Events().Add(context.Background(), store.Event{Title: "Fireworks", Date: "2026-07-04"})
	require.NoError(t, err)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/?year=2026&month=7&date=2026-07-04", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "July 2026")
	assert.Contains(t, rec.Body.String(), "Independence Day")
	assert.Contains(t, rec.Body.String(), "Fireworks")
}

func TestHealthEndpoints(t *testing.T) {
	srv, sc := newTestServer(t)
	h := srv.Handler()

	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/healthz", nil).Code)

	ready := doJSON(t, h, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"store":"ok"`)

	detailed := doJSON(t, h, http.MethodGet, "/healthz/detailed", nil)
	assert.Equal(t, http.StatusOK, detailed.Code)
	assert.Contains(t, detailed.Body.String(), `"events":0`)

	require.NoError(t, sc.Shutdown())
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, h, http.MethodGet, "/readyz", nil).Code)
}
