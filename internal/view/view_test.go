package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/homecal/internal/store"
)

func testNow() time.Time {
	return time.Date(2024, time.September, 10, 12, 0, 0, 0, time.UTC)
}

func TestBuildMonth_GridShape(t *testing.T) {
	m := BuildMonth(2024, time.September, testNow(), nil, store.DefaultSettings())

	require.Len(t, m.Days, 42)
	assert.Equal(t, 2024, m.Year)
	assert.Equal(t, 9, m.Month)
	assert.Equal(t, "September 2024", m.Title)
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, m.Weekdays)
}

func TestBuildMonth_WeekStartMonday(t *testing.T) {
	settings := store.DefaultSettings()
	settings.WeekStartMonday = true

	m := BuildMonth(2024, time.September, testNow(), nil, settings)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, m.Weekdays)
	// September 1 2024 is a Sunday, so a Monday-start grid leads with
	// six August filler cells.
	assert.Equal(t, "2024-08-26", m.Days[0].Date)
	assert.True(t, m.Days[0].OutsideMonth)
}

func TestBuildMonth_TodayMarker(t *testing.T) {
	m := BuildMonth(2024, time.September, testNow(), nil, store.DefaultSettings())

	marked := 0
	for _, d := range m.Days {
		if d.IsToday {
			marked++
			assert.Equal(t, "2024-09-10", d.Date)
		}
	}
	assert.Equal(t, 1, marked)

	// Viewing a different month leaves no today marker.
	m = BuildMonth(2024, time.October, testNow(), nil, store.DefaultSettings())
	for _, d := range m.Days {
		assert.False(t, d.IsToday, "no cell in October should be today")
	}
}

func TestBuildMonth_Holidays(t *testing.T) {
	m := BuildMonth(2024, time.September, testNow(), nil, store.DefaultSettings())

	var laborDay Day
	for _, d := range m.Days {
		if d.Date == "2024-09-02" {
			laborDay = d
		}
	}
	assert.Equal(t, "Labor Day", laborDay.HolidayName)
}

func TestBuildMonth_HolidaysDisabled(t *testing.T) {
	settings := store.DefaultSettings()
	settings.ShowHolidays = false

	m := BuildMonth(2024, time.September, testNow(), nil, settings)
	for _, d := range m.Days {
		assert.Empty(t, d.HolidayName)
	}
}

func TestBuildMonth_HolidayOnlyInsideMonth(t *testing.T) {
	// The July 2024 grid ends with trailing August cells; the June cells
	// at the start include no holiday, but verify an out-of-month 4th of
	// July never leaks into an adjacent month's grid.
	m := BuildMonth(2024, time.August, testNow(), nil, store.DefaultSettings())
	for _, d := range m.Days {
		if d.OutsideMonth {
			assert.Empty(t, d.HolidayName, "filler cell %s should carry no holiday", d.Date)
		}
	}
}

func TestBuildMonth_Markers(t *testing.T) {
	events := []store.Event{
		{ID: "1", Title: "a", Date: "2024-09-10", Type: store.TypeWork},
		{ID: "2", Title: "b", Date: "2024-09-10", Type: store.TypePersonal},
		{ID: "3", Title: "c", Date: "2024-09-10", Type: store.TypeOther},
		{ID: "4", Title: "d", Date: "2024-09-10", Type: store.TypeWork},
		{ID: "5", Title: "e", Date: "2024-09-10", Type: store.TypeWork},
		{ID: "6", Title: "solo", Date: "2024-09-11", Type: store.TypeHoliday},
	}

	m := BuildMonth(2024, time.September, testNow(), events, store.DefaultSettings())

	byDate := map[string]Day{}
	for _, d := range m.Days {
		byDate[d.Date] = d
	}

	busy := byDate["2024-09-10"]
	require.Len(t, busy.Markers, MaxMarkers)
	assert.Equal(t, store.TypeWork, busy.Markers[0].Type)
	assert.Equal(t, store.TypePersonal, busy.Markers[1].Type)
	assert.Equal(t, 2, busy.Overflow)
	assert.Equal(t, 5, busy.EventCount)

	quiet := byDate["2024-09-11"]
	require.Len(t, quiet.Markers, 1)
	assert.Equal(t, store.TypeHoliday, quiet.Markers[0].Type)
	assert.Zero(t, quiet.Overflow)

	empty := byDate["2024-09-12"]
	assert.Empty(t, empty.Markers)
	assert.Zero(t, empty.EventCount)
}

func TestBuildMonth_WeekendFlags(t *testing.T) {
	m := BuildMonth(2024, time.September, testNow(), nil, store.DefaultSettings())

	// Sunday-start grid: columns 0 and 6 of each week are weekend.
	for i, d := range m.Days {
		col := i % 7
		want := col == 0 || col == 6
		assert.Equal(t, want, d.IsWeekend, "cell %d (%s)", i, d.Date)
	}
}

func TestBuildDayDetail(t *testing.T) {
	events := []store.Event{
		{ID: "1", Title: "Parade", Date: "2024-07-04", Time: "10:00"},
	}

	d := BuildDayDetail("2024-07-04", events, store.DefaultSettings())
	assert.Equal(t, "Independence Day", d.HolidayName)
	require.Len(t, d.Events, 1)

	d = BuildDayDetail("2024-07-05", nil, store.DefaultSettings())
	assert.Empty(t, d.HolidayName)
	assert.NotNil(t, d.Events)
	assert.Empty(t, d.Events)
}

func TestBuildDayDetail_HolidaysDisabled(t *testing.T) {
	settings := store.DefaultSettings()
	settings.ShowHolidays = false

	d := BuildDayDetail("2024-07-04", nil, settings)
	assert.Empty(t, d.HolidayName)
}
