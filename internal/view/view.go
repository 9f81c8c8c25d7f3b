// Package view assembles render-ready month and day models from the
// date arithmetic and the stored events.
package view

import (
	"time"

	"github.com/teemow/homecal/internal/datemath"
	"github.com/teemow/homecal/internal/store"
)

// MaxMarkers is the number of event dot markers shown per day cell.
// Days with more events get an overflow indicator instead of extra dots.
const MaxMarkers = 3

// Marker is one event dot in a day cell, styled by event type.
type Marker struct {
	Type store.EventType `json:"type"`
}

// Day is one annotated cell of the month view.
type Day struct {
	Date         string   `json:"date"` // YYYY-MM-DD
	DayOfMonth   int      `json:"dayOfMonth"`
	OutsideMonth bool     `json:"outsideMonth"`
	IsToday      bool     `json:"isToday"`
	IsWeekend    bool     `json:"isWeekend"`
	HolidayName  string   `json:"holidayName,omitempty"`
	Markers      []Marker `json:"markers"`
	Overflow     int      `json:"overflow"` // events beyond MaxMarkers
	EventCount   int      `json:"eventCount"`
}

// Month is the full render model for a month view.
type Month struct {
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Title    string   `json:"title"` // e.g. "September 2026"
	Weekdays []string `json:"weekdays"`
	Days     []Day    `json:"days"`
}

// DayDetail is the render model for a single selected day.
type DayDetail struct {
	Date        string        `json:"date"`
	HolidayName string        `json:"holidayName,omitempty"`
	Events      []store.Event `json:"events"`
}

var (
	sundayFirst = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	mondayFirst = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// BuildMonth annotates the 42-cell grid for the given month with today
// marker, weekend flags, holidays and per-day event markers.
//
// Holidays are only attached to in-month cells, and only when the
// settings enable them. Events outside the month still get their
// markers so the filler cells stay informative.
func BuildMonth(year int, month time.Month, now time.Time, events []store.Event, settings store.Settings) Month {
	cells := datemath.MonthGrid(year, month, settings.WeekStartMonday)
	today := now.Format(datemath.DateFormat)

	holidays := []datemath.Holiday{}
	if settings.ShowHolidays {
		// The grid can straddle a year boundary, so compute both years
		// touched by the cells.
		holidays = datemath.PublicHolidays(cells[0].Date.Year())
		if lastYear := cells[len(cells)-1].Date.Year(); lastYear != cells[0].Date.Year() {
			holidays = append(holidays, datemath.PublicHolidays(lastYear)...)
		}
	}

	byDate := make(map[string][]store.Event, len(events))
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	weekdays := sundayFirst
	if settings.WeekStartMonday {
		weekdays = mondayFirst
	}

	m := Month{
		Year:     year,
		Month:    int(month),
		Title:    time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006"),
		Weekdays: weekdays,
		Days:     make([]Day, 0, len(cells)),
	}

	for _, c := range cells {
		date := c.DateString()
		day := Day{
			Date:         date,
			DayOfMonth:   c.Date.Day(),
			OutsideMonth: c.OutsideMonth,
			IsToday:      date == today,
			IsWeekend:    c.Date.Weekday() == time.Saturday || c.Date.Weekday() == time.Sunday,
		}

		if !c.OutsideMonth {
			if h, ok := datemath.HolidayOn(holidays, date); ok {
				day.HolidayName = h.Name
			}
		}

		dayEvents := byDate[date]
		day.EventCount = len(dayEvents)
		day.Markers = make([]Marker, 0, MaxMarkers)
		for i, e := range dayEvents {
			if i == MaxMarkers {
				break
			}
			day.Markers = append(day.Markers, Marker{Type: e.Type})
		}
		if len(dayEvents) > MaxMarkers {
			day.Overflow = len(dayEvents) - MaxMarkers
		}

		m.Days = append(m.Days, day)
	}
	return m
}

// BuildDayDetail assembles the detail model for one date. Events must
// already be filtered and sorted for that date by the store.
func BuildDayDetail(date string, events []store.Event, settings store.Settings) DayDetail {
	d := DayDetail{Date: date, Events: events}
	if d.Events == nil {
		d.Events = []store.Event{}
	}

	if settings.ShowHolidays {
		if t, err := time.Parse(datemath.DateFormat, date); err == nil {
			if h, ok := datemath.HolidayOn(datemath.PublicHolidays(t.Year()), date); ok {
				d.HolidayName = h.Name
			}
		}
	}
	return d
}
