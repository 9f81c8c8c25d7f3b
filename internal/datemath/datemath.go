// Package datemath provides pure calendar arithmetic: month grid layout
// and the fixed US public-holiday rule set.
//
// All functions are deterministic and allocation-light; dates are handled
// in time.UTC and formatted as YYYY-MM-DD where strings are needed.
package datemath

import "time"

// DateFormat is the canonical date string layout used across the application.
const DateFormat = "2006-01-02"

// GridCells is the number of cells in a rendered month view (6 full weeks).
const GridCells = 42

// Cell is one slot of a month grid.
type Cell struct {
	// Date is the calendar date occupying the cell.
	Date time.Time

	// OutsideMonth is true for leading/trailing filler dates borrowed
	// from the adjacent months.
	OutsideMonth bool
}

// DateString returns the cell's date formatted as YYYY-MM-DD.
func (c Cell) DateString() string {
	return c.Date.Format(DateFormat)
}

// Holiday is a named public holiday on a specific date.
// Holidays are derived, never persisted; they are recomputed per year.
type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

// MonthGrid computes the 42-cell grid for the given month.
//
// The first cell's weekday equals the configured week start (Sunday, or
// Monday when weekStartsMonday is true). Cells before the 1st and after the
// last day of the month carry OutsideMonth=true. The result always has
// exactly GridCells entries; out-of-range month values roll over naturally
// via time.Date normalization.
func MonthGrid(year int, month time.Month, weekStartsMonday bool) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	lead := int(first.Weekday())
	if weekStartsMonday {
		// Shift so Monday=0 .. Sunday=6.
		lead = (lead + 6) % 7
	}

	cells := make([]Cell, 0, GridCells)
	for offset := -lead; len(cells) < GridCells; offset++ {
		d := first.AddDate(0, 0, offset)
		cells = append(cells, Cell{
			Date:         d,
			OutsideMonth: d.Month() != first.Month() || d.Year() != first.Year(),
		})
	}
	return cells
}

// NthWeekdayOfMonth returns the date of the n-th occurrence of weekday in
// the given month (n >= 1).
//
// The computation is pure offset arithmetic: the gap from the month's first
// day to the first target weekday, advanced by (n-1) weeks. Callers must
// bound n to occurrences that exist in the month; a too-large n rolls into
// the following month.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return time.Date(year, month, 1+offset+(n-1)*7, 0, 0, 0, 0, time.UTC)
}

// LastWeekdayOfMonth returns the date of the final occurrence of weekday
// within the given month, stepping back from the month's last calendar day.
func LastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

// PublicHolidays returns the ten US federal holidays for the given year in
// insertion order: fixed dates plus the floating nth/last-weekday rules.
func PublicHolidays(year int) []Holiday {
	fixed := func(month time.Month, day int) string {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DateFormat)
	}
	nth := func(month time.Month, weekday time.Weekday, n int) string {
		return NthWeekdayOfMonth(year, month, weekday, n).Format(DateFormat)
	}

	return []Holiday{
		{Date: fixed(time.January, 1), Name: "New Year's Day"},
		{Date: nth(time.January, time.Monday, 3), Name: "Martin Luther King Jr. Day"},
		{Date: nth(time.February, time.Monday, 3), Name: "Presidents' Day"},
		{Date: LastWeekdayOfMonth(year, time.May, time.Monday).Format(DateFormat), Name: "Memorial Day"},
		{Date: fixed(time.July, 4), Name: "Independence Day"},
		{Date: nth(time.September, time.Monday, 1), Name: "Labor Day"},
		{Date: nth(time.October, time.Monday, 2), Name: "Columbus Day"},
		{Date: fixed(time.November, 11), Name: "Veterans Day"},
		{Date: nth(time.November, time.Thursday, 4), Name: "Thanksgiving"},
		{Date: fixed(time.December, 25), Name: "Christmas"},
	}
}

// HolidayOn returns the holiday falling on the given YYYY-MM-DD date, if
// any, from the provided set. Membership is exact date-string equality.
func HolidayOn(holidays []Holiday, date string) (Holiday, bool) {
	for _, h := range holidays {
		if h.Date == date {
			return h, true
		}
	}
	return Holiday{}, false
}
