package store

// EventType classifies an event for display purposes.
type EventType string

// Event types matching the widget's marker styling.
const (
	TypeWork     EventType = "work"
	TypePersonal EventType = "personal"
	TypeHoliday  EventType = "holiday"
	TypeOther    EventType = "other"
)

// Priority is the user-assigned importance of an event.
type Priority string

// Priorities in ascending order of importance.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// EventSource records where an event came from.
type EventSource string

const (
	// SourceLocal marks events created through the event form.
	SourceLocal EventSource = "local"
	// SourceGoogle marks events imported from Google Calendar.
	SourceGoogle EventSource = "google"
)

// Event is a stored calendar event.
//
// ID is assigned at creation and immutable. ExternalID carries the remote
// event id for imported events; its uniqueness is advisory only and is used
// by the sync dedup heuristic, never enforced by the store.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Date        string      `json:"date"`           // YYYY-MM-DD
	Time        string      `json:"time,omitempty"` // HH:MM, optional
	Type        EventType   `json:"type"`
	Priority    Priority    `json:"priority"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	Reminder    string      `json:"reminder,omitempty"`
	ExternalID  string      `json:"externalId,omitempty"`
	Source      EventSource `json:"source"`
}

// Settings is the singleton record of theme and display preferences.
// It is created with defaults on first read and replaced wholesale on save.
type Settings struct {
	PrimaryColor    string  `json:"primaryColor"`
	SecondaryColor  string  `json:"secondaryColor"`
	AccentColor     string  `json:"accentColor"`
	BackgroundColor string  `json:"backgroundColor"`
	TextColor       string  `json:"textColor"`
	FontFamily      string  `json:"fontFamily"`
	FontSize        string  `json:"fontSize"`
	Palette         Palette `json:"palette"`
	ShowWeekends    bool    `json:"showWeekends"`
	ShowHolidays    bool    `json:"showHolidays"`
	WeekStartMonday bool    `json:"weekStartMonday"`
}

// DefaultSettings returns the settings record used before the user has
// saved anything.
func DefaultSettings() Settings {
	return Settings{
		PrimaryColor:    "#4a90e2",
		SecondaryColor:  "#7b68ee",
		AccentColor:     "#50c878",
		BackgroundColor: "#ffffff",
		TextColor:       "#333333",
		FontFamily:      "'Inter', sans-serif",
		FontSize:        "16px",
		Palette:         PaletteDefault,
		ShowWeekends:    true,
		ShowHolidays:    true,
		WeekStartMonday: false,
	}
}
