package google

import calendar "google.golang.org/api/calendar/v3"

// DefaultOAuthScopes are the Google OAuth scopes the application requests.
// Calendar sync only reads events, so read-only access is sufficient.
var DefaultOAuthScopes = []string{
	calendar.CalendarReadonlyScope,
}
