// Package google provides OAuth2 authentication and token management for
// the Google Calendar API.
//
// Tokens are stored per account as files under the user cache directory.
// The TokenProvider interface allows alternative token sources to be
// plugged in, with FileTokenProvider as the default file-backed one.
package google
