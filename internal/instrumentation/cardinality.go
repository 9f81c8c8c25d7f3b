package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with request identifiers.

// NormalizeHTTPPath collapses dynamic path segments so each route yields
// a single label value.
//
// Example:
//
//	NormalizeHTTPPath("/api/events/3f2a...")        // "/api/events/:id"
//	NormalizeHTTPPath("/api/events/date/2026-03-14") // "/api/events/date/:date"
//	NormalizeHTTPPath("/static/app.css")             // "/static/*"
//	NormalizeHTTPPath("/api/settings")               // "/api/settings"
func NormalizeHTTPPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/events/date/"):
		return "/api/events/date/:date"
	case strings.HasPrefix(path, "/api/events/") && path != "/api/events/":
		return "/api/events/:id"
	case strings.HasPrefix(path, "/static/"):
		return "/static/*"
	default:
		return path
	}
}

// Common operation types for API and store metrics.
// Status and Service constants are defined in config.go.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationAdd    = "add"
	OperationRemove = "remove"
	OperationSync   = "sync"
)
