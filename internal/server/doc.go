// Package server provides the homecal web application: the HTML pages,
// the JSON event and settings API, the ICS feed and the static asset
// cache, plus the operational endpoints.
//
// # Key Components
//
// ServerContext holds the shared application state: the event store,
// the settings repository and lazily created Google Calendar clients.
// A single Syncer instance is shared between the HTTP sync endpoint
// and the cron schedule so that only one import runs at a time.
//
// Server wires the routes:
//   - Pages: /, /events, /settings, /google-sync
//   - API: /api/events, /api/events/{id}, /api/events/date/{date},
//     /api/grid, /api/settings, /api/settings/reset, /api/sync
//   - Feed: /calendar.ics
//   - Assets: /static/*, /manifest.json, /sw.js
//
// AssetCache preloads a fixed manifest of static files into a
// version-tagged in-memory cache at startup and serves requests
// cache-first, falling through to the embedded filesystem. Activating
// a new version replaces the cached set wholesale.
//
// HealthChecker exposes /healthz, /readyz and /healthz/detailed for
// Kubernetes probes. MetricsServer serves Prometheus metrics on a
// dedicated port, isolated from application traffic.
package server
