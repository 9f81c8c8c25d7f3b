package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/teemow/homecal/internal/instrumentation"
	"github.com/teemow/homecal/internal/logging"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed all:static
var embeddedStatic embed.FS

// Default timeouts for the application HTTP server.
const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
)

// Server is the homecal web application: HTML pages, the JSON API, the
// ICS feed and the cached static assets.
type Server struct {
	sc        *ServerContext
	metrics   *instrumentation.Metrics
	health    *HealthChecker
	assets    *AssetCache
	templates *template.Template
	mux       *http.ServeMux

	httpServer *http.Server
}

// New constructs the web server over the given server context. The
// instrumentation provider may be nil, in which case no metrics are
// recorded.
func New(sc *ServerContext, provider *instrumentation.Provider) (*Server, error) {
	if sc == nil {
		return nil, fmt.Errorf("server context is required")
	}

	tmpl, err := template.ParseFS(embeddedTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	assets, err := NewAssetCache(embeddedStatic)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset cache: %w", err)
	}

	s := &Server{
		sc:        sc,
		health:    NewHealthChecker(sc),
		assets:    assets,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}
	if provider != nil {
		s.metrics = provider.Metrics()
		sc.SetMetrics(s.metrics)
	}

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	// Pages
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/events", s.handleEventsPage)
	s.mux.HandleFunc("/settings", s.handleSettingsPage)
	s.mux.HandleFunc("/google-sync", s.handleSyncPage)

	// JSON API
	s.mux.HandleFunc("/api/events", s.handleEvents)
	s.mux.HandleFunc("/api/events/", s.handleEventByPath)
	s.mux.HandleFunc("/api/grid", s.handleGrid)
	s.mux.HandleFunc("/api/settings", s.handleSettings)
	s.mux.HandleFunc("/api/settings/reset", s.handleSettingsReset)
	s.mux.HandleFunc("/api/sync", s.handleSync)

	// ICS feed
	s.mux.HandleFunc("/calendar.ics", s.handleICS)

	// Static assets, served cache-first
	s.mux.Handle("/static/", s.assets)
	s.mux.HandleFunc("/manifest.json", s.assets.servePassthrough)
	s.mux.HandleFunc("/sw.js", s.assets.servePassthrough)

	s.health.RegisterHealthEndpoints(s.mux)
}

// Handler returns the full handler chain including the metrics
// middleware.
func (s *Server) Handler() http.Handler {
	return s.withMetrics(s.mux)
}

// Start runs the HTTP server in a blocking manner.
// Call this in a goroutine if you need non-blocking operation.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.sc.Config().Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	slog.Info("starting web server", "addr", s.sc.Config().Listen)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	if s.httpServer != nil {
		slog.Info("shutting down web server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", logging.Err(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
