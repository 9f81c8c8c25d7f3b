package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/teemow/homecal/internal/calendar"
	"github.com/teemow/homecal/internal/config"
	"github.com/teemow/homecal/internal/google"
	"github.com/teemow/homecal/internal/instrumentation"
	"github.com/teemow/homecal/internal/store"
)

// ServerContext holds the shared state of the web application: the
// event store, the settings repository and lazily created Google
// Calendar clients.
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	cfg             *config.Config
	events          *store.EventStore
	settings        *store.SettingsRepo
	calendarClients map[string]*calendar.Client // Maps account name to Calendar client
	syncer          *calendar.Syncer
	metrics         *instrumentation.Metrics
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context over the given backend.
func NewServerContext(ctx context.Context, cfg *config.Config, kv store.KV) (*ServerContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if kv == nil {
		return nil, fmt.Errorf("storage backend is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		cfg:             cfg,
		events:          store.NewEventStore(kv),
		settings:        store.NewSettingsRepo(kv),
		calendarClients: make(map[string]*calendar.Client),
		shutdown:        false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the application configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Events returns the event store.
func (sc *ServerContext) Events() *store.EventStore {
	return sc.events
}

// Settings returns the settings repository.
func (sc *ServerContext) Settings() *store.SettingsRepo {
	return sc.settings
}

// CalendarClientForAccount returns the Calendar client for a specific account
// Creates and caches the client if it doesn't exist yet
// Returns nil if the account has no token
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Check if client already exists
	if client, ok := sc.calendarClients[account]; ok {
		return client
	}

	// Try to create client if token exists
	if !calendar.HasTokenForAccount(account) {
		return nil
	}

	client, err := calendar.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create Calendar client", "account", account, "error", err)
		return nil
	}

	sc.calendarClients[account] = client.WithMetrics(sc.metrics)
	return client
}

// SetMetrics attaches a metrics recorder that is handed to Calendar
// clients as they are created.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// CalendarClient returns the Calendar client for the default account
func (sc *ServerContext) CalendarClient() *calendar.Client {
	return sc.CalendarClientForAccount("default")
}

// SetCalendarClientForAccount sets the Calendar client for a specific account
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
}

// Syncer returns the Google Calendar sync engine for the configured
// account, creating it on first use. A single instance is kept so the
// in-flight guard covers the HTTP handler and the cron schedule alike.
// Returns an error when the account has no stored token.
func (sc *ServerContext) Syncer() (*calendar.Syncer, error) {
	sc.mu.RLock()
	if sc.syncer != nil {
		defer sc.mu.RUnlock()
		return sc.syncer, nil
	}
	sc.mu.RUnlock()

	account := sc.cfg.Sync.Account
	client := sc.CalendarClientForAccount(account)
	if client == nil {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.syncer == nil {
		sc.syncer = calendar.NewSyncer(sc.events, client)
	}
	return sc.syncer, nil
}

// SetSyncer replaces the sync engine. Used by tests to substitute a
// fake remote source.
func (sc *ServerContext) SetSyncer(s *calendar.Syncer) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.syncer = s
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
