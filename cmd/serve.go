package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/teemow/homecal/internal/calendar"
	"github.com/teemow/homecal/internal/config"
	"github.com/teemow/homecal/internal/instrumentation"
	"github.com/teemow/homecal/internal/logging"
	"github.com/teemow/homecal/internal/server"
	"github.com/teemow/homecal/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		configPath     string
		listen         string
		dataDir        string
		debugMode      bool
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the calendar web application",
		Long: `Start the homecal web server.

The server renders the month grid and the event, settings and sync
pages, exposes the JSON API and the ICS feed, and serves the offline
asset cache. When sync.auto is enabled in the configuration, Google
Calendar is re-imported periodically on the configured cron schedule.

Configuration is read from a YAML file (created with defaults on first
run), with .env and environment variables loaded before it. Flags
override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load .env before anything reads the environment.
			_ = godotenv.Load()

			if debugMode {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			if configPath == "" {
				configPath = defaultConfigPath()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Flags override the file when explicitly set.
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("metrics-enabled") {
				cfg.Metrics.Enabled = metricsEnabled
			} else if os.Getenv("METRICS_ENABLED") == "false" {
				cfg.Metrics.Enabled = false
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Listen = metricsAddr
			} else if addr := os.Getenv("METRICS_ADDR"); addr != "" {
				cfg.Metrics.Listen = addr
			}

			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML config file (default: ~/.config/homecal/config.yaml)")
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8080", "HTTP listen address for the web application")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory for the event database")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(cfg *config.Config) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	// Open the event database
	kv, err := store.OpenSQLite(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open event database: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			slog.Error("error closing event database", logging.Err(err))
		}
	}()

	serverContext, err := server.NewServerContext(shutdownCtx, cfg, kv)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			slog.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	webServer, err := server.New(serverContext, provider)
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if cfg.Metrics.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    cfg.Metrics.Listen,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			slog.Info("metrics server started", "addr", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during metrics server shutdown", logging.Err(err))
			}
		}()
	}

	// Schedule periodic Google Calendar sync when configured
	if cfg.Sync.Auto {
		scheduler := cron.New(cron.WithLogger(logging.NewSlogAdapter(nil)))
		if _, err := scheduler.AddFunc(cfg.Sync.Cron, func() {
			runScheduledSync(serverContext)
		}); err != nil {
			return fmt.Errorf("invalid sync cron schedule %q: %w", cfg.Sync.Cron, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		slog.Info("scheduled automatic calendar sync", "cron", cfg.Sync.Cron, logging.Account(cfg.Sync.Account))
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := webServer.Start(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Info("shutdown signal received")
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		if err := webServer.Shutdown(stopCtx); err != nil {
			return fmt.Errorf("error shutting down web server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("web server stopped with error: %w", err)
		}
	}

	return nil
}

// runScheduledSync is the cron callback. Failures are logged, never
// fatal; an in-flight run makes this a no-op.
func runScheduledSync(sc *server.ServerContext) {
	syncer, err := sc.Syncer()
	if err != nil {
		slog.Warn("scheduled sync skipped", logging.Err(err))
		return
	}

	cfg := sc.Config().Sync
	result, err := syncer.Sync(sc.Context(), calendar.SyncOptions{
		CalendarID:    cfg.CalendarID,
		IncludePast:   cfg.IncludePast,
		IncludeFuture: cfg.IncludeFuture,
	})
	if errors.Is(err, calendar.ErrSyncInProgress) {
		slog.Info("scheduled sync skipped, previous run still active")
		return
	}
	if err != nil {
		slog.Error("scheduled sync failed",
			logging.Operation("sync"),
			logging.Account(cfg.Account),
			logging.Err(err))
		return
	}

	slog.Info("scheduled sync finished",
		logging.Operation("sync"),
		logging.Account(cfg.Account),
		"fetched", result.Fetched,
		"imported", result.Imported,
		"skipped", result.Skipped)
}

// defaultConfigPath resolves the config file location under the user
// config dir.
func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "homecal", "config.yaml")
	}
	return "config.yaml"
}
