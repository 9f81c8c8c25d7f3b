package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teemow/homecal/internal/calendar"
	"github.com/teemow/homecal/internal/config"
	"github.com/teemow/homecal/internal/google"
	"github.com/teemow/homecal/internal/logging"
	"github.com/teemow/homecal/internal/store"
)

func newSyncCmd() *cobra.Command {
	var (
		configPath    string
		account       string
		calendarID    string
		includePast   bool
		includeFuture bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import events from Google Calendar once",
		Long: `Run a one-shot Google Calendar import into the local event database.

Events already present are skipped: an event is considered a duplicate
when its remote id was imported before, or when an event with the same
title and date already exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			if configPath == "" {
				configPath = defaultConfigPath()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cmd.Flags().Changed("account") {
				account = cfg.Sync.Account
			}
			if !cmd.Flags().Changed("calendar") {
				calendarID = cfg.Sync.CalendarID
			}
			if !cmd.Flags().Changed("include-past") {
				includePast = cfg.Sync.IncludePast
			}
			if !cmd.Flags().Changed("include-future") {
				includeFuture = cfg.Sync.IncludeFuture
			}

			ctx := context.Background()

			if !calendar.HasTokenForAccount(account) {
				return fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
			}

			client, err := calendar.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
			}

			kv, err := store.OpenSQLite(cfg.DatabasePath())
			if err != nil {
				return fmt.Errorf("failed to open event database: %w", err)
			}
			defer func() {
				if err := kv.Close(); err != nil {
					slog.Error("error closing event database", logging.Err(err))
				}
			}()

			syncer := calendar.NewSyncer(store.NewEventStore(kv), client)
			result, err := syncer.Sync(ctx, calendar.SyncOptions{
				CalendarID:    calendarID,
				IncludePast:   includePast,
				IncludeFuture: includeFuture,
			})
			if err != nil {
				return fmt.Errorf("calendar sync failed: %w", err)
			}

			fmt.Printf("Fetched %d remote events, imported %d, skipped %d duplicates\n",
				result.Fetched, result.Imported, result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML config file (default: ~/.config/homecal/config.yaml)")
	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVar(&calendarID, "calendar", "primary", "Calendar id to import from")
	cmd.Flags().BoolVar(&includePast, "include-past", false, "Import events back to January 1 of the current year")
	cmd.Flags().BoolVar(&includeFuture, "include-future", true, "Import events up to December 31 of next year")

	return cmd
}
