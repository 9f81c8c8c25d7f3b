// Package cmd implements the command-line interface for homecal.
//
// This package provides the following commands:
//   - serve: Start the calendar web application (the default command)
//   - sync: Import events from Google Calendar once
//   - auth: Authorize a Google account for calendar import
//   - holidays: Print the US public holidays for a year
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all commands
//
// The serve command is the default command when no subcommand is specified.
package cmd
