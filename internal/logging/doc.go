// Package logging provides structured logging utilities for the homecal application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - An slog adapter for the cron scheduler's logger option
//
// # Usage Patterns
//
// Attach standard attributes to log records:
//
//	slog.Info("importing events",
//	    logging.Operation("sync"),
//	    logging.Account("work"),
//	    logging.Err(err))
//
// # Security Considerations
//
// Tokens are never logged directly; use SanitizeToken when a token must
// be referenced in log output.
package logging
