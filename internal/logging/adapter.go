package logging

import (
	"log/slog"
)

// SlogAdapter exposes an slog.Logger through the Info/Error method pair
// the cron scheduler accepts as its logger option. The method shapes
// match cron.Logger structurally, so this package does not import the
// scheduler.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Info logs an info message with key-value pairs.
// Arguments should be provided as alternating key-value pairs: key1, value1, key2, value2, ...
func (a *SlogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, keysAndValues...)
}

// Error logs an error message with key-value pairs, placing the error
// first the way the rest of the application does.
func (a *SlogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	args := make([]interface{}, 0, len(keysAndValues)+2)
	args = append(args, KeyError, err)
	args = append(args, keysAndValues...)
	a.logger.Error(msg, args...)
}

// Logger returns the underlying slog.Logger for direct access when needed.
func (a *SlogAdapter) Logger() *slog.Logger {
	return a.logger
}
