package store

import "context"

// Storage keys. The store holds exactly these two values.
const (
	KeyEvents   = "calendarEvents"
	KeySettings = "calendarSettings"
)

// KV is the minimal blob-store abstraction backing the repositories.
//
// Get returns (nil, nil) for a missing key; the repositories translate
// that into an empty collection or the default settings record.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
