// Package store provides the persistence layer for homecal.
//
// The durable backing is an abstract key-value blob store with exactly two
// keys: the serialized event collection and the settings singleton. Values
// are overwritten wholesale; there are no transactional guarantees beyond
// that, which is sufficient for the single-writer design.
//
// # Key Components
//
// KV is the storage abstraction with two implementations:
//   - SQLiteKV: durable storage in a single-table SQLite database
//   - MemoryKV: in-memory storage for tests
//
// EventStore provides the event CRUD surface (add, list, filter-by-date,
// remove). SettingsRepo provides get/put/reset for the settings singleton.
// A missing stored value degrades to an empty collection or the default
// settings record rather than an error.
package store
