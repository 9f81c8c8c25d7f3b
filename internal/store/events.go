package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// EventStore provides the event CRUD surface over a KV backend.
//
// The whole collection is serialized as a single JSON array under
// KeyEvents. That keeps writes atomic at the backend level and matches
// the small per-user data volume this application is built for.
type EventStore struct {
	kv KV
}

// NewEventStore wraps the given backend.
func NewEventStore(kv KV) *EventStore {
	return &EventStore{kv: kv}
}

// List returns all stored events. A missing value yields an empty slice.
func (s *EventStore) List(ctx context.Context) ([]Event, error) {
	raw, err := s.kv.Get(ctx, KeyEvents)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []Event{}, nil
	}

	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("failed to decode stored events: %w", err)
	}
	return events, nil
}

// ListForDate returns the events on the given YYYY-MM-DD date, sorted by
// time-of-day with untimed events first.
func (s *EventStore) ListForDate(ctx context.Context, date string) ([]Event, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	events := []Event{}
	for _, e := range all {
		if e.Date == date {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events, nil
}

// Add validates the event, assigns it a fresh id and appends it to the
// collection. The stored event is returned.
func (s *EventStore) Add(ctx context.Context, e Event) (Event, error) {
	if err := validateEvent(e); err != nil {
		return Event{}, err
	}

	e.ID = uuid.NewString()
	if e.Type == "" {
		e.Type = TypeOther
	}
	if e.Priority == "" {
		e.Priority = PriorityMedium
	}
	if e.Source == "" {
		e.Source = SourceLocal
	}

	events, err := s.List(ctx)
	if err != nil {
		return Event{}, err
	}
	events = append(events, e)

	if err := s.save(ctx, events); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Remove deletes the event with the given id and returns the remaining
// collection. Removing an unknown id is not an error.
func (s *EventStore) Remove(ctx context.Context, id string) ([]Event, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if err := s.save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Replace overwrites the entire collection. Used by the sync importer,
// which merges remote events into the list it already read.
func (s *EventStore) Replace(ctx context.Context, events []Event) error {
	return s.save(ctx, events)
}

func (s *EventStore) save(ctx context.Context, events []Event) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return s.kv.Put(ctx, KeyEvents, raw)
}

func validateEvent(e Event) error {
	if e.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if e.Date == "" {
		return fmt.Errorf("event date is required")
	}
	return nil
}
