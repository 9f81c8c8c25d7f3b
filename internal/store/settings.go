package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// SettingsRepo provides access to the settings singleton.
type SettingsRepo struct {
	kv KV
}

// NewSettingsRepo wraps the given backend.
func NewSettingsRepo(kv KV) *SettingsRepo {
	return &SettingsRepo{kv: kv}
}

// Get returns the stored settings, or the defaults when nothing has been
// saved yet.
func (r *SettingsRepo) Get(ctx context.Context) (Settings, error) {
	raw, err := r.kv.Get(ctx, KeySettings)
	if err != nil {
		return Settings{}, err
	}
	if raw == nil {
		return DefaultSettings(), nil
	}

	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode stored settings: %w", err)
	}
	return s, nil
}

// Put replaces the settings record wholesale.
func (r *SettingsRepo) Put(ctx context.Context, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return r.kv.Put(ctx, KeySettings, raw)
}

// Reset restores the default settings and returns them.
func (r *SettingsRepo) Reset(ctx context.Context) (Settings, error) {
	s := DefaultSettings()
	if err := r.Put(ctx, s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
