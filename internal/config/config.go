// Package config provides the YAML-backed application configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SyncConfig controls the Google Calendar import.
type SyncConfig struct {
	// Account is the OAuth account name used for sync.
	Account string `yaml:"account" json:"account"`

	// CalendarID is the calendar to import from (default "primary").
	CalendarID string `yaml:"calendar_id" json:"calendar_id"`

	// IncludePast extends the import window back to January 1 of the
	// current year.
	IncludePast bool `yaml:"include_past" json:"include_past"`

	// IncludeFuture extends the import window to December 31 of next year.
	IncludeFuture bool `yaml:"include_future" json:"include_future"`

	// Auto enables periodic background sync on the Cron schedule.
	Auto bool `yaml:"auto" json:"auto"`

	// Cron is a cron-style schedule string (e.g. "*/30 * * * *") used
	// for periodic sync when Auto is enabled.
	Cron string `yaml:"cron" json:"cron"`
}

// MetricsConfig controls the dedicated Prometheus metrics listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Listen  string `yaml:"listen" json:"listen"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// DataDir is where the event database lives.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// Sync configures the Google Calendar import.
	Sync SyncConfig `yaml:"sync" json:"sync"`

	// Metrics configures the Prometheus metrics listener.
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:  "127.0.0.1:8080",
		DataDir: defaultDataDir(),
		Sync: SyncConfig{
			Account:       "default",
			CalendarID:    "primary",
			IncludePast:   false,
			IncludeFuture: true,
			Auto:          false,
			Cron:          "*/30 * * * *",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Listen:  ":9090",
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs (e.g., older versions) still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.Sync.Account == "" {
		c.Sync.Account = "default"
	}
	if c.Sync.CalendarID == "" {
		c.Sync.CalendarID = "primary"
	}
	if c.Sync.Cron == "" {
		c.Sync.Cron = "*/30 * * * *"
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9090"
	}
}

// DatabasePath returns the event database location inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "homecal.db")
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".homecal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Set permissions to 0600 on temp file before rename.
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	// Rename over the target path.
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "homecal")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".local", "share", "homecal")
}
