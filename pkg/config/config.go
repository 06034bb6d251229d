package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "10s"
// as well as integer nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value %q", value.Value)
	}
	*d = Duration(n)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the root daemon configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Audit    AuditConfig    `yaml:"audit"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// StoreConfig configures the snapshot backend.
type StoreConfig struct {
	// Backend selects the snapshot sink: "file" or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the snapshot file (file backend) or database file (sqlite).
	Path string `yaml:"path"`

	// SQLiteKeep is how many historical snapshots the sqlite backend
	// retains.
	SQLiteKeep int `yaml:"sqlite_keep"`
}

// AutosaveConfig configures the background persistence loop.
type AutosaveConfig struct {
	// Interval is the fixed persistence tick interval.
	Interval Duration `yaml:"interval"`

	// Schedule is an optional standard cron expression; when set it
	// replaces the fixed interval.
	Schedule string `yaml:"schedule"`

	// SaveOnStop performs one terminal flush during shutdown.
	SaveOnStop bool `yaml:"save_on_stop"`
}

// AuditConfig configures the mutation journal.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is json or text.
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	ListenAddress string `yaml:"listen_address"`
	Path          string `yaml:"path"`
}
