package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path, applies
// default values, and validates the result. Environment variables are not
// consulted; use LoadWithEnvOverrides for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// FOLIO_SECTION_FIELD environment variable overrides (e.g.
// FOLIO_STORE_PATH). Environment variables take precedence over the file.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies FOLIO_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("FOLIO_STORE_BACKEND"); val != "" {
		cfg.Store.Backend = val
	}
	if val := os.Getenv("FOLIO_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("FOLIO_STORE_SQLITE_KEEP"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Store.SQLiteKeep = i
		}
	}

	if val := os.Getenv("FOLIO_AUTOSAVE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Autosave.Interval = Duration(d)
		}
	}
	if val := os.Getenv("FOLIO_AUTOSAVE_SCHEDULE"); val != "" {
		cfg.Autosave.Schedule = val
	}
	if val := os.Getenv("FOLIO_AUTOSAVE_SAVE_ON_STOP"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Autosave.SaveOnStop = b
		}
	}

	if val := os.Getenv("FOLIO_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("FOLIO_AUDIT_PATH"); val != "" {
		cfg.Audit.Path = val
	}

	if val := os.Getenv("FOLIO_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("FOLIO_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv("FOLIO_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("FOLIO_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}
}
