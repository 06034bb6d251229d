package config

import "time"

// Default values for configuration fields.
const (
	// Store defaults
	DefaultStoreBackend = "file"
	DefaultStorePath    = "data/catalog.txt"
	DefaultSQLiteKeep   = 5

	// Autosave defaults
	DefaultAutosaveInterval = 10 * time.Second

	// Audit defaults
	DefaultAuditPath = "data/audit.log"

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"

	// Metrics defaults
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
)

// ApplyDefaults fills in zero-valued fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.SQLiteKeep == 0 {
		cfg.Store.SQLiteKeep = DefaultSQLiteKeep
	}

	if cfg.Autosave.Interval == 0 {
		cfg.Autosave.Interval = Duration(DefaultAutosaveInterval)
	}

	if cfg.Audit.Path == "" {
		cfg.Audit.Path = DefaultAuditPath
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}
