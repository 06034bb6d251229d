package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"folio-hq/folio/pkg/audit"
	"folio-hq/folio/pkg/autosave"
	"folio-hq/folio/pkg/catalog"
	"folio-hq/folio/pkg/config"
	"folio-hq/folio/pkg/snapshot"
	"folio-hq/folio/pkg/store"
)

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Folio catalog daemon",
	Long: `Start the Folio catalog daemon with the specified configuration.

The daemon loads the most recent snapshot, keeps the catalog in memory,
and persists it on the configured autosave schedule until stopped.

Examples:
  # Start with default config
  folio run

  # Start with custom config
  folio run --config /etc/folio/config.yaml

  # Validate config without starting
  folio run --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the daemon")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply flag overrides
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	// A LevelVar so config reloads can change the level without restarting.
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(cfg.Logging.Level))

	handlerOpts := &slog.HandlerOptions{Level: levelVar}
	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Folio v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	// Snapshot sink
	var sink snapshot.Sink
	switch cfg.Store.Backend {
	case "sqlite":
		sink, err = snapshot.NewSQLiteSinkWithConfig(snapshot.SQLiteSinkConfig{
			Path: cfg.Store.Path,
			Keep: cfg.Store.SQLiteKeep,
		})
		if err != nil {
			return fmt.Errorf("failed to open sqlite sink: %w", err)
		}
	case "file":
		sink = snapshot.NewFileSink(cfg.Store.Path)
	default:
		return fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
	slog.Info("snapshot sink initialized", "backend", cfg.Store.Backend, "path", cfg.Store.Path)

	// Audit journal
	var auditRec *audit.Recorder
	if cfg.Audit.Enabled {
		auditRec, err = audit.NewRecorder(audit.Config{Path: cfg.Audit.Path})
		if err != nil {
			sink.Close()
			return fmt.Errorf("failed to open audit journal: %w", err)
		}
		fmt.Println("✓ Audit journal initialized")
	}

	// Metrics
	var storeMetrics *store.Metrics
	var autosaveMetrics *autosave.Metrics
	if cfg.Metrics.Enabled {
		storeMetrics = store.NewMetrics()
		autosaveMetrics = autosave.NewMetrics()
	}

	lib, err := catalog.Open(catalog.Options{
		Sink:            sink,
		Interval:        cfg.Autosave.Interval.Std(),
		Schedule:        cfg.Autosave.Schedule,
		SaveOnStop:      cfg.Autosave.SaveOnStop,
		Audit:           auditRec,
		StoreMetrics:    storeMetrics,
		AutosaveMetrics: autosaveMetrics,
		Logger:          logger,
	})
	if err != nil {
		if auditRec != nil {
			auditRec.Close()
		}
		sink.Close()
		return fmt.Errorf("failed to open catalog: %w", err)
	}

	fmt.Printf("✓ Catalog loaded (%d books)\n", lib.Len())

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsSrv := &http.Server{Addr: cfg.Metrics.ListenAddress, Handler: mux}
		go func() {
			slog.Info("metrics server starting", "address", cfg.Metrics.ListenAddress, "path", cfg.Metrics.Path)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server failed", "error", err)
			}
		}()
		defer metricsSrv.Close()

		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Metrics.ListenAddress, cfg.Metrics.Path)
	}

	// Watch the config file so log level changes apply without a restart.
	watcher, err := config.NewWatcher(cfgFile, logger)
	if err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else {
		go func() {
			err := watcher.Watch(func() error {
				reloaded, err := config.LoadWithEnvOverrides(cfgFile)
				if err != nil {
					return err
				}
				levelVar.Set(parseLevel(reloaded.Logging.Level))
				slog.Info("config reloaded", "log_level", reloaded.Logging.Level)
				return nil
			})
			if err != nil {
				slog.Error("config watcher exited", "error", err)
			}
		}()
	}

	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)

	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			slog.Error("config watcher stop failed", "error", err)
		}
	}

	if err := lib.Close(); err != nil {
		slog.Error("shutdown failed", "error", err)
		return err
	}

	fmt.Println("✓ Catalog stopped")
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
