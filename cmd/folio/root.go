package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Folio is a persistent in-process catalog with background autosave",
	Long: `Folio keeps a catalog of records in memory, serves queries against it,
and persists snapshots to disk or SQLite on a background schedule.

The daemon loads the last snapshot at startup, autosaves at a fixed
interval or cron schedule, and shuts down cleanly on SIGINT/SIGTERM.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
