// Folio is a small persistent catalog daemon built on an in-process record
// store with background autosave.
//
// Usage:
//
//	# Start the daemon with default configuration
//	folio run
//
//	# Start with a custom configuration file
//	folio run --config /etc/folio/config.yaml
//
//	# Validate configuration without starting
//	folio run --dry-run
//
//	# Show version information
//	folio version
package main

func main() {
	Execute()
}
