// Package autosave provides the lifecycle controller that owns a store's
// persistence: it loads state at startup, issues record identities, and runs
// exactly one background goroutine that periodically flushes the store to a
// snapshot sink.
//
// # Lifecycle
//
// A controller moves through starting -> running -> stopping -> stopped:
//
//	ctl := autosave.New(books, sink, autosave.WithInterval(10*time.Second))
//	if err := ctl.Start(); err != nil { ... }
//	defer ctl.Stop()
//
// Start loads the most recent snapshot (a missing snapshot is a logical
// empty store) and seeds the identity counter to 1 + the highest loaded
// identity. Stop is idempotent: it signals the background loop, waits for
// the goroutine to fully exit, and only then returns, so no save is in
// flight or newly started once Stop has returned.
//
// There is no implicit final save on shutdown; a stop between ticks can lose
// up to one interval of mutations. WithSaveOnStop opts into one terminal
// flush for callers that want the stronger durability.
//
// # Scheduling
//
// The background loop wakes on a fixed interval by default. WithSchedule
// switches it to a cron expression (e.g. "*/5 * * * *") for deployments that
// prefer calendar-aligned persistence.
//
// Save failures are logged and counted, never fatal: the loop always
// continues to its next wake, and only an explicit Stop ends it.
package autosave
