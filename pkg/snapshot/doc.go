// Package snapshot provides durable sinks for whole-store snapshots.
//
// # Overview
//
// A Sink stores one opaque snapshot body at a time and hands back the most
// recent one. Two implementations are provided:
//
//   - FileSink: a plain text file, written atomically (temp file + rename)
//     so a failed save never corrupts the previous snapshot
//   - SQLiteSink: snapshot bodies in a SQLite table with a bounded history,
//     for deployments that want a single durable artifact with WAL safety
//
// # Usage
//
//	sink := snapshot.NewFileSink("data/catalog.txt")
//
//	err := sink.Write(func(w io.Writer) error {
//	    return s.SaveTo(w)
//	})
//
//	r, err := sink.Open()
//	if errors.Is(err, snapshot.ErrNoSnapshot) {
//	    // first run, nothing persisted yet
//	}
//
// # Thread safety
//
// Sinks serialize Write internally; callers additionally get consistency
// from the store's own lock, which is held for the duration of the write
// callback.
package snapshot
