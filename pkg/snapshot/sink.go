package snapshot

import (
	"errors"
	"io"
)

// ErrNoSnapshot is returned by Open when no snapshot has been written yet,
// e.g. on a first run with no file on disk. Callers treat it as a logical
// empty store, not a failure.
var ErrNoSnapshot = errors.New("no snapshot available")

// Sink stores whole-store snapshots and returns the most recent one.
type Sink interface {
	// Write persists one snapshot. It invokes fn with the destination
	// writer; the snapshot becomes visible only if fn and the commit both
	// succeed, so readers never observe a partial write.
	Write(fn func(w io.Writer) error) error

	// Open returns a reader over the most recent snapshot, or ErrNoSnapshot
	// when none exists.
	Open() (io.ReadCloser, error)

	// Close releases any resources held by the sink.
	Close() error
}
