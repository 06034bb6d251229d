package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileSink persists snapshots to a plain text file.
//
// Writes go to a temporary file in the same directory which is renamed over
// the target on success, so the previous snapshot survives a failed or
// interrupted save intact.
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink creates a sink writing to path. The file does not need to
// exist yet; Open reports ErrNoSnapshot until the first Write.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the target file path.
func (s *FileSink) Path() string { return s.path }

// Write persists one snapshot atomically.
func (s *FileSink) Write(fn func(w io.Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := fn(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close snapshot file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("commit snapshot %q: %w", s.path, err)
	}
	return nil
}

// Open returns a reader over the current snapshot file.
func (s *FileSink) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("open snapshot %q: %w", s.path, err)
	}
	return f, nil
}

// Close is a no-op; FileSink holds no long-lived resources.
func (s *FileSink) Close() error { return nil }
