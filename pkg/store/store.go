package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"folio-hq/folio/pkg/record"
)

// ErrNotFound is returned when no record with the requested identity exists.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateID is returned by AddUnique when a record with the same
// identity is already present.
var ErrDuplicateID = errors.New("duplicate record identity")

// Store is a generic, thread-safe, ordered collection of records.
// Insertion order is preserved but carries no semantic meaning.
//
// The zero value is not usable; construct with New.
type Store[T record.Record] struct {
	// items is the record collection, guarded by mu.
	items []T

	// parse deserializes one line during LoadFrom.
	parse record.ParseFunc[T]

	// mu serializes every operation for its full duration.
	mu sync.RWMutex

	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Store.
type Option[T record.Record] func(*Store[T])

// WithLogger sets the logger used for load warnings.
func WithLogger[T record.Record](logger *slog.Logger) Option[T] {
	return func(s *Store[T]) { s.logger = logger }
}

// WithMetrics attaches Prometheus metrics to the store.
func WithMetrics[T record.Record](m *Metrics) Option[T] {
	return func(s *Store[T]) { s.metrics = m }
}

// New creates an empty store whose LoadFrom uses parse to deserialize lines.
func New[T record.Record](parse record.ParseFunc[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		parse:  parse,
		logger: slog.Default().With("component", "store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add inserts a record at the end of the collection and returns its identity
// as a stable handle. Add does not check for duplicate identities; issuing
// unique identities is the caller's responsibility (normally the autosave
// controller's counter). Use AddUnique for the rejecting policy.
func (s *Store[T]) Add(rec T) record.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, rec)
	s.metrics.recordOp("add")
	s.metrics.setRecords(len(s.items))
	return rec.RecordID()
}

// AddUnique inserts a record like Add but fails with ErrDuplicateID when a
// record with the same identity is already present.
func (s *Store[T]) AddUnique(rec T) (record.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.RecordID()
	for _, it := range s.items {
		if it.RecordID() == id {
			return 0, fmt.Errorf("add record %d: %w", id, ErrDuplicateID)
		}
	}
	s.items = append(s.items, rec)
	s.metrics.recordOp("add")
	s.metrics.setRecords(len(s.items))
	return id, nil
}

// RemoveIf removes every record for which pred returns true and reports how
// many were removed. Removal is atomic with respect to all other operations.
func (s *Store[T]) RemoveIf(pred func(T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, it := range s.items {
		if !pred(it) {
			kept = append(kept, it)
		}
	}
	removed := len(s.items) - len(kept)

	// Zero the tail so removed records are released.
	var zero T
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = zero
	}
	s.items = kept

	s.metrics.recordOp("remove_if")
	s.metrics.setRecords(len(s.items))
	return removed
}

// FindAll returns owned copies of every record matching pred, a snapshot at
// call time. Later store mutation does not affect the returned slice.
func (s *Store[T]) FindAll(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, it := range s.items {
		if pred(it) {
			out = append(out, it)
		}
	}
	s.metrics.recordOp("find_all")
	return out
}

// FindByID returns a copy of the first record with the given identity.
// The scan is linear, O(n).
func (s *Store[T]) FindByID(id record.ID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.metrics.recordOp("find_by_id")
	for _, it := range s.items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// All returns owned copies of every record in insertion order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.metrics.recordOp("all")
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of records currently stored.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Update re-resolves the first record with the given identity under the
// lock and applies fn to it in place. If fn returns an error the record is
// left unchanged. Returns ErrNotFound when no record matches.
func (s *Store[T]) Update(id record.ID, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.recordOp("update")
	for i := range s.items {
		if s.items[i].RecordID() != id {
			continue
		}
		updated := s.items[i]
		if err := fn(&updated); err != nil {
			return err
		}
		s.items[i] = updated
		return nil
	}
	return fmt.Errorf("update record %d: %w", id, ErrNotFound)
}

// MaxID returns the highest identity currently stored, 0 when empty.
// Used for seeding the identity counter after a load.
func (s *Store[T]) MaxID() record.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max record.ID
	for _, it := range s.items {
		if id := it.RecordID(); id > max {
			max = id
		}
	}
	return max
}

// SaveTo serializes every record to w, one per line with a trailing newline,
// in insertion order. The whole write happens under the lock, so the output
// is a consistent snapshot with no concurrent mutation interleaved.
func (s *Store[T]) SaveTo(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	bw := bufio.NewWriter(w)
	for _, it := range s.items {
		if _, err := bw.WriteString(it.MarshalLine()); err != nil {
			s.metrics.recordSaveError()
			return fmt.Errorf("write record %d: %w", it.RecordID(), err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			s.metrics.recordSaveError()
			return fmt.Errorf("write record %d: %w", it.RecordID(), err)
		}
	}
	if err := bw.Flush(); err != nil {
		s.metrics.recordSaveError()
		return fmt.Errorf("flush records: %w", err)
	}
	s.metrics.observeSave(time.Since(start))
	return nil
}

// LoadFrom clears the store and reads records from r line by line.
// Blank and whitespace-only lines are skipped. A line that fails to parse is
// not fatal: it is logged as a warning, counted, and skipped, and loading
// continues. Returns the number of skipped malformed lines.
func (s *Store[T]) LoadFrom(r io.Reader) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	skipped := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := s.parse(line)
		if err != nil {
			skipped++
			s.metrics.recordLoadSkipped()
			s.logger.Warn("skipping bad record",
				"line", lineNo,
				"error", err,
			)
			continue
		}
		s.items = append(s.items, rec)
	}
	if err := scanner.Err(); err != nil {
		return skipped, fmt.Errorf("read records: %w", err)
	}

	s.metrics.setRecords(len(s.items))
	return skipped, nil
}
