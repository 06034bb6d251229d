package audit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"folio-hq/folio/pkg/record"
)

// Event is one audited catalog mutation.
type Event struct {
	// ID is a unique event identifier.
	ID string `json:"id"`

	// Time is when the mutation happened.
	Time time.Time `json:"time"`

	// Action names the mutation, e.g. "add", "checkout", "return", "remove".
	Action string `json:"action"`

	// RecordID is the identity of the affected record.
	RecordID record.ID `json:"record_id"`

	// Detail is an optional human-readable description.
	Detail string `json:"detail,omitempty"`
}

// Config contains configuration for the audit recorder.
type Config struct {
	// Path is the journal file; events are appended as JSON lines.
	Path string

	// Buffer is the size of the async event queue.
	// Default: 256
	Buffer int
}

// Recorder appends mutation events to a JSON-lines journal file.
// A nil *Recorder is a no-op.
type Recorder struct {
	file    *os.File
	enc     *json.Encoder
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	logger  *slog.Logger

	closeOnce sync.Once
}

// NewRecorder opens (or creates) the journal file and starts the background
// writer.
func NewRecorder(cfg Config) (*Recorder, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("audit journal path cannot be empty")
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 256
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit journal %q: %w", cfg.Path, err)
	}

	r := &Recorder{
		file:    f,
		enc:     json.NewEncoder(f),
		eventCh: make(chan Event, cfg.Buffer),
		done:    make(chan struct{}),
		logger:  slog.Default().With("component", "audit"),
	}

	r.wg.Add(1)
	go r.worker()

	return r, nil
}

// Record enqueues one event. It never blocks: when the queue is full the
// event is dropped with a warning rather than stalling a store operation.
func (r *Recorder) Record(action string, id record.ID, detail string) {
	if r == nil {
		return
	}

	ev := Event{
		ID:       uuid.New().String(),
		Time:     time.Now().UTC(),
		Action:   action,
		RecordID: id,
		Detail:   detail,
	}

	select {
	case r.eventCh <- ev:
	default:
		r.logger.Warn("audit queue full, dropping event",
			"action", action,
			"record_id", id,
		)
	}
}

// worker drains the event queue to the journal file.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case ev := <-r.eventCh:
			r.write(ev)
		case <-r.done:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case ev := <-r.eventCh:
					r.write(ev)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(ev Event) {
	if err := r.enc.Encode(ev); err != nil {
		r.logger.Error("failed to write audit event",
			"event_id", ev.ID,
			"error", err,
		)
	}
}

// Close flushes queued events, stops the worker, and closes the journal.
// A nil *Recorder Close is a no-op. Close is idempotent.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}

	var closeErr error
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
		closeErr = r.file.Close()
	})
	return closeErr
}
