package autosave

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"folio-hq/folio/pkg/record"
	"folio-hq/folio/pkg/snapshot"
)

// State describes where a controller is in its lifecycle.
type State string

const (
	// StateStarting is the initial state before Start has completed.
	StateStarting State = "starting"
	// StateRunning means the background persistence loop is active.
	StateRunning State = "running"
	// StateStopping means Stop has been requested and the loop is winding down.
	StateStopping State = "stopping"
	// StateStopped is terminal; the background goroutine has exited.
	StateStopped State = "stopped"
)

// DefaultInterval is the default persistence tick interval.
const DefaultInterval = 10 * time.Second

// Snapshotter is the slice of the store the controller needs: consistent
// whole-collection serialization and the highest stored identity for
// seeding the counter.
type Snapshotter interface {
	SaveTo(w io.Writer) error
	LoadFrom(r io.Reader) (skipped int, err error)
	MaxID() record.ID
}

// Controller owns one store's snapshot sink, identity counter, and
// background persistence loop.
type Controller struct {
	store Snapshotter
	sink  snapshot.Sink

	interval   time.Duration
	schedule   string
	saveOnStop bool

	// nextID is controller-owned state, deliberately outside the store's
	// lock; atomic issuance keeps it safe for concurrent callers.
	nextID atomic.Uint64

	mu        sync.Mutex
	state     State
	stopCh    chan struct{}
	doneCh    chan struct{}
	stoppedCh chan struct{}

	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval sets the fixed persistence tick interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithSchedule runs the persistence loop on a standard cron expression
// instead of a fixed interval.
func WithSchedule(expr string) Option {
	return func(c *Controller) { c.schedule = expr }
}

// WithSaveOnStop performs one terminal flush during Stop, after the
// background loop has exited. Off by default: a stop between ticks may
// lose up to one interval of mutations.
func WithSaveOnStop() Option {
	return func(c *Controller) { c.saveOnStop = true }
}

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithMetrics attaches Prometheus metrics to the controller.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// New creates a controller for the given store and sink. The controller is
// in the starting state until Start is called.
func New(store Snapshotter, sink snapshot.Sink, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		sink:     sink,
		interval: DefaultInterval,
		state:    StateStarting,
		logger:   slog.Default().With("component", "autosave"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.nextID.Store(1)
	return c
}

// Start loads the most recent snapshot into the store, seeds the identity
// counter, and launches the background persistence loop. A missing snapshot
// is not an error: the store starts empty and the counter at 1.
//
// Start may be called once; a stopped controller cannot be restarted.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateStarting {
		return fmt.Errorf("start autosave controller: already %s", c.state)
	}

	r, err := c.sink.Open()
	switch {
	case errors.Is(err, snapshot.ErrNoSnapshot):
		c.logger.Info("no snapshot found, starting empty")
	case err != nil:
		return fmt.Errorf("open snapshot: %w", err)
	default:
		skipped, loadErr := c.store.LoadFrom(r)
		r.Close()
		if loadErr != nil {
			return fmt.Errorf("load snapshot: %w", loadErr)
		}
		if skipped > 0 {
			c.logger.Warn("snapshot contained malformed lines", "skipped", skipped)
		}
	}

	c.nextID.Store(uint64(c.store.MaxID()) + 1)

	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	c.stoppedCh = make(chan struct{})
	c.state = StateRunning

	if c.schedule != "" {
		if _, err := cron.ParseStandard(c.schedule); err != nil {
			c.state = StateStarting
			return fmt.Errorf("invalid cron schedule %q: %w", c.schedule, err)
		}
		go c.runCron()
	} else {
		go c.runTicker()
	}

	c.logger.Info("autosave controller started",
		"interval", c.interval,
		"schedule", c.schedule,
		"next_id", c.nextID.Load(),
	)
	return nil
}

// runTicker is the fixed-interval persistence loop.
func (c *Controller) runTicker() {
	defer close(c.doneCh)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.saveTick()
		case <-c.stopCh:
			return
		}
	}
}

// runCron is the cron-scheduled persistence loop.
func (c *Controller) runCron() {
	defer close(c.doneCh)

	cr := cron.New()
	// Schedule already validated in Start.
	_, _ = cr.AddFunc(c.schedule, c.saveTick)
	cr.Start()

	<-c.stopCh

	// Wait for any in-flight save to finish before exiting.
	ctx := cr.Stop()
	<-ctx.Done()
}

// saveTick runs one persistence tick. Failures are reported and retried on
// the next tick rather than terminating the loop.
func (c *Controller) saveTick() {
	if err := c.SaveNow(); err != nil {
		c.metrics.recordTick("error")
		c.logger.Error("autosave failed", "error", err)
		return
	}
	c.metrics.recordTick("ok")
	c.metrics.setLastSave(time.Now())
	c.logger.Debug("autosave completed")
}

// SaveNow writes one consistent snapshot of the store through the sink.
// Safe to call from any goroutine; the store's lock guarantees no concurrent
// mutation is interleaved into the output.
func (c *Controller) SaveNow() error {
	return c.sink.Write(c.store.SaveTo)
}

// Stop shuts the controller down. It signals the background loop, waits for
// the goroutine to fully exit, and transitions to stopped. Stop is
// idempotent; concurrent callers all block until shutdown is complete.
func (c *Controller) Stop() error {
	c.mu.Lock()
	switch c.state {
	case StateStopped:
		c.mu.Unlock()
		return nil
	case StateStarting:
		// Never started; nothing to join.
		c.state = StateStopped
		c.mu.Unlock()
		return nil
	case StateStopping:
		stopped := c.stoppedCh
		c.mu.Unlock()
		<-stopped
		return nil
	}

	c.state = StateStopping
	close(c.stopCh)
	c.mu.Unlock()

	<-c.doneCh

	var err error
	if c.saveOnStop {
		if err = c.SaveNow(); err != nil {
			c.logger.Error("final save on stop failed", "error", err)
		}
	}

	c.mu.Lock()
	c.state = StateStopped
	close(c.stoppedCh)
	c.mu.Unlock()

	c.logger.Info("autosave controller stopped")
	return err
}

// NextID returns the next free record identity and advances the counter.
func (c *Controller) NextID() record.ID {
	return record.ID(c.nextID.Add(1) - 1)
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
