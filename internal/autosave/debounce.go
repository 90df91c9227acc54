// Package autosave schedules debounced writes of the workbook state.
//
// Mutations call Trigger; the Debouncer runs its flush function once the
// trigger stream has been quiet for the configured window. A pending write
// is superseded by a later Trigger, never queued behind it, so only the last
// state before a quiet period reaches storage.
package autosave

import (
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/meworkbook/internal/clock"
)

// DefaultDelay is the trailing debounce window.
const DefaultDelay = 250 * time.Millisecond

// FlushFunc persists the current state. It reads the state at call time.
type FlushFunc func() error

// Debouncer collapses bursts of triggers into one trailing flush.
type Debouncer struct {
	mu      sync.Mutex
	clock   clock.Clock
	delay   time.Duration
	flush   FlushFunc
	logger  *slog.Logger
	timer   clock.Timer
	gen     uint64
	pending bool
	stopped bool

	// runMu serializes flush calls between the timer and Flush.
	runMu sync.Mutex
}

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithClock sets the clock used for timers.
func WithClock(c clock.Clock) Option {
	return func(d *Debouncer) { d.clock = c }
}

// WithDelay sets the debounce window. Non-positive values keep the default.
func WithDelay(delay time.Duration) Option {
	return func(d *Debouncer) {
		if delay > 0 {
			d.delay = delay
		}
	}
}

// WithLogger sets the logger for timer-driven flush failures.
func WithLogger(l *slog.Logger) Option {
	return func(d *Debouncer) { d.logger = l }
}

// New creates a Debouncer around flush.
func New(flush FlushFunc, opts ...Option) *Debouncer {
	d := &Debouncer{
		clock:  clock.System{},
		delay:  DefaultDelay,
		flush:  flush,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delay returns the debounce window.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger schedules a flush after the debounce window, replacing any
// flush already scheduled. Triggers after Stop are ignored.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Pending reports whether a flush is scheduled but has not run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush runs a scheduled flush now. It is a no-op when nothing is pending.
func (d *Debouncer) Flush() error {
	if !d.take(0) {
		return nil
	}
	return d.run()
}

// Stop flushes any pending write and ignores later triggers.
func (d *Debouncer) Stop() error {
	err := d.Flush()

	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	return err
}

func (d *Debouncer) fire(gen uint64) {
	if !d.take(gen) {
		return
	}
	if err := d.run(); err != nil {
		d.logger.Error("autosave flush failed", "error", err)
	}
}

// take claims the pending flush. A non-zero gen claims it only if no newer
// Trigger has superseded that timer.
func (d *Debouncer) take(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.pending || (gen != 0 && gen != d.gen) {
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
	return true
}

func (d *Debouncer) run() error {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	return d.flush()
}
