// Package debounce coalesces bursts of values into a single commit after a
// quiet period.
package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultWait is the quiet period used when none is configured.
const DefaultWait = 300 * time.Millisecond

// Option configures a Debouncer.
type Option[T comparable] func(*Debouncer[T])

// WithClock sets the clock, the real one by default.
func WithClock[T comparable](c clockwork.Clock) Option[T] {
	return func(d *Debouncer[T]) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithInitial sets the value considered already committed.
func WithInitial[T comparable](v T) Option[T] {
	return func(d *Debouncer[T]) {
		d.last, d.hasLast = v, true
	}
}

// Debouncer commits the last pushed value once no push happened for the
// wait period. Commits never run concurrently and never run after Stop
// returns.
type Debouncer[T comparable] struct {
	clock  clockwork.Clock
	wait   time.Duration
	commit func(T)

	mu         sync.Mutex
	timer      clockwork.Timer
	gen        uint64
	pending    T
	hasPending bool
	last       T
	hasLast    bool
	stopped    bool

	// held while commit runs
	fire sync.Mutex
}

// New returns a debouncer calling commit. A non-positive wait uses
// DefaultWait.
func New[T comparable](wait time.Duration, commit func(T), opts ...Option[T]) *Debouncer[T] {
	if wait <= 0 {
		wait = DefaultWait
	}
	d := &Debouncer[T]{
		clock:  clockwork.NewRealClock(),
		wait:   wait,
		commit: commit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Push records v and restarts the quiet period.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending, d.hasPending = v, true
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.wait, func() { d.run(gen) })
}

// Pending returns the value waiting for commit.
func (d *Debouncer[T]) Pending() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.hasPending
}

// Flush commits the pending value now.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	gen := d.gen
	d.mu.Unlock()
	d.run(gen)
}

// Stop cancels the pending commit. It waits for a running commit, so it
// must not be called from inside commit.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.hasPending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.fire.Lock()
	defer d.fire.Unlock()
}

// Reset cancels the pending commit and records v as committed, for
// values committed through another path.
func (d *Debouncer[T]) Reset(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero T
	d.gen++
	d.pending, d.hasPending = zero, false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.last, d.hasLast = v, true
}

// Stopped reports whether Stop was called.
func (d *Debouncer[T]) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

func (d *Debouncer[T]) run(gen uint64) {
	d.fire.Lock()
	defer d.fire.Unlock()

	v, ok := d.take(gen)
	if !ok {
		return
	}
	d.commit(v)
}

// take claims the pending value for generation gen. Values equal to the
// last committed one are dropped.
func (d *Debouncer[T]) take(gen uint64) (T, bool) {
	var zero T

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || !d.hasPending || gen != d.gen {
		return zero, false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.pending
	d.pending, d.hasPending = zero, false
	if d.hasLast && d.last == v {
		return zero, false
	}
	d.last, d.hasLast = v, true
	return v, true
}
