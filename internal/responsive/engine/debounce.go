package engine

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window applied to resize bursts.
const DefaultDebounce = 250 * time.Millisecond

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

func timeAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs only the last of a burst of triggers, once the burst has
// been quiet for the configured window.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer Timer
	gen   uint64

	afterFunc func(time.Duration, func()) Timer
}

// NewDebouncer creates a debouncer with the given quiescence window.
func NewDebouncer(wait time.Duration) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer{wait: wait, afterFunc: timeAfterFunc}
}

// Trigger schedules fn after the window, cancelling whatever was pending.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.afterFunc(d.wait, func() {
		d.mu.Lock()
		// A newer trigger won while this one was firing.
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Wait returns the quiescence window.
func (d *Debouncer) Wait() time.Duration {
	return d.wait
}
