// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"sync"
	"time"
)

const defaultDebounceDelay = 300 * time.Millisecond

// Debouncer coalesces a burst of triggers into one invocation: each Trigger
// resets the quiet-period timer, and only the last function runs once the
// period elapses without another trigger.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer builds a debouncer. A non-positive delay uses the 300ms
// default.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = defaultDebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any previously
// scheduled function.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending invocation, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
