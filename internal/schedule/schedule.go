// Package schedule runs cancelable deferred callbacks
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback
type Timer interface {
	// Stop cancels the callback. It reports whether the callback was still pending.
	Stop() bool
}

// Clock schedules callbacks
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock runs callbacks on time.AfterFunc goroutines
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// PostFunc delivers a fired callback to the goroutine that should run it
type PostFunc func(f func())

// LoopClock fires timers on a time.AfterFunc goroutine but hands the callback
// to post, so it runs on the caller's event loop rather than concurrently.
type LoopClock struct {
	post PostFunc
}

// NewLoopClock creates a clock that posts fired callbacks with post
func NewLoopClock(post PostFunc) *LoopClock {
	return &LoopClock{post: post}
}

func (c *LoopClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		c.post(func() {
			if t.claim() {
				f()
			}
		})
	})
	return t
}

// loopTimer remembers cancellation so a callback already posted to the loop
// does not run after Stop
type loopTimer struct {
	mu       sync.Mutex
	timer    *time.Timer
	canceled bool
	fired    bool
}

func (t *loopTimer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.canceled || t.fired {
		return false
	}
	t.fired = true
	return true
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.canceled || t.fired {
		return false
	}
	t.canceled = true
	return true
}

// ManualClock fires callbacks only when Advance is called. It is meant for
// tests and headless rendering.
type ManualClock struct {
	now     time.Duration
	pending []*manualTimer
	seq     int
}

type manualTimer struct {
	clock *ManualClock
	at    time.Duration
	seq   int
	f     func()
	done  bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewManualClock creates a clock at time zero
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves the clock forward and runs every due callback in order
func (c *ManualClock) Advance(d time.Duration) {
	c.now += d
	for {
		due := c.due()
		if due == nil {
			return
		}
		due.done = true
		due.f()
	}
}

func (c *ManualClock) due() *manualTimer {
	live := c.pending[:0]
	for _, t := range c.pending {
		if !t.done {
			live = append(live, t)
		}
	}
	c.pending = live

	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at != c.pending[j].at {
			return c.pending[i].at < c.pending[j].at
		}
		return c.pending[i].seq < c.pending[j].seq
	})
	if len(c.pending) > 0 && c.pending[0].at <= c.now {
		return c.pending[0]
	}
	return nil
}

// Pending returns the number of callbacks that have not fired or been stopped
func (c *ManualClock) Pending() int {
	n := 0
	for _, t := range c.pending {
		if !t.done {
			n++
		}
	}
	return n
}

// Debouncer keeps at most one pending callback. Scheduling a new one cancels
// the previous, so a burst of calls runs only the last callback once the
// burst settles.
type Debouncer struct {
	clock Clock
	delay time.Duration
	timer Timer
}

// NewDebouncer creates a debouncer firing delay after the last Schedule
func NewDebouncer(clock Clock, delay time.Duration) *Debouncer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Debouncer{clock: clock, delay: delay}
}

// Schedule cancels any pending callback and schedules f
func (d *Debouncer) Schedule(f func()) {
	d.Cancel()
	var t Timer
	t = d.clock.AfterFunc(d.delay, func() {
		if d.timer == t {
			d.timer = nil
		}
		f()
	})
	d.timer = t
}

// Cancel drops the pending callback, if any
func (d *Debouncer) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a callback is waiting to run
func (d *Debouncer) Pending() bool {
	return d.timer != nil
}

// Delay returns the debounce interval
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
