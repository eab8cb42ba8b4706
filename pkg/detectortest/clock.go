package detectortest

import (
	"slices"
	"sync"
	"time"

	"github.com/go-drift/sizewatch/pkg/refresh"
)

// FakeClock provides controllable time and timers for deterministic tests.
// All methods are safe for concurrent use. Timer callbacks run on the
// goroutine that calls Advance.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	due     time.Time
	fn      func()
	fired   bool
	stopped bool
}

// Stop implements refresh.Timer.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers a timer that fires when the clock advances past d.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) refresh.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, due: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// TimerFactory adapts the clock for refresh.SetTimerFactory.
func (c *FakeClock) TimerFactory() refresh.TimerFactory {
	return func(d time.Duration, fn func()) refresh.Timer {
		return c.AfterFunc(d, fn)
	}
}

// Advance moves the clock forward by d, firing due timers in due order.
// Timers created by a firing callback fire too when they fall inside the
// advanced window, so timer chains (throttle windows) play out correctly.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if next.due.After(c.now) {
			c.now = next.due
		}
		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
}

// nextDueLocked returns the earliest live timer due at or before target.
func (c *FakeClock) nextDueLocked(target time.Time) *fakeTimer {
	var next *fakeTimer
	live := c.timers[:0]
	for _, t := range c.timers {
		if t.fired || t.stopped {
			continue
		}
		live = append(live, t)
		if t.due.After(target) {
			continue
		}
		if next == nil || t.due.Before(next.due) {
			next = t
		}
	}
	c.timers = slices.Clip(live)
	return next
}
