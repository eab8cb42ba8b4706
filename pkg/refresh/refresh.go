// Package refresh provides debounce and throttle wrappers for callbacks.
//
// A Limiter wraps a func(T) so that bursts of calls collapse into fewer
// invocations. Debounce waits for a quiet period before invoking; Throttle
// invokes at most once per interval. Both support leading and trailing
// edge behavior and carry the most recent argument into the deferred
// invocation.
//
// Timers are created through a replaceable factory so tests can drive
// limiters deterministically without real sleeps.
package refresh

import (
	"sync"
	"time"
)

// Options selects which edges of a burst trigger an invocation.
type Options struct {
	// Leading invokes immediately on the first call of a burst.
	Leading bool
	// Trailing invokes with the latest argument once the burst settles
	// (debounce) or the interval window closes (throttle).
	Trailing bool
}

// DebounceDefaults is the default edge behavior for Debounce.
func DebounceDefaults() Options { return Options{Leading: false, Trailing: true} }

// ThrottleDefaults is the default edge behavior for Throttle.
func ThrottleDefaults() Options { return Options{Leading: true, Trailing: true} }

// Timer is the subset of *time.Timer the limiter needs.
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// TimerFactory creates a timer that invokes fn once after d.
type TimerFactory func(d time.Duration, fn func()) Timer

func systemTimer(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

var (
	factoryMu sync.Mutex
	newTimer  TimerFactory = systemTimer
)

// SetTimerFactory replaces the package-level timer factory and returns the
// previous one so callers can restore it during cleanup. Passing nil
// restores the system timer. Tests use this to control limiter timing.
func SetTimerFactory(f TimerFactory) TimerFactory {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	prev := newTimer
	if f == nil {
		f = systemTimer
	}
	newTimer = f
	return prev
}

func makeTimer(d time.Duration, fn func()) Timer {
	factoryMu.Lock()
	f := newTimer
	factoryMu.Unlock()
	return f(d, fn)
}

type mode int

const (
	modeDebounce mode = iota
	modeThrottle
)

// Limiter rate-limits calls to a wrapped function. Create one with
// Debounce or Throttle. All methods are safe for concurrent use.
type Limiter[T any] struct {
	mu       sync.Mutex
	fn       func(T)
	interval time.Duration
	opts     Options
	mode     mode

	timer     Timer
	latest    T
	pending   bool // a trailing invocation is owed
	inWindow  bool // throttle: an interval window is open
	cancelled bool
}

// Debounce wraps fn so it runs only after calls stop arriving for interval.
// Each call resets the quiet period. With Options.Leading the first call of
// a burst invokes immediately; with Options.Trailing the latest argument is
// delivered once the burst settles.
//
// Debounce panics if interval is not positive.
func Debounce[T any](fn func(T), interval time.Duration, opts Options) *Limiter[T] {
	if interval <= 0 {
		panic("refresh: Debounce requires interval > 0")
	}
	return &Limiter[T]{fn: fn, interval: interval, opts: opts, mode: modeDebounce}
}

// Throttle wraps fn so it runs at most once per interval. With
// Options.Leading the first call of a window invokes immediately; with
// Options.Trailing the latest argument received during a window is
// delivered when the window closes.
//
// Throttle panics if interval is not positive.
func Throttle[T any](fn func(T), interval time.Duration, opts Options) *Limiter[T] {
	if interval <= 0 {
		panic("refresh: Throttle requires interval > 0")
	}
	return &Limiter[T]{fn: fn, interval: interval, opts: opts, mode: modeThrottle}
}

// Call feeds a value into the limiter. Depending on mode and options the
// wrapped function runs now, later with the latest value, or not at all.
func (l *Limiter[T]) Call(v T) {
	l.mu.Lock()
	if l.cancelled {
		l.cancelled = false // a new burst re-arms a previously cancelled limiter
	}
	l.latest = v

	switch l.mode {
	case modeDebounce:
		leading := l.timer == nil && !l.pending && l.opts.Leading
		if l.timer != nil {
			l.timer.Stop()
		}
		if !leading {
			l.pending = true
		}
		l.timer = makeTimer(l.interval, l.onTimer)
		if leading {
			l.mu.Unlock()
			l.fn(v)
			return
		}

	case modeThrottle:
		if !l.inWindow {
			l.inWindow = true
			l.timer = makeTimer(l.interval, l.onTimer)
			if l.opts.Leading {
				l.mu.Unlock()
				l.fn(v)
				return
			}
			l.pending = true
		} else {
			l.pending = true
		}
	}
	l.mu.Unlock()
}

// onTimer fires when the quiet period (debounce) or window (throttle) ends.
func (l *Limiter[T]) onTimer() {
	l.mu.Lock()
	if l.cancelled {
		l.mu.Unlock()
		return
	}

	invoke := l.pending && l.opts.Trailing
	v := l.latest
	l.pending = false

	switch l.mode {
	case modeDebounce:
		l.timer = nil
	case modeThrottle:
		if invoke {
			// A trailing invocation opens a fresh window so spacing holds.
			l.timer = makeTimer(l.interval, l.onTimer)
		} else {
			l.inWindow = false
			l.timer = nil
		}
	}
	l.mu.Unlock()

	if invoke {
		l.fn(v)
	}
}

// Pending reports whether a trailing invocation is owed.
func (l *Limiter[T]) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Flush immediately delivers an owed trailing invocation, if any.
func (l *Limiter[T]) Flush() {
	l.mu.Lock()
	if l.cancelled || !l.pending {
		l.mu.Unlock()
		return
	}
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	v := l.latest
	l.pending = false
	l.inWindow = false
	l.mu.Unlock()
	l.fn(v)
}

// Cancel drops any owed invocation and stops the timer. The limiter stays
// usable: a later Call starts a new burst. No invocation initiated before
// Cancel returns will fire afterwards.
func (l *Limiter[T]) Cancel() {
	l.mu.Lock()
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.pending = false
	l.inWindow = false
	l.cancelled = true
	l.mu.Unlock()
}
