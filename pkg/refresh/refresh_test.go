package refresh_test

import (
	"testing"
	"time"

	"github.com/go-drift/sizewatch/pkg/detectortest"
	"github.com/go-drift/sizewatch/pkg/refresh"
)

func installClock(t *testing.T) *detectortest.FakeClock {
	t.Helper()
	clock := detectortest.NewFakeClock()
	prev := refresh.SetTimerFactory(clock.TimerFactory())
	t.Cleanup(func() { refresh.SetTimerFactory(prev) })
	return clock
}

func TestDebounceTrailing(t *testing.T) {
	clock := installClock(t)

	var got []int
	l := refresh.Debounce(func(v int) { got = append(got, v) }, 100*time.Millisecond, refresh.DebounceDefaults())

	l.Call(1)
	clock.Advance(50 * time.Millisecond)
	l.Call(2)
	clock.Advance(50 * time.Millisecond)
	l.Call(3)
	if len(got) != 0 {
		t.Fatalf("burst must not invoke before the quiet period, got %v", got)
	}

	clock.Advance(100 * time.Millisecond)
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("expected one trailing invocation with the latest value, got %v", got)
	}

	// Quiet afterwards: nothing else fires.
	clock.Advance(time.Second)
	if len(got) != 1 {
		t.Fatalf("spurious invocation after the burst settled: %v", got)
	}
}

func TestDebounceLeading(t *testing.T) {
	clock := installClock(t)

	var got []int
	l := refresh.Debounce(func(v int) { got = append(got, v) }, 100*time.Millisecond,
		refresh.Options{Leading: true, Trailing: true})

	l.Call(1)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("leading edge should invoke immediately, got %v", got)
	}
	l.Call(2)
	l.Call(3)
	clock.Advance(100 * time.Millisecond)
	if len(got) != 2 || got[1] != 3 {
		t.Fatalf("trailing edge should deliver the latest value, got %v", got)
	}

	// A fresh burst fires the leading edge again.
	clock.Advance(time.Second)
	l.Call(4)
	if len(got) != 3 || got[2] != 4 {
		t.Fatalf("new burst should invoke on the leading edge, got %v", got)
	}
}

func TestDebounceLeadingOnlySwallowsBurst(t *testing.T) {
	clock := installClock(t)

	var got []int
	l := refresh.Debounce(func(v int) { got = append(got, v) }, 100*time.Millisecond,
		refresh.Options{Leading: true, Trailing: false})

	l.Call(1)
	l.Call(2)
	l.Call(3)
	clock.Advance(time.Second)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("leading-only should invoke once per burst, got %v", got)
	}
}

func TestThrottleWindow(t *testing.T) {
	clock := installClock(t)

	var got []int
	l := refresh.Throttle(func(v int) { got = append(got, v) }, 200*time.Millisecond, refresh.ThrottleDefaults())

	l.Call(1) // leading
	clock.Advance(50 * time.Millisecond)
	l.Call(2)
	clock.Advance(50 * time.Millisecond)
	l.Call(3)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("window should hold intermediate calls, got %v", got)
	}

	clock.Advance(100 * time.Millisecond) // window closes at 200ms
	if len(got) != 2 || got[1] != 3 {
		t.Fatalf("trailing edge should deliver the latest value, got %v", got)
	}

	// The trailing invocation opened a fresh window: an immediate call is
	// held, not invoked on the leading edge.
	l.Call(4)
	if len(got) != 2 {
		t.Fatalf("call inside the follow-up window must not invoke, got %v", got)
	}
	clock.Advance(200 * time.Millisecond)
	if len(got) != 3 || got[2] != 4 {
		t.Fatalf("follow-up window should flush on close, got %v", got)
	}
}

func TestThrottleTrailingOnly(t *testing.T) {
	clock := installClock(t)

	var got []int
	l := refresh.Throttle(func(v int) { got = append(got, v) }, 200*time.Millisecond,
		refresh.Options{Leading: false, Trailing: true})

	l.Call(1)
	if len(got) != 0 {
		t.Fatalf("leading disabled, got %v", got)
	}
	l.Call(2)
	clock.Advance(200 * time.Millisecond)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected latest value on window close, got %v", got)
	}
}

func TestFlushDeliversOwedInvocation(t *testing.T) {
	installClock(t)

	var got []int
	l := refresh.Debounce(func(v int) { got = append(got, v) }, 100*time.Millisecond, refresh.DebounceDefaults())

	l.Call(7)
	if !l.Pending() {
		t.Fatal("expected an owed invocation")
	}
	l.Flush()
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("flush should deliver the latest value, got %v", got)
	}
	if l.Pending() {
		t.Fatal("flush should clear the owed invocation")
	}
	l.Flush() // idempotent
	if len(got) != 1 {
		t.Fatalf("second flush invoked again: %v", got)
	}
}

func TestCancelDropsOwedInvocation(t *testing.T) {
	clock := installClock(t)

	var got []int
	l := refresh.Debounce(func(v int) { got = append(got, v) }, 100*time.Millisecond, refresh.DebounceDefaults())

	l.Call(1)
	l.Cancel()
	clock.Advance(time.Second)
	if len(got) != 0 {
		t.Fatalf("cancelled invocation fired: %v", got)
	}

	// The limiter stays usable: a later call starts a new burst.
	l.Call(2)
	clock.Advance(100 * time.Millisecond)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("limiter should re-arm after cancel, got %v", got)
	}
}

func TestNonPositiveIntervalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for interval <= 0")
		}
	}()
	refresh.Debounce(func(int) {}, 0, refresh.DebounceDefaults())
}
