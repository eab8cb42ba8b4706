package detectortest

import (
	"testing"
	"time"
)

func TestAdvanceFiresDueTimersInOrder(t *testing.T) {
	clock := NewFakeClock()

	var got []string
	clock.AfterFunc(30*time.Millisecond, func() { got = append(got, "late") })
	clock.AfterFunc(10*time.Millisecond, func() { got = append(got, "early") })

	clock.Advance(5 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("timers fired early: %v", got)
	}

	clock.Advance(25 * time.Millisecond)
	if len(got) != 2 || got[0] != "early" || got[1] != "late" {
		t.Fatalf("firing order = %v", got)
	}
}

func TestStoppedTimerNeverFires(t *testing.T) {
	clock := NewFakeClock()

	fired := false
	timer := clock.AfterFunc(10*time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("first Stop should report success")
	}
	if timer.Stop() {
		t.Fatal("second Stop should report failure")
	}

	clock.Advance(time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
}

func TestTimerChainsPlayOutWithinOneAdvance(t *testing.T) {
	clock := NewFakeClock()

	var fireTimes []time.Duration
	start := clock.Now()
	var arm func()
	arm = func() {
		clock.AfterFunc(100*time.Millisecond, func() {
			fireTimes = append(fireTimes, clock.Now().Sub(start))
			if len(fireTimes) < 3 {
				arm()
			}
		})
	}
	arm()

	clock.Advance(300 * time.Millisecond)
	if len(fireTimes) != 3 {
		t.Fatalf("chain fired %d times", len(fireTimes))
	}
	for i, want := range []time.Duration{100, 200, 300} {
		if fireTimes[i] != want*time.Millisecond {
			t.Fatalf("fire %d at %v, want %v", i, fireTimes[i], want*time.Millisecond)
		}
	}
	if clock.Now().Sub(start) != 300*time.Millisecond {
		t.Fatalf("clock ended at %v", clock.Now().Sub(start))
	}
}

func TestFiredTimerStopReportsFalse(t *testing.T) {
	clock := NewFakeClock()
	timer := clock.AfterFunc(10*time.Millisecond, func() {})
	clock.Advance(10 * time.Millisecond)
	if timer.Stop() {
		t.Fatal("Stop after firing should report false")
	}
}
