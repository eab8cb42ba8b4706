package detectortest

import (
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TraceEvent records one committed size update.
type TraceEvent struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Trace records the sequence of OnResize deliveries for assertions.
type Trace struct {
	mu     sync.Mutex
	events []TraceEvent
}

// Hook returns an OnResize callback that records into the trace.
func (tr *Trace) Hook() func(width, height float64) {
	return func(width, height float64) {
		tr.mu.Lock()
		tr.events = append(tr.events, TraceEvent{Width: width, Height: height})
		tr.mu.Unlock()
	}
}

// Len returns the number of recorded updates.
func (tr *Trace) Len() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.events)
}

// Events returns a copy of the recorded updates.
func (tr *Trace) Events() []TraceEvent {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return slices.Clone(tr.events)
}

// JSON returns the recorded updates as a compact JSON array, convenient for
// single-line comparisons in tests.
func (tr *Trace) JSON() string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	data, err := json.Marshal(tr.events)
	if err != nil {
		return "[]"
	}
	if len(tr.events) == 0 {
		return "[]"
	}
	return string(data)
}
