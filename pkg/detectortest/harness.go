package detectortest

import (
	"testing"
	"time"

	"github.com/go-drift/sizewatch/pkg/detector"
	"github.com/go-drift/sizewatch/pkg/dom"
	"github.com/go-drift/sizewatch/pkg/refresh"
)

// settleLimit bounds Settle's frame loop so a scheduling bug fails the test
// instead of hanging it.
const settleLimit = 64

// Harness mounts detectors into an isolated document with fake time.
type Harness struct {
	Doc       *dom.Document
	Container *dom.Node
	Clock     *FakeClock

	t *testing.T
}

// NewHarness creates a harness and installs the fake timer factory for the
// duration of the test. Mounted detectors are detached automatically on
// cleanup.
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	h := &Harness{
		Doc:   dom.NewDocument(),
		Clock: NewFakeClock(),
		t:     t,
	}
	h.Container = dom.NewNode("container")
	h.Doc.Root().AppendChild(h.Container)

	prev := refresh.SetTimerFactory(h.Clock.TimerFactory())
	t.Cleanup(func() { refresh.SetTimerFactory(prev) })
	return h
}

// NewTarget creates a node with the given tag and size and attaches it to
// the document root, outside the detector's own output.
func (h *Harness) NewTarget(tag string, width, height float64) *dom.Node {
	n := dom.NewNode(tag)
	h.Doc.Root().AppendChild(n)
	n.Resize(width, height)
	return n
}

// Mount constructs a detector and attaches it to the harness document.
func (h *Harness) Mount(cfg detector.Config, opts ...detector.Option) *detector.Detector {
	h.t.Helper()
	d := detector.New(cfg, opts...)
	d.Attach(h.Doc, h.Container)
	h.t.Cleanup(d.Detach)
	return d
}

// PumpFrame runs one document frame.
func (h *Harness) PumpFrame() {
	h.Doc.PumpFrame()
}

// PumpFrames runs n document frames.
func (h *Harness) PumpFrames(n int) {
	for range n {
		h.Doc.PumpFrame()
	}
}

// Settle pumps frames until the document has no pending work. It fails the
// test if the document does not settle within settleLimit frames.
func (h *Harness) Settle() {
	h.t.Helper()
	for range settleLimit {
		if !h.Doc.HasWork() {
			return
		}
		h.Doc.PumpFrame()
	}
	h.t.Fatalf("document did not settle within %d frames", settleLimit)
}

// Advance moves fake time forward, firing due refresh timers, then settles
// any work the timers enqueued.
func (h *Harness) Advance(d time.Duration) {
	h.Clock.Advance(d)
	h.Settle()
}
