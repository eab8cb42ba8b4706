package detector

import (
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/go-drift/sizewatch/pkg/dom"
	"github.com/go-drift/sizewatch/pkg/errors"
	"github.com/go-drift/sizewatch/pkg/frame"
	"github.com/go-drift/sizewatch/pkg/geometry"
	"github.com/go-drift/sizewatch/pkg/observer"
	"github.com/go-drift/sizewatch/pkg/refresh"
)

// Detector observes one node's content box and publishes coalesced size
// updates through OnResize and the render dispatcher.
//
// All methods must be called from the host's UI goroutine, the same
// goroutine that pumps the document. Rate-limit timers fire elsewhere but
// only enqueue work back onto the document's frame scheduler.
type Detector struct {
	cfg      Config
	log      logr.Logger
	strategy RenderStrategy

	doc       *dom.Document
	container *dom.Node
	rendered  []*dom.Node

	obs      *observer.BoxObserver
	observed *dom.Node

	limiter *refresh.Limiter[[]observer.Entry]
	sched   atomic.Pointer[frame.Scheduler]

	frameToken  frame.Token
	pendingSize geometry.Size
	hasPending  bool

	size          geometry.Size
	measured      bool
	suppressMount bool
	attached      bool
}

// Option configures a Detector at construction.
type Option func(*Detector)

// WithLogger injects a logger for V(1) diagnostics. The default discards
// everything.
func WithLogger(log logr.Logger) Option {
	return func(d *Detector) { d.log = log }
}

// New creates a detached detector. The rate-limit stage is fixed here from
// the initial config; later Updates swap everything else but keep it.
func New(cfg Config, opts ...Option) *Detector {
	d := &Detector{
		cfg:           cfg,
		log:           logr.Discard(),
		strategy:      SelectStrategy(cfg),
		suppressMount: cfg.SkipOnMount,
	}
	for _, opt := range opts {
		opt(d)
	}

	switch cfg.RefreshMode {
	case ModeDebounce:
		d.limiter = refresh.Debounce(d.processBatch, cfg.refreshRate(), cfg.refreshOptions())
	case ModeThrottle:
		d.limiter = refresh.Throttle(d.processBatch, cfg.refreshRate(), cfg.refreshOptions())
	}
	return d
}

// Attach mounts the detector: render output goes under container, the
// target is resolved, and observation begins. A nil document is the
// headless pass: all node access is skipped and resolution is retried on
// the next Update.
func (d *Detector) Attach(doc *dom.Document, container *dom.Node) {
	d.doc = doc
	d.container = container
	d.attached = true
	d.suppressMount = d.cfg.SkipOnMount
	if doc == nil {
		return
	}
	d.sched.Store(doc.Scheduler())
	d.renderInto()
	d.observeTarget()
}

// Update replaces the configuration, re-renders the output, and re-resolves
// the target, re-registering observation when the target changed. The
// RefreshMode/RefreshRate stage is fixed at construction and is not
// rebuilt here.
func (d *Detector) Update(cfg Config) {
	d.cfg = cfg
	d.strategy = SelectStrategy(cfg)
	if !d.attached || d.doc == nil {
		return
	}
	d.renderInto()
	d.observeTarget()
}

// Detach tears the detector down: observation is disconnected, the pending
// rate-limit invocation and frame token are cancelled, and the rendered
// output is removed. No state update or OnResize call can happen afterwards.
func (d *Detector) Detach() {
	if !d.attached {
		return
	}
	d.attached = false
	d.sched.Store(nil)

	if d.limiter != nil {
		d.limiter.Cancel()
	}
	if d.frameToken != frame.NoToken && d.doc != nil {
		d.doc.Scheduler().Cancel(d.frameToken)
	}
	d.frameToken = frame.NoToken
	d.hasPending = false

	if d.obs != nil {
		d.obs.Disconnect()
		d.obs = nil
	}
	d.observed = nil

	if d.container != nil {
		for _, n := range d.rendered {
			d.container.RemoveChild(n)
		}
	}
	d.rendered = nil
	d.doc = nil
	d.container = nil
	d.log.V(1).Info("detached")
}

// CurrentSize returns the committed size and whether a measurement has been
// committed yet.
func (d *Detector) CurrentSize() (geometry.Size, bool) {
	return d.size, d.measured
}

// Nodes returns the current render output.
func (d *Detector) Nodes() []*dom.Node {
	return d.rendered
}

// ObservedTarget returns the node currently registered for observation, or
// nil.
func (d *Detector) ObservedTarget() *dom.Node {
	return d.observed
}

// Attached reports whether the detector is mounted.
func (d *Detector) Attached() bool {
	return d.attached
}

// observeTarget re-resolves the target and swaps the observation
// registration when it changed. This is the only place the observed-node
// field mutates, preserving the single-registration invariant.
func (d *Detector) observeTarget() {
	if d.doc == nil {
		return
	}
	target := d.resolveTarget()
	if target == d.observed {
		return
	}
	if d.obs == nil {
		d.obs = observer.NewBoxObserver(d.doc, d.entryHandler())
	}
	if d.observed != nil {
		d.obs.Unobserve(d.observed)
	}
	d.observed = target
	if target != nil {
		d.obs.Observe(target)
		d.log.V(1).Info("observing target", "tag", target.Tag(), "id", target.ID())
	}
}

// entryHandler is the raw observation callback, optionally behind the
// rate-limit stage.
func (d *Detector) entryHandler() observer.Callback {
	if d.limiter != nil {
		return func(entries []observer.Entry) { d.limiter.Call(entries) }
	}
	return d.processEntries
}

// processBatch is the limiter's downstream: limiter timers fire on their
// own goroutine, so the batch is handed back to the UI goroutine through
// the document's frame scheduler rather than processed in place.
func (d *Detector) processBatch(entries []observer.Entry) {
	sched := d.sched.Load()
	if sched == nil {
		return
	}
	sched.Schedule(func() { d.processEntries(entries) })
}

// processEntries diffs each entry against the committed size in delivery
// order and buffers qualifying changes for the frame-aligned commit. The
// mount-suppression flag clears after the first entry whether or not it
// qualified.
func (d *Detector) processEntries(entries []observer.Entry) {
	if !d.attached || d.doc == nil {
		return
	}
	for _, entry := range entries {
		rect := entry.ContentRect
		notifyWidth := d.cfg.HandleWidth && (!d.measured || rect.Width != d.size.Width)
		notifyHeight := d.cfg.HandleHeight && (!d.measured || rect.Height != d.size.Height)
		if !d.suppressMount && (notifyWidth || notifyHeight) {
			d.bufferCommit(rect.Size())
		}
		d.suppressMount = false
	}
}

// bufferCommit records the latest qualifying size and schedules one commit
// for the next frame. Later sizes in the same frame overwrite earlier ones
// (last-write-wins); only one frame callback is ever pending.
func (d *Detector) bufferCommit(size geometry.Size) {
	d.pendingSize = size
	d.hasPending = true
	if d.frameToken == frame.NoToken {
		d.frameToken = d.doc.Scheduler().Schedule(d.commit)
	}
}

// commit publishes the buffered size: OnResize fires, the size becomes the
// committed state, and the output re-renders. Runs on the frame flush.
func (d *Detector) commit() {
	d.frameToken = frame.NoToken
	if !d.attached || !d.hasPending {
		return
	}
	pending := d.pendingSize
	d.hasPending = false

	if cb := d.cfg.OnResize; cb != nil {
		d.safeCall("detector.onResize", func() { cb(pending.Width, pending.Height) })
	}

	d.size = pending
	d.measured = true
	d.refreshOutput()
	d.observeTarget()
	d.log.V(1).Info("committed size", "width", pending.Width, "height", pending.Height)
}

// renderInto materializes the output for the current strategy and places it
// under the container. Used on Attach and Update.
//
// A replacement node inherits the measured size of the node it replaces at
// the same position: in a retained host the slot keeps its layout when its
// occupant is swapped, and without the carry-over an inferred-target
// observation of fresh zero-size output would report a spurious change.
func (d *Detector) renderInto() {
	prev := d.rendered
	if d.container != nil {
		for _, n := range prev {
			d.container.RemoveChild(n)
		}
	}
	d.rendered = d.strategy.materialize(d.size, d.measured, d.callRender)
	for i, n := range d.rendered {
		if i < len(prev) {
			s := prev[i].Size()
			n.Resize(s.Width, s.Height)
		}
	}
	if d.container != nil {
		for _, n := range d.rendered {
			d.container.AppendChild(n)
		}
	}
}

// refreshOutput re-injects the committed size after a commit. Function
// output is re-invoked and replaced; element clones keep their identity and
// only update their size attributes, so an observation of a cloned child
// stays valid across commits.
func (d *Detector) refreshOutput() {
	switch d.strategy.Kind {
	case FunctionOutput:
		d.renderInto()
	case SingleElementOutput, ElementListOutput:
		for _, n := range d.rendered {
			injectSize(n, d.size, d.measured)
		}
	}
}

// callRender invokes a render function behind panic recovery. A panicking
// renderer yields no output for this cycle and is reported.
func (d *Detector) callRender(fn RenderFunc, size geometry.Size) (node *dom.Node) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         "detector.render",
				Value:      r,
				StackTrace: errors.CaptureStack(),
			})
			node = nil
		}
	}()
	return fn(size)
}

// safeCall runs a user callback behind panic recovery.
func (d *Detector) safeCall(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         op,
				Value:      r,
				StackTrace: errors.CaptureStack(),
			})
		}
	}()
	fn()
}
