package dom

import (
	"slices"

	"github.com/go-drift/sizewatch/pkg/frame"
)

// MeasureListener receives the nodes whose measured size changed since the
// previous layout flush, in the order the changes were recorded.
type MeasureListener interface {
	NodesMeasured(nodes []*Node)
}

// Document owns a node tree, a frame scheduler, and the measured-dirty
// bookkeeping that drives size observation.
type Document struct {
	root      *Node
	scheduler *frame.Scheduler
	listeners []MeasureListener

	dirty    []*Node
	dirtySet map[*Node]bool
}

// NewDocument creates a document with an empty root node.
func NewDocument() *Document {
	doc := &Document{
		root:      NewNode("root"),
		scheduler: frame.NewScheduler(),
		dirtySet:  make(map[*Node]bool),
	}
	doc.root.doc = doc
	return doc
}

// Root returns the document's root node.
func (d *Document) Root() *Node { return d.root }

// Scheduler returns the document's frame scheduler.
func (d *Document) Scheduler() *frame.Scheduler { return d.scheduler }

// AddMeasureListener registers a listener for layout flushes. Adding the
// same listener twice is a no-op.
func (d *Document) AddMeasureListener(l MeasureListener) {
	if l == nil || slices.Contains(d.listeners, l) {
		return
	}
	d.listeners = append(d.listeners, l)
}

// RemoveMeasureListener unregisters a listener.
func (d *Document) RemoveMeasureListener(l MeasureListener) {
	index := slices.Index(d.listeners, l)
	if index < 0 {
		return
	}
	d.listeners = slices.Delete(d.listeners, index, index+1)
}

// RequestMeasure marks a node measured-dirty without changing its size, so
// the next layout flush reports it. The observation facility uses this to
// deliver the initial entry for a freshly observed node.
func (d *Document) RequestMeasure(n *Node) {
	if n == nil {
		return
	}
	d.markMeasured(n)
}

func (d *Document) markMeasured(n *Node) {
	if d.dirtySet[n] {
		return
	}
	d.dirtySet[n] = true
	d.dirty = append(d.dirty, n)
}

// NeedsLayout reports whether any nodes are measured-dirty.
func (d *Document) NeedsLayout() bool {
	return len(d.dirty) > 0
}

// FlushLayout delivers the measured-dirty set to every listener, in the
// order the changes were recorded, then clears it. Nodes dirtied by a
// listener are delivered on the following flush.
func (d *Document) FlushLayout() {
	if len(d.dirty) == 0 {
		return
	}
	dirty := d.dirty
	d.dirty = nil
	clear(d.dirtySet)

	listeners := slices.Clone(d.listeners)
	for _, l := range listeners {
		l.NodesMeasured(dirty)
	}
}

// PumpFrame runs one frame: scheduled frame callbacks first, then a layout
// flush. A frame callback scheduled while flushing layout therefore runs at
// the start of the next frame, matching platform frame-callback semantics.
func (d *Document) PumpFrame() {
	d.scheduler.Flush()
	d.FlushLayout()
}

// HasWork reports whether another frame would do anything.
func (d *Document) HasWork() bool {
	return d.scheduler.HasPending() || d.NeedsLayout()
}
