// Package observer provides the native-style box observation facility.
//
// A BoxObserver watches a set of nodes in one document and invokes its
// callback with a batch of entries whenever a layout flush reports that a
// watched node's content box changed. Observing a node also delivers one
// entry for it on the next flush, so consumers always learn the initial
// size, the same contract browsers give ResizeObserver.
package observer

import (
	"github.com/go-drift/sizewatch/pkg/dom"
	"github.com/go-drift/sizewatch/pkg/geometry"
)

// Entry reports one watched node's content box.
type Entry struct {
	Target      *dom.Node
	ContentRect geometry.Rect
}

// Callback receives a batch of entries in delivery order.
type Callback func(entries []Entry)

// BoxObserver watches nodes in a single document for content-box changes.
// It must be used from the document's UI goroutine.
type BoxObserver struct {
	doc      *dom.Document
	callback Callback
	targets  map[*dom.Node]bool
	attached bool
}

// NewBoxObserver creates an observer bound to doc. The callback fires
// during the document's layout flush.
func NewBoxObserver(doc *dom.Document, callback Callback) *BoxObserver {
	return &BoxObserver{
		doc:      doc,
		callback: callback,
		targets:  make(map[*dom.Node]bool),
	}
}

// Observe starts watching a node. Observing an already-watched node is a
// no-op (registration is idempotent per node). The node's current size is
// delivered on the next layout flush.
func (o *BoxObserver) Observe(n *dom.Node) {
	if n == nil || o.targets[n] {
		return
	}
	o.targets[n] = true
	if !o.attached {
		o.doc.AddMeasureListener(o)
		o.attached = true
	}
	o.doc.RequestMeasure(n)
}

// Unobserve stops watching a node.
func (o *BoxObserver) Unobserve(n *dom.Node) {
	delete(o.targets, n)
}

// Disconnect stops watching all nodes and detaches from the document.
// The observer may be reused: a later Observe re-attaches it.
func (o *BoxObserver) Disconnect() {
	clear(o.targets)
	if o.attached {
		o.doc.RemoveMeasureListener(o)
		o.attached = false
	}
}

// NodesMeasured implements dom.MeasureListener. It filters the flush's
// dirty set down to watched nodes and invokes the callback once with the
// resulting batch, preserving delivery order.
func (o *BoxObserver) NodesMeasured(nodes []*dom.Node) {
	if o.callback == nil || len(o.targets) == 0 {
		return
	}
	var entries []Entry
	for _, n := range nodes {
		if o.targets[n] {
			entries = append(entries, Entry{Target: n, ContentRect: n.ContentRect()})
		}
	}
	if len(entries) > 0 {
		o.callback(entries)
	}
}

// Targets returns the watched nodes in no particular order.
func (o *BoxObserver) Targets() []*dom.Node {
	targets := make([]*dom.Node, 0, len(o.targets))
	for n := range o.targets {
		targets = append(targets, n)
	}
	return targets
}

// Watching reports whether n is currently observed.
func (o *BoxObserver) Watching(n *dom.Node) bool {
	return o.targets[n]
}

var _ dom.MeasureListener = (*BoxObserver)(nil)
