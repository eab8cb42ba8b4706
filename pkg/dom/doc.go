// Package dom implements the retained node tree the detector observes.
//
// A Document owns a tree of Nodes, each carrying a measured box size, and a
// frame.Scheduler for frame-aligned callbacks. Resizing a node marks it
// measured-dirty; FlushLayout delivers the dirty set to registered measure
// listeners (the observation facility in pkg/observer is such a listener).
//
// Nodes are addressable by simple selectors (#id, .class, tag, or a tag
// qualified by id/class segments). Parsed selectors are memoized in a small
// LRU cache since hosts tend to query the same handful of selectors every
// lifecycle event.
//
// The tree is not synchronized: like the rest of the host model, it must be
// mutated from a single UI goroutine.
package dom
