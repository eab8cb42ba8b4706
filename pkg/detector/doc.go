// Package detector implements the size-observing component.
//
// A Detector watches one node's content box and notifies consumers of
// width/height changes, with optional debounce/throttle rate limiting and
// frame-aligned coalescing of commits. It is plain composition: a state
// holder with explicit Attach, Update, and Detach lifecycle hooks invoked
// by whatever host drives the document; there is no framework base type.
//
// Control flow: Attach/Update resolve the target node and (re)register it
// with the observation facility; the facility delivers entries on layout
// flushes; the raw handler, optionally wrapped in a refresh limiter,
// diffs each entry against the committed size and buffers qualifying
// changes into a frame-coalescing step; the coalescer commits at most one
// size per frame, invoking OnResize and re-rendering the output.
//
// Target resolution prefers explicit binding (QuerySelector, TargetNode,
// TargetRef, in that order). Inferring the target from the rendered output
// is legacy behavior and only runs when Config.InferTarget is set.
package detector
