package detector

import "github.com/go-drift/sizewatch/pkg/dom"

// resolveTarget returns the node to observe, or nil when none can be
// resolved yet. Resolution never fails loudly; a nil result is retried on
// the next lifecycle event.
//
// Priority: QuerySelector match, explicit TargetNode, TargetRef with a
// current node, then (only under the legacy InferTarget flag) inference
// from the rendered output. A set QuerySelector that matches nothing does
// not fall through to the other bindings; it simply resolves to nothing
// this cycle.
func (d *Detector) resolveTarget() *dom.Node {
	if d.doc == nil {
		return nil
	}
	cfg := d.cfg

	if cfg.QuerySelector != "" {
		return d.doc.QuerySelector(cfg.QuerySelector)
	}
	if cfg.TargetNode != nil {
		return cfg.TargetNode
	}
	if node := cfg.TargetRef.Current(); node != nil {
		return node
	}
	if !cfg.InferTarget {
		return nil
	}
	return d.inferTarget()
}

// inferTarget is the deprecated legacy fallback: function and element
// strategies observe their first rendered node; the fallback wrapper tag
// observes the wrapper's parent, i.e. the attach container.
func (d *Detector) inferTarget() *dom.Node {
	if !d.strategy.observesOwnOutput() {
		return d.container
	}
	if len(d.rendered) > 0 {
		return d.rendered[0]
	}
	return nil
}
