package dom

// Ref is an externally held, mutable reference to a node. Hosts fill it in
// once the referenced node exists; consumers read Current on every
// lifecycle event, so a Ref populated late is picked up on the next cycle.
type Ref struct {
	current *Node
}

// NewRef creates an empty reference.
func NewRef() *Ref { return &Ref{} }

// Set points the reference at a node. Passing nil clears it.
func (r *Ref) Set(n *Node) { r.current = n }

// Current returns the referenced node, or nil when unset.
func (r *Ref) Current() *Node {
	if r == nil {
		return nil
	}
	return r.current
}
