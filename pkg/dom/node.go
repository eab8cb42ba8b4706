package dom

import (
	"slices"

	"github.com/go-drift/sizewatch/pkg/geometry"
)

// Node is an element in the retained tree. It carries a tag name, an
// optional id, classes, string attributes, and a measured content-box size.
type Node struct {
	tag      string
	id       string
	classes  []string
	attrs    map[string]string
	parent   *Node
	children []*Node
	size     geometry.Size
	doc      *Document
}

// NewNode creates a detached node with the given tag name.
func NewNode(tag string) *Node {
	return &Node{tag: tag}
}

// Tag returns the node's tag name.
func (n *Node) Tag() string { return n.tag }

// ID returns the node's id, or "" when unset.
func (n *Node) ID() string { return n.id }

// SetID assigns the node's id.
func (n *Node) SetID(id string) { n.id = id }

// AddClass adds a class to the node. Duplicate classes are ignored.
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

// HasClass reports whether the node carries the given class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// SetAttribute sets a string attribute on the node.
func (n *Node) SetAttribute(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// Attribute returns the attribute value and whether it is set.
func (n *Node) Attribute(key string) (string, bool) {
	value, ok := n.attrs[key]
	return value, ok
}

// Parent returns the node's parent, or nil for detached and root nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The returned slice must not be
// mutated.
func (n *Node) Children() []*Node { return n.children }

// Document returns the document the node is attached to, or nil.
func (n *Node) Document() *Document { return n.doc }

// AppendChild attaches child as the last child of n, detaching it from any
// previous parent first. Appending nil is a no-op.
func (n *Node) AppendChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.setDocument(n.doc)
}

// RemoveChild detaches child from n. Removing a node that is not a child
// is a no-op.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	index := slices.Index(n.children, child)
	if index < 0 {
		return
	}
	n.children = slices.Delete(n.children, index, index+1)
	child.parent = nil
	child.setDocument(nil)
}

func (n *Node) setDocument(doc *Document) {
	if n.doc == doc {
		return
	}
	n.doc = doc
	for _, child := range n.children {
		child.setDocument(doc)
	}
}

// Size returns the node's measured content-box size.
func (n *Node) Size() geometry.Size { return n.size }

// ContentRect returns the node's content box as a rectangle.
func (n *Node) ContentRect() geometry.Rect {
	return geometry.RectFromSize(n.size)
}

// Resize sets the node's measured size. A changed size marks the node
// measured-dirty on its document, so the next layout flush reports it to
// measure listeners. Resizing to the current size is a no-op.
func (n *Node) Resize(width, height float64) {
	next := geometry.Size{Width: width, Height: height}
	if n.size == next {
		return
	}
	n.size = next
	if n.doc != nil {
		n.doc.markMeasured(n)
	}
}

// Clone returns a deep copy of the node's subtree. The clone is detached:
// it has no parent and no document, and sizes are reset to zero since a
// clone has not been laid out.
func (n *Node) Clone() *Node {
	clone := &Node{
		tag:     n.tag,
		id:      n.id,
		classes: slices.Clone(n.classes),
	}
	if len(n.attrs) > 0 {
		clone.attrs = make(map[string]string, len(n.attrs))
		for key, value := range n.attrs {
			clone.attrs[key] = value
		}
	}
	for _, child := range n.children {
		clone.AppendChild(child.Clone())
	}
	return clone
}
