package detector

import (
	"strconv"

	"github.com/go-drift/sizewatch/pkg/dom"
	"github.com/go-drift/sizewatch/pkg/geometry"
)

// StrategyKind identifies which output form the dispatcher uses.
type StrategyKind int

const (
	// FunctionOutput invokes a render function with the committed size.
	// Both the legacy render prop and the function-as-children form select
	// this kind.
	FunctionOutput StrategyKind = iota
	// SingleElementOutput clones one supplied element, injecting the size
	// as width/height attributes.
	SingleElementOutput
	// ElementListOutput clones each non-nil supplied element the same way.
	ElementListOutput
	// FallbackTag renders an empty element of the configured tag. Only
	// this kind makes the resolver target the wrapper's parent instead of
	// the rendered output.
	FallbackTag
)

func (k StrategyKind) String() string {
	switch k {
	case FunctionOutput:
		return "function"
	case SingleElementOutput:
		return "element"
	case ElementListOutput:
		return "element-list"
	default:
		return "fallback-tag"
	}
}

// RenderStrategy is the output strategy selected once per render from the
// supplied config, rather than re-derived by shape inspection at each use.
type RenderStrategy struct {
	Kind StrategyKind

	fn       RenderFunc
	child    *dom.Node
	children []*dom.Node
	tag      string
}

// SelectStrategy picks the output strategy for a config. Priority: render
// prop, function children, single element, element list, fallback tag.
func SelectStrategy(cfg Config) RenderStrategy {
	switch {
	case cfg.Render != nil:
		return RenderStrategy{Kind: FunctionOutput, fn: cfg.Render}
	case cfg.ChildrenFunc != nil:
		return RenderStrategy{Kind: FunctionOutput, fn: cfg.ChildrenFunc}
	case cfg.Child != nil:
		return RenderStrategy{Kind: SingleElementOutput, child: cfg.Child}
	case len(cfg.Children) > 0:
		return RenderStrategy{Kind: ElementListOutput, children: cfg.Children}
	default:
		return RenderStrategy{Kind: FallbackTag, tag: cfg.nodeType()}
	}
}

// observesOwnOutput reports whether the resolver should target the rendered
// output itself. The fallback wrapper instead targets its parent.
func (s RenderStrategy) observesOwnOutput() bool {
	return s.Kind != FallbackTag
}

// materialize produces the initial output nodes for the strategy. Function
// strategies are invoked through call so panics are contained by the owner.
func (s RenderStrategy) materialize(size geometry.Size, measured bool, call func(RenderFunc, geometry.Size) *dom.Node) []*dom.Node {
	switch s.Kind {
	case FunctionOutput:
		if node := call(s.fn, size); node != nil {
			return []*dom.Node{node}
		}
		return nil
	case SingleElementOutput:
		clone := s.child.Clone()
		injectSize(clone, size, measured)
		return []*dom.Node{clone}
	case ElementListOutput:
		nodes := make([]*dom.Node, 0, len(s.children))
		for _, child := range s.children {
			if child == nil {
				continue
			}
			clone := child.Clone()
			injectSize(clone, size, measured)
			nodes = append(nodes, clone)
		}
		return nodes
	default:
		return []*dom.Node{dom.NewNode(s.tag)}
	}
}

// injectSize writes the measured dimensions onto a clone as attributes.
// Before the first measurement the attributes are left unset, the
// equivalent of injecting an undefined size.
func injectSize(n *dom.Node, size geometry.Size, measured bool) {
	if !measured {
		return
	}
	n.SetAttribute("width", formatDimension(size.Width))
	n.SetAttribute("height", formatDimension(size.Height))
}

func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
