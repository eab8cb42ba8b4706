package detector

import (
	"time"

	"github.com/go-drift/sizewatch/pkg/dom"
	"github.com/go-drift/sizewatch/pkg/geometry"
	"github.com/go-drift/sizewatch/pkg/refresh"
)

// RefreshMode selects the optional rate-limiting stage wrapped around the
// raw observation handler.
type RefreshMode int

const (
	// ModeNone processes every observation batch as it arrives.
	ModeNone RefreshMode = iota
	// ModeDebounce processes a batch only after entries stop arriving for
	// RefreshRate.
	ModeDebounce
	// ModeThrottle processes at most one batch per RefreshRate.
	ModeThrottle
)

func (m RefreshMode) String() string {
	switch m {
	case ModeDebounce:
		return "debounce"
	case ModeThrottle:
		return "throttle"
	default:
		return "none"
	}
}

// DefaultRefreshRate applies when a RefreshMode is set without a rate.
const DefaultRefreshRate = time.Second

// DefaultNodeType is the fallback wrapper tag rendered when no output form
// is supplied.
const DefaultNodeType = "div"

// RenderFunc produces render output for a measured size. Until the first
// commit the size is the zero Size.
type RenderFunc func(size geometry.Size) *dom.Node

// Config is the component's full configuration surface. It is supplied at
// construction and may be replaced wholesale on every Update.
type Config struct {
	// HandleWidth and HandleHeight select which dimensions trigger
	// notifications. With both unset the detector never updates.
	HandleWidth  bool
	HandleHeight bool

	// SkipOnMount suppresses the first delivered entry after attach.
	SkipOnMount bool

	// RefreshMode, RefreshRate, and RefreshOptions configure the optional
	// debounce/throttle stage. A nil RefreshOptions uses the mode's
	// defaults (debounce: trailing only; throttle: leading and trailing).
	RefreshMode    RefreshMode
	RefreshRate    time.Duration
	RefreshOptions *refresh.Options

	// Target binding, in resolution priority order. A set QuerySelector
	// wins even when it currently matches nothing (resolution retries on
	// the next lifecycle event rather than falling through).
	QuerySelector string
	TargetNode    *dom.Node
	TargetRef     *dom.Ref

	// InferTarget enables the legacy fallback of inferring the observed
	// node from the rendered output when no explicit target is bound.
	InferTarget bool

	// OnResize is invoked once per committed size change.
	OnResize func(width, height float64)

	// Output forms, in dispatch priority order. Render is the legacy
	// render prop; ChildrenFunc is the function-as-children form; Child is
	// a single element; Children is an element list; NodeType is the
	// fallback wrapper tag (default "div").
	Render       RenderFunc
	ChildrenFunc RenderFunc
	Child        *dom.Node
	Children     []*dom.Node
	NodeType     string
}

// refreshRate returns the configured rate or the default.
func (c Config) refreshRate() time.Duration {
	if c.RefreshRate > 0 {
		return c.RefreshRate
	}
	return DefaultRefreshRate
}

// refreshOptions returns the configured edge options or the mode defaults.
func (c Config) refreshOptions() refresh.Options {
	if c.RefreshOptions != nil {
		return *c.RefreshOptions
	}
	switch c.RefreshMode {
	case ModeThrottle:
		return refresh.ThrottleDefaults()
	default:
		return refresh.DebounceDefaults()
	}
}

// nodeType returns the configured fallback tag or the default.
func (c Config) nodeType() string {
	if c.NodeType != "" {
		return c.NodeType
	}
	return DefaultNodeType
}
