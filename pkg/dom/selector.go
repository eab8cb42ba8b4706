package dom

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// selector is a parsed simple selector: an optional tag name plus any
// number of #id and .class qualifiers. Compound selectors (descendant
// combinators etc.) are not supported; hosts address observation targets
// directly.
type selector struct {
	tag     string
	id      string
	classes []string
	valid   bool
}

// selectorCache memoizes parsed selectors. Hosts query the same handful of
// selectors on every lifecycle event, so even a small cache absorbs nearly
// all parsing.
var selectorCache, _ = lru.New[string, selector](128)

func parseSelector(raw string) selector {
	if cached, ok := selectorCache.Get(raw); ok {
		return cached
	}
	parsed := parseSelectorUncached(raw)
	selectorCache.Add(raw, parsed)
	return parsed
}

func parseSelectorUncached(raw string) selector {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.ContainsAny(trimmed, " >+~[]:,") {
		return selector{}
	}

	var sel selector
	sel.valid = true

	rest := trimmed
	if rest[0] != '#' && rest[0] != '.' {
		end := strings.IndexAny(rest, "#.")
		if end < 0 {
			end = len(rest)
		}
		sel.tag = rest[:end]
		rest = rest[end:]
	}

	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, "#.")
		if end < 0 {
			end = len(rest)
		}
		name := rest[:end]
		rest = rest[end:]
		if name == "" {
			return selector{}
		}
		switch marker {
		case '#':
			if sel.id != "" {
				return selector{}
			}
			sel.id = name
		case '.':
			sel.classes = append(sel.classes, name)
		}
	}
	return sel
}

func (s selector) matches(n *Node) bool {
	if !s.valid {
		return false
	}
	if s.tag != "" && n.tag != s.tag {
		return false
	}
	if s.id != "" && n.id != s.id {
		return false
	}
	for _, class := range s.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	return true
}

// QuerySelector returns the first node in document order matching the
// selector, or nil when nothing matches or the selector is unsupported.
func (d *Document) QuerySelector(raw string) *Node {
	sel := parseSelector(raw)
	if !sel.valid {
		return nil
	}
	// The root container itself is not addressable, matching hosts where
	// the document node is never a query result.
	return queryFrom(d.root, sel)
}

func queryFrom(n *Node, sel selector) *Node {
	for _, child := range n.children {
		if sel.matches(child) {
			return child
		}
		if found := queryFrom(child, sel); found != nil {
			return found
		}
	}
	return nil
}
