// Package gitconfig turns "git config --list" output into a tree keyed by
// the dot-separated segments of each key.
//
//	remote.origin.url=git@example.com:me/repo.git
//
// becomes remote -> origin -> url = "git@example.com:me/repo.git".
//
// Values are coerced: "true"/"false" to bool, integers to int64, other
// numbers to float64, everything else stays a string. A key without "="
// has a nil value.
package gitconfig

import (
	"strconv"
	"strings"
)

// Node is one key segment. A node can carry a value and children at the
// same time, e.g. both "a.b=1" and "a.b.c=2".
type Node struct {
	Value    any
	hasValue bool
	children map[string]*Node
	order    []string
}

func newNode() *Node {
	return &Node{children: make(map[string]*Node)}
}

// HasValue reports whether a value was assigned to this exact key.
func (n *Node) HasValue() bool {
	return n.hasValue
}

// Keys returns the child segment names in order of first appearance.
func (n *Node) Keys() []string {
	return append([]string(nil), n.order...)
}

// Child returns the named child segment.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// insert walks the remaining segments, creating children as needed, and
// assigns value at the last one.
func (n *Node) insert(segments []string, value any) {
	child, ok := n.children[segments[0]]
	if !ok {
		child = newNode()
		n.children[segments[0]] = child
		n.order = append(n.order, segments[0])
	}
	if len(segments) == 1 {
		child.Value, child.hasValue = value, true
		return
	}
	child.insert(segments[1:], value)
}

// Map exports the subtree as nested maps. A node holding both a value and
// children stores its own value under the empty key.
func (n *Node) Map() map[string]any {
	m := make(map[string]any, len(n.order))
	for _, k := range n.order {
		c := n.children[k]
		if len(c.order) == 0 {
			m[k] = c.Value
			continue
		}
		sub := c.Map()
		if c.hasValue {
			sub[""] = c.Value
		}
		m[k] = sub
	}
	return m
}

// Tree is a parsed configuration listing.
type Tree struct {
	root *Node
}

// Parse builds a tree from "git config --list" output. Repeated keys keep
// the last value.
func Parse(text string) *Tree {
	t := &Tree{root: newNode()}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		key, raw, hasValue := strings.Cut(line, "=")
		segments := splitKey(key)
		if len(segments) == 0 {
			continue
		}
		var value any
		if hasValue {
			value = coerce(raw)
		}
		t.root.insert(segments, value)
	}
	return t
}

// splitKey splits on dots and drops empty segments.
func splitKey(key string) []string {
	var out []string
	for _, s := range strings.Split(key, ".") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func coerce(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// Root returns the top-level node.
func (t *Tree) Root() *Node {
	return t.root
}

// Get walks the given segments.
func (t *Tree) Get(path ...string) (*Node, bool) {
	n := t.root
	for _, seg := range path {
		c, ok := n.children[seg]
		if !ok {
			return nil, false
		}
		n = c
	}
	return n, true
}

// Section returns a top-level section such as "core" or "remote".
func (t *Tree) Section(name string) (*Node, bool) {
	return t.Get(name)
}

// Lookup resolves a dotted key like "user.name".
func (t *Tree) Lookup(key string) (any, bool) {
	segments := splitKey(key)
	if len(segments) == 0 {
		return nil, false
	}
	n, ok := t.Get(segments...)
	if !ok || !n.hasValue {
		return nil, false
	}
	return n.Value, true
}

// String resolves key and formats non-string values.
func (t *Tree) String(key string) (string, bool) {
	v, ok := t.Lookup(key)
	if !ok || v == nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// RemoteURL returns remote.<name>.url.
func (t *Tree) RemoteURL(remote string) (string, bool) {
	return t.String("remote." + remote + ".url")
}

// UserName returns user.name.
func (t *Tree) UserName() (string, bool) {
	return t.String("user.name")
}

// UserEmail returns user.email.
func (t *Tree) UserEmail() (string, bool) {
	return t.String("user.email")
}

// Map exports the whole tree as nested maps.
func (t *Tree) Map() map[string]any {
	return t.root.Map()
}
