// Package query builds and serves inheritance trees of labeled boolean
// conditions. A definition document declares fields and, through $assign
// blocks, child queries; every child inherits its parent's effective
// definition and may override individual fields. The finished tree is
// immutable: lookup, search, serialization and matching are all read-only.
package query

import (
	"errors"
	"fmt"

	"github.com/agentic-research/querytree/document"
	"github.com/agentic-research/querytree/match"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// RootLabel is the reserved label of the implicit root query. The empty
	// string resolves to the root as well.
	RootLabel = "#root"

	// AssignKey is the reserved key that marks a child query declaration.
	AssignKey = "$assign"
)

var (
	// ErrNotFound reports a dotted path whose intermediate segment does not
	// resolve, or a label the caller required to exist.
	ErrNotFound = errors.New("query not found")

	// ErrUnknownStrategy reports an unsupported search strategy.
	ErrUnknownStrategy = errors.New("unknown search strategy")

	// ErrMalformedDefinition reports an $assign block whose payload is not a
	// definition object. Construction aborts: no partial tree is exposed.
	ErrMalformedDefinition = errors.New("malformed definition")
)

// Node is a single labeled query in the tree. It keeps the definition
// exactly as authored (raw), the definition actually evaluated against
// records (effective, after inheritance and child extraction), a non-owning
// parent back-link and its children in declaration order.
type Node struct {
	label    string
	raw      *document.Map
	def      *document.Map
	parent   *Node
	children *orderedmap.OrderedMap[string, *Node]
	matcher  *match.Matcher
}

// newNode builds a node and, recursively, its entire subtree. The input
// document is deep-copied; callers keep ownership of theirs.
func newNode(def *document.Map, label string, parent *Node) (*Node, error) {
	n := &Node{
		label:    label,
		raw:      document.Clone(def).(*document.Map),
		parent:   parent,
		children: orderedmap.New[string, *Node](),
	}
	n.def = n.inherit()
	if err := n.extractChildren(); err != nil {
		return nil, err
	}
	n.matcher = match.New(n.def)
	return n, nil
}

// inherit produces the node's working definition: the parent's effective
// definition minus the parent's own child declarations, overlaid with the
// node's raw pairs. Overriding a key keeps its inherited position; new keys
// append. The root simply copies its raw definition.
func (n *Node) inherit() *document.Map {
	merged := document.New()
	if n.parent != nil {
		for p := n.parent.def.Oldest(); p != nil; p = p.Next() {
			if _, isChild := assignPayload(p.Value); isChild {
				continue
			}
			merged.Set(p.Key, document.Clone(p.Value))
		}
	}
	for p := n.raw.Oldest(); p != nil; p = p.Next() {
		merged.Set(p.Key, document.Clone(p.Value))
	}
	return merged
}

// extractChildren walks the raw definition in authored order, removes every
// $assign block from the working definition and builds it as a child node.
// The raw definition keeps the blocks for fidelity.
func (n *Node) extractChildren() error {
	for p := n.raw.Oldest(); p != nil; p = p.Next() {
		payload, isChild := assignPayload(p.Value)
		if !isChild {
			continue
		}
		n.def.Delete(p.Key)
		sub, ok := document.Normalize(payload).(*document.Map)
		if !ok {
			return fmt.Errorf("%w: %s payload for %q is %T, want object",
				ErrMalformedDefinition, AssignKey, p.Key, payload)
		}
		child, err := newNode(sub, p.Key, n)
		if err != nil {
			return err
		}
		n.children.Set(p.Key, child)
	}
	return nil
}

// assignPayload reports whether a value is a child declaration and returns
// the declared sub-definition.
func assignPayload(v any) (any, bool) {
	switch m := v.(type) {
	case *document.Map:
		if payload, ok := m.Get(AssignKey); ok {
			return payload, true
		}
	case map[string]any:
		if payload, ok := m[AssignKey]; ok {
			return payload, true
		}
	}
	return nil, false
}

// Label returns the node's label.
func (n *Node) Label() string { return n.label }

// Parent returns the owning node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Child returns the direct child with the given label, or nil.
func (n *Node) Child(label string) *Node {
	c, _ := n.children.Get(label)
	return c
}

// Children returns the direct children in declaration order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, n.children.Len())
	for p := n.children.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Definition returns a deep copy of the effective definition.
func (n *Node) Definition() *document.Map {
	return document.Clone(n.def).(*document.Map)
}

// RawDefinition returns a deep copy of the definition as authored for this
// node, before inheritance and child extraction.
func (n *Node) RawDefinition() *document.Map {
	return document.Clone(n.raw).(*document.Map)
}

// Inheritance returns the chain of queries this node inherits from, root
// first, ending with the node itself.
func (n *Node) Inheritance() []*Node {
	if n.parent == nil {
		return []*Node{n}
	}
	return append(n.parent.Inheritance(), n)
}

// Path returns the node's dot-delimited path relative to the root. The root
// itself has the empty path.
func (n *Node) Path() string {
	if n.parent == nil {
		return ""
	}
	parent := n.parent.Path()
	if parent == "" {
		return n.label
	}
	return parent + "." + n.label
}

// Match evaluates the node's effective definition against a record.
// Evaluator failures (unsupported operators, bad operands) propagate
// unchanged.
func (n *Node) Match(record map[string]any) (bool, error) {
	return n.matcher.Match(record)
}
