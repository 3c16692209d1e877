package query

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Strategy selects the traversal order used by Search.
type Strategy string

const (
	// DepthFirst fully explores each child's subtree, in declaration order,
	// before moving to the next sibling.
	DepthFirst Strategy = "depth"
	// BreadthFirst visits the tree level by level.
	BreadthFirst Strategy = "breadth"
)

// Get resolves an exact dot-delimited path of labels, relative to this node.
// The empty string and the node's own label return the node itself. A
// missing intermediate segment fails with ErrNotFound; a missing final (or
// sole) segment returns (nil, nil) so callers can distinguish absence from
// a broken path.
func (n *Node) Get(path string) (*Node, error) {
	if path == "" || path == n.label {
		return n, nil
	}
	if !strings.Contains(path, ".") {
		return n.Child(path), nil
	}
	segments := strings.Split(path, ".")
	node := n
	for i, segment := range segments {
		next, err := node.Get(segment)
		if err != nil {
			return nil, err
		}
		if next == nil {
			if i < len(segments)-1 {
				return nil, fmt.Errorf("get %q: no query at segment %q: %w", path, segment, ErrNotFound)
			}
			return nil, nil
		}
		node = next
	}
	return node, nil
}

// Search finds the first descendant whose label matches, walking the subtree
// with the given strategy. Duplicate labels in different branches make the
// two strategies legitimately disagree: whichever traversal reaches a
// duplicate first wins.
//
// An empty label, or one equal to the search root's own label, returns the
// search root. begin, when non-empty, is resolved via Get and the search
// restarts rooted there. Exhaustion is not a failure: the caller's fallback
// comes back with a nil error.
func (n *Node) Search(label string, fallback *Node, strategy Strategy, begin string) (*Node, error) {
	if begin != "" {
		start, err := n.Get(begin)
		if err != nil {
			return nil, err
		}
		if start == nil {
			return nil, fmt.Errorf("search begin %q: %w", begin, ErrNotFound)
		}
		return start.Search(label, fallback, strategy, "")
	}
	if label == "" || label == n.label {
		return n, nil
	}
	var found *Node
	switch strategy {
	case DepthFirst:
		found = n.searchDepth(label)
	case BreadthFirst:
		found = n.searchBreadth(label)
	default:
		return nil, fmt.Errorf("strategy %q is not supported, try %q or %q: %w",
			strategy, DepthFirst, BreadthFirst, ErrUnknownStrategy)
	}
	if found == nil {
		return fallback, nil
	}
	return found, nil
}

// searchDepth checks each child's label before descending into its subtree,
// siblings in declaration order.
func (n *Node) searchDepth(label string) *Node {
	for p := n.children.Oldest(); p != nil; p = p.Next() {
		if p.Key == label {
			return p.Value
		}
		if found := p.Value.searchDepth(label); found != nil {
			return found
		}
	}
	return nil
}

// searchBreadth works a queue of children maps: dequeue, check for a direct
// label match, then enqueue each child's own children map.
func (n *Node) searchBreadth(label string) *Node {
	queue := []*orderedmap.OrderedMap[string, *Node]{n.children}
	for len(queue) > 0 {
		kids := queue[0]
		queue = queue[1:]
		if c, ok := kids.Get(label); ok {
			return c
		}
		for p := kids.Oldest(); p != nil; p = p.Next() {
			queue = append(queue, p.Value.children)
		}
	}
	return nil
}
