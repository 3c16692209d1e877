package query

import (
	"fmt"

	"github.com/agentic-research/querytree/document"
)

// Tree owns a root node and exposes lookup, search, serialization and
// matching over the whole hierarchy. Construction is eager and total: a
// well-formed definition always yields a complete tree, a malformed one
// yields ErrMalformedDefinition and no tree at all. Once built, a Tree is
// immutable and safe for concurrent readers.
type Tree struct {
	root *Node
}

// New builds a tree from a nested definition document.
func New(def *document.Map) (*Tree, error) {
	root, err := newNode(def, RootLabel, nil)
	if err != nil {
		return nil, err
	}
	return &Tree{root: root}, nil
}

// FromBytes builds a tree from a JSON definition.
func FromBytes(data []byte) (*Tree, error) {
	def, err := document.Decode(data)
	if err != nil {
		return nil, err
	}
	return New(def)
}

// FromString builds a tree from a JSON definition string.
func FromString(s string) (*Tree, error) {
	return FromBytes([]byte(s))
}

// FromFile builds a tree from a JSON definition file.
func FromFile(path string) (*Tree, error) {
	def, err := document.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return New(def)
}

// Root returns the root query.
func (t *Tree) Root() *Node { return t.root }

// Get resolves an exact dot-delimited path from the root.
func (t *Tree) Get(path string) (*Node, error) {
	return t.root.Get(path)
}

// Search finds the first query matching label under the root. See
// Node.Search for traversal semantics.
func (t *Tree) Search(label string, fallback *Node, strategy Strategy, begin string) (*Node, error) {
	return t.root.Search(label, fallback, strategy, begin)
}

// Serialize reconstructs the whole tree as a definition document.
func (t *Tree) Serialize(deduplicate bool) *document.Map {
	return t.root.Serialize(deduplicate)
}

// Match resolves the query at path and evaluates it against the record.
// Unlike Get, a missing final segment is an error here: there is no query
// to evaluate.
func (t *Tree) Match(path string, record map[string]any) (bool, error) {
	node, err := t.Get(path)
	if err != nil {
		return false, err
	}
	if node == nil {
		return false, fmt.Errorf("match %q: %w", path, ErrNotFound)
	}
	return node.Match(record)
}
