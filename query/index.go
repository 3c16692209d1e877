package query

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// Index answers "which queries constrain this field" over a finished tree.
// Nodes get dense ordinals in depth-first declaration order; each field name
// maps to a bitmap of the ordinals that declare or override it in their raw
// definition. Inherited-only occurrences are not indexed — every descendant
// would match otherwise and the index would say nothing.
type Index struct {
	nodes  []*Node
	fields map[string]*roaring.Bitmap
}

// BuildIndex walks the tree once and builds its field usage index. The
// index is read-only afterwards, like the tree it describes.
func (t *Tree) BuildIndex() *Index {
	ix := &Index{fields: make(map[string]*roaring.Bitmap)}
	ix.add(t.root)
	return ix
}

func (ix *Index) add(n *Node) {
	ordinal := uint32(len(ix.nodes))
	ix.nodes = append(ix.nodes, n)
	for p := n.raw.Oldest(); p != nil; p = p.Next() {
		if _, isChild := assignPayload(p.Value); isChild {
			continue
		}
		bm, ok := ix.fields[p.Key]
		if !ok {
			bm = roaring.New()
			ix.fields[p.Key] = bm
		}
		bm.Add(ordinal)
	}
	for p := n.children.Oldest(); p != nil; p = p.Next() {
		ix.add(p.Value)
	}
}

// Len returns the number of indexed queries.
func (ix *Index) Len() int { return len(ix.nodes) }

// Fields returns every constrained field name, sorted.
func (ix *Index) Fields() []string {
	out := make([]string, 0, len(ix.fields))
	for f := range ix.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Count returns how many queries declare or override the field.
func (ix *Index) Count(field string) int {
	bm, ok := ix.fields[field]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// NodesUsing returns the queries that declare or override the field, in
// document (depth-first) order.
func (ix *Index) NodesUsing(field string) []*Node {
	bm, ok := ix.fields[field]
	if !ok {
		return nil
	}
	out := make([]*Node, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, ix.nodes[it.Next()])
	}
	return out
}
