package query

import "github.com/agentic-research/querytree/document"

// Serialize reconstructs the subtree rooted at this node as a nested
// document in the same grammar the tree was built from.
//
// Without deduplication every child block carries the child's full effective
// definition, inherited fields included. With deduplication a child block
// keeps only the pairs the child added or changed relative to this node's
// effective definition; re-parsing the result rebuilds identical effective
// definitions at every label.
func (n *Node) Serialize(deduplicate bool) *document.Map {
	out := n.Definition()
	for p := n.children.Oldest(); p != nil; p = p.Next() {
		child := p.Value
		var payload *document.Map
		if deduplicate {
			payload = document.New()
			for q := child.Serialize(true).Oldest(); q != nil; q = q.Next() {
				own, present := out.Get(q.Key)
				if !present || !document.Equal(own, q.Value) {
					payload.Set(q.Key, q.Value)
				}
			}
		} else {
			payload = child.Serialize(false)
		}
		block := document.New()
		block.Set(AssignKey, payload)
		out.Set(p.Key, block)
	}
	return out
}
