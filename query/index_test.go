package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex(t *testing.T) {
	tree := mustTree(t, `{
		"a": 0,
		"b": {"$lt": 0},
		"cCheck": {"$assign": {
			"c": 0,
			"cCheckPosB": {"$assign": {"b": {"$gt": 0}}}
		}},
		"dCheck": {"$assign": {"d": 0}}
	}`)

	index := tree.BuildIndex()
	assert.Equal(t, 4, index.Len())
	assert.Equal(t, []string{"a", "b", "c", "d"}, index.Fields())

	t.Run("counts declarations and overrides only", func(t *testing.T) {
		assert.Equal(t, 1, index.Count("a"))
		assert.Equal(t, 2, index.Count("b"), "root declares b, cCheckPosB overrides it")
		assert.Equal(t, 1, index.Count("c"))
		assert.Equal(t, 0, index.Count("ghost"))
	})

	t.Run("nodes come back in document order", func(t *testing.T) {
		nodes := index.NodesUsing("b")
		require.Len(t, nodes, 2)
		assert.Same(t, tree.Root(), nodes[0])
		assert.Equal(t, "cCheck.cCheckPosB", nodes[1].Path())

		assert.Nil(t, index.NodesUsing("ghost"))
	})

	t.Run("child declarations are not fields", func(t *testing.T) {
		assert.Equal(t, 0, index.Count("cCheck"))
		assert.Equal(t, 0, index.Count("dCheck"))
	})
}
