package query

import (
	"testing"

	"github.com/agentic-research/querytree/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeVerbose(t *testing.T) {
	tree := mustTree(t, `{
		"a": 0,
		"b": {"$lt": 0},
		"cCheck": {"$assign": {
			"c": 0,
			"cCheckPosB": {"$assign": {"b": {"$gt": 0}}}
		}},
		"dCheck": {"$assign": {"d": 0}}
	}`)

	want, err := document.Decode([]byte(`{
		"a": 0,
		"b": {"$lt": 0},
		"cCheck": {"$assign": {
			"a": 0,
			"b": {"$lt": 0},
			"c": 0,
			"cCheckPosB": {"$assign": {
				"a": 0,
				"b": {"$gt": 0},
				"c": 0
			}}
		}},
		"dCheck": {"$assign": {
			"a": 0,
			"b": {"$lt": 0},
			"d": 0
		}}
	}`))
	require.NoError(t, err)

	got := tree.Serialize(false)
	assert.Equal(t, document.Plain(want), document.Plain(got))
}

func TestSerializeDeduplicatedReproducesInput(t *testing.T) {
	// Compact input in authored key order; deduplicated serialization must
	// reproduce it byte for byte.
	input := `{"a":0,"b":{"$lt":0},"cCheck":{"$assign":{"c":0,"cCheckPosB":{"$assign":{"b":{"$gt":0}}}}},"dCheck":{"$assign":{"d":0}}}`

	tree := mustTree(t, input)
	out, err := document.Encode(tree.Serialize(true))
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestRoundTripIdempotence(t *testing.T) {
	input := `{
		"a": 0,
		"b": {"$lt": 0},
		"cCheck": {"$assign": {
			"c": 0,
			"dCheck": {"$assign": {"d": 0}}
		}},
		"dCheck": {"$assign": {"d": 0}}
	}`

	for _, deduplicate := range []bool{true, false} {
		original := mustTree(t, input)
		rebuilt, err := New(original.Serialize(deduplicate))
		require.NoError(t, err)

		var compare func(a, b *Node)
		compare = func(a, b *Node) {
			assert.Equal(t, a.Label(), b.Label())
			assert.True(t, document.Equal(a.Definition(), b.Definition()),
				"effective definitions differ at %q (deduplicate=%v)", a.Path(), deduplicate)
			ac, bc := a.Children(), b.Children()
			require.Len(t, bc, len(ac))
			for i := range ac {
				compare(ac[i], bc[i])
			}
		}
		compare(original.Root(), rebuilt.Root())
	}
}

func TestSerializeSubtree(t *testing.T) {
	tree := mustTree(t, `{
		"a": 0,
		"cCheck": {"$assign": {
			"c": 0,
			"deep": {"$assign": {"e": 1}}
		}}
	}`)

	node, err := tree.Get("cCheck")
	require.NoError(t, err)
	require.NotNil(t, node)

	// A subtree serialized without deduplication carries the full inherited
	// definitions of its ancestors.
	want, err := document.Decode([]byte(`{
		"a": 0,
		"c": 0,
		"deep": {"$assign": {"a": 0, "c": 0, "e": 1}}
	}`))
	require.NoError(t, err)
	assert.Equal(t, document.Plain(want), document.Plain(node.Serialize(false)))
}
