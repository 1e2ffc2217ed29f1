package tree_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl85go/dl85/tree"
)

func TestTree_BuildAndNavigate(t *testing.T) {
	tr := tree.New()
	assert.True(t, tr.Empty())

	root := tr.AddRoot(tree.TestValue(3, 5))
	left := tr.AddNode(root, true, tree.LeafValue(0, 2))
	right := tr.AddNode(root, false, tree.LeafValue(1, 3))

	assert.Equal(t, 0, root)
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, 5.0, tr.RootError())
	assert.Equal(t, 1, tr.Depth())

	assert.False(t, tr.Root().IsLeaf())
	assert.True(t, tr.Node(left).IsLeaf())
	assert.True(t, tr.Node(right).IsLeaf())
	assert.Equal(t, left, tr.Root().Left)
	assert.Equal(t, right, tr.Root().Right)
}

func TestTree_AddRootTwicePanics(t *testing.T) {
	tr := tree.New()
	tr.AddRoot(tree.LeafValue(0, 0))
	assert.Panics(t, func() { tr.AddRoot(tree.LeafValue(1, 0)) })
}

func TestTree_JSONShape(t *testing.T) {
	tr := tree.New()
	root := tr.AddRoot(tree.TestValue(7, 4))
	tr.AddNode(root, true, tree.LeafValue(1, 1))
	tr.AddNode(root, false, tree.LeafValue(0, 3))

	raw, err := json.Marshal(tr)
	require.NoError(t, err)

	var nodes []map[string]any
	require.NoError(t, json.Unmarshal(raw, &nodes))
	require.Len(t, nodes, 3)

	rootValue := nodes[0]["value"].(map[string]any)
	assert.Equal(t, 7.0, rootValue["test"])
	assert.NotContains(t, rootValue, "out")
	assert.NotContains(t, rootValue, "metric")

	leafValue := nodes[1]["value"].(map[string]any)
	assert.Equal(t, 1.0, leafValue["out"])
	assert.NotContains(t, leafValue, "test")

	// Round-trip back into a Tree.
	var back tree.Tree
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, tr.Len(), back.Len())
	assert.Equal(t, tr.RootError(), back.RootError())
}

func TestLeafValue_NegativeOutStaysUnset(t *testing.T) {
	v := tree.LeafValue(-1, 2)
	assert.Nil(t, v.Out)
	assert.Equal(t, 2.0, v.Error)
}
