package depth2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/dataset"
	"github.com/dl85go/dl85/depth2"
	"github.com/dl85go/dl85/errorfn"
	"github.com/dl85go/dl85/tree"
)

// xorCover enumerates (f0, f1, f2) with label = f0 XOR f1: no single
// split separates the classes, but (f0, then f1 on both sides) is exact.
func xorCover(t *testing.T) *cover.Cover {
	t.Helper()
	var features [][]int
	var labels []int
	for f0 := 0; f0 < 2; f0++ {
		for f1 := 0; f1 < 2; f1++ {
			for f2 := 0; f2 < 2; f2++ {
				features = append(features, []int{f0, f1, f2})
				labels = append(labels, f0^f1)
			}
		}
	}
	d, err := dataset.FromArrays(features, labels)
	require.NoError(t, err)

	return cover.New(d)
}

func treeErrorSum(t *testing.T, tr *tree.Tree, idx int) float64 {
	t.Helper()
	n := tr.Node(idx)
	if n.IsLeaf() {
		return n.Value.Error
	}
	sum := treeErrorSum(t, tr, n.Left) + treeErrorSum(t, tr, n.Right)
	assert.Equal(t, sum, n.Value.Error, "internal node %d error must be the sum of its children", idx)

	return sum
}

func TestErrorMinimizer_DepthTwoSolvesXOR(t *testing.T) {
	c := xorCover(t)
	m := depth2.NewErrorMinimizer(errorfn.Misclassification{})

	tr, err := m.Fit(1, 2, c, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, tr.RootError())
	require.NotNil(t, tr.Root().Value.Test)
	assert.Equal(t, 0, *tr.Root().Value.Test) // first candidate reaching 0 wins
	assert.Equal(t, 2, tr.Depth())
	treeErrorSum(t, tr, 0)

	// The cover must come back untouched.
	assert.Equal(t, 8, c.Count())
	assert.Equal(t, 0, c.Depth())
}

func TestErrorMinimizer_DepthOne(t *testing.T) {
	c := xorCover(t)
	m := depth2.NewErrorMinimizer(errorfn.Misclassification{})

	tr, err := m.Fit(1, 1, c, nil)
	require.NoError(t, err)

	// Every single split leaves 2+2 misclassified; the first wins ties.
	assert.Equal(t, 4.0, tr.RootError())
	require.NotNil(t, tr.Root().Value.Test)
	assert.Equal(t, 0, *tr.Root().Value.Test)
	assert.Equal(t, 1, tr.Depth())
}

func TestErrorMinimizer_MinSupportForcesLeaves(t *testing.T) {
	c := xorCover(t)
	m := depth2.NewErrorMinimizer(errorfn.Misclassification{})

	// Each grandchild of a double split covers 2 samples < 3, so both
	// sides are forced to leaves and the XOR structure is unreachable.
	tr, err := m.Fit(3, 2, c, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.0, tr.RootError())
	assert.Equal(t, 1, tr.Depth())
}

func TestErrorMinimizer_EmptyCandidates(t *testing.T) {
	c := xorCover(t)
	m := depth2.NewErrorMinimizer(errorfn.Misclassification{})

	// No attribute can put 5 samples on both sides of an 8-sample set.
	_, err := m.Fit(5, 2, c, nil)
	assert.ErrorIs(t, err, core.ErrEmptyCandidates)
}

func TestErrorMinimizer_InvalidDepth(t *testing.T) {
	c := xorCover(t)
	m := depth2.NewErrorMinimizer(errorfn.Misclassification{})

	_, err := m.Fit(1, 3, c, nil)
	assert.ErrorIs(t, err, core.ErrInvalidDepth)
	_, err = m.Fit(1, 0, c, nil)
	assert.ErrorIs(t, err, core.ErrInvalidDepth)
}

func TestErrorMinimizer_RestrictedCandidates(t *testing.T) {
	c := xorCover(t)
	m := depth2.NewErrorMinimizer(errorfn.Misclassification{})

	// Without f0 and f1 the best depth-2 tree cannot explain XOR.
	tr, err := m.Fit(1, 2, c, []core.Item{core.MakeItem(2, 1)})
	require.NoError(t, err)
	assert.Equal(t, 4.0, tr.RootError())
}

func TestInfoGainMaximizer_SolvesXOR(t *testing.T) {
	c := xorCover(t)
	m := depth2.NewInfoGainMaximizer(errorfn.Misclassification{})

	tr, err := m.Fit(1, 2, c, nil)
	require.NoError(t, err)

	// The gain-maximizing depth-2 tree is the same XOR-resolving split.
	assert.Equal(t, 0.0, tr.RootError())
	require.NotNil(t, tr.Root().Value.Metric)
	// Each side recovers the full parent bit, and the root aggregates both.
	assert.InDelta(t, 2.0, *tr.Root().Value.Metric, 1e-9)
	treeErrorSum(t, tr, 0)
}

func TestInfoGainMaximizer_PureParentFallsToDepthOne(t *testing.T) {
	features := [][]int{{0, 1}, {1, 0}, {1, 1}, {0, 0}}
	labels := []int{0, 0, 0, 0}
	d, err := dataset.FromArrays(features, labels)
	require.NoError(t, err)
	c := cover.New(d)

	m := depth2.NewInfoGainMaximizer(errorfn.Misclassification{})
	tr, err := m.Fit(1, 2, c, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tr.RootError())
	assert.Equal(t, 1, tr.Depth())
}
