package greedy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/dataset"
	"github.com/dl85go/dl85/depth2"
	"github.com/dl85go/dl85/errorfn"
	"github.com/dl85go/dl85/greedy"
	"github.com/dl85go/dl85/tree"
)

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

func newLearner(t *testing.T, minSupport, maxDepth int) *greedy.LGDT {
	t.Helper()
	miscls := errorfn.Misclassification{}
	wrapper, err := errorfn.NewWrapper(core.ClassesSupport, miscls, nil)
	require.NoError(t, err)
	l, err := greedy.New(minSupport, maxDepth, depth2.NewErrorMinimizer(miscls), wrapper)
	require.NoError(t, err)

	return l
}

func TestLGDT_DepthTwoMatchesExactOnXOR(t *testing.T) {
	c := xorCover(t)
	l := newLearner(t, 1, 2)

	tr, err := l.Fit(c)
	require.NoError(t, err)

	// With depth <= 2 the greedy learner delegates to the exact solver.
	assert.Equal(t, 0.0, tr.RootError())
	assert.Equal(t, 2, tr.Depth())
	assert.Equal(t, 8, c.Count())
	assert.Equal(t, 0, c.Depth())
}

func TestLGDT_DeeperTreeIsWellFormed(t *testing.T) {
	c := xorCover(t)
	l := newLearner(t, 1, 3)

	tr, err := l.Fit(c)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tr.RootError())
	for _, n := range tr.Nodes() {
		if n.IsLeaf() {
			continue
		}
		assert.NotEqual(t, tree.NoChild, n.Left)
		assert.NotEqual(t, tree.NoChild, n.Right)
		left := tr.Node(n.Left).Value.Error
		right := tr.Node(n.Right).Value.Error
		assert.InDelta(t, left+right, n.Value.Error, 1e-9)
	}
}

func TestLGDT_TightSupportDegeneratesToLeaf(t *testing.T) {
	c := xorCover(t)
	l := newLearner(t, 5, 2)

	tr, err := l.Fit(c)
	require.NoError(t, err)
	// No split can put 5 samples on both sides of 8, so the tree is one
	// majority leaf.
	assert.True(t, tr.Root().IsLeaf())
	assert.Equal(t, 4.0, tr.RootError())
}

func TestNew_Validation(t *testing.T) {
	miscls := errorfn.Misclassification{}
	wrapper, err := errorfn.NewWrapper(core.ClassesSupport, miscls, nil)
	require.NoError(t, err)
	d2 := depth2.NewErrorMinimizer(miscls)

	_, err = greedy.New(0, 2, d2, wrapper)
	assert.ErrorIs(t, err, core.ErrInvalidMinSupport)
	_, err = greedy.New(1, 0, d2, wrapper)
	assert.ErrorIs(t, err, core.ErrInvalidDepth)
	_, err = greedy.New(1, 2, nil, wrapper)
	assert.ErrorIs(t, err, core.ErrMissingCapability)
}
