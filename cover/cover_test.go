package cover_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/dataset"
)

func sampleDataset(t *testing.T) *dataset.StaticDataset {
	t.Helper()
	features := [][]int{
		{1, 0, 1},
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
		{1, 1, 1},
	}
	labels := []int{0, 1, 0, 1, 0}
	d, err := dataset.FromArrays(features, labels)
	require.NoError(t, err)

	return d
}

func TestCover_RootIsFull(t *testing.T) {
	d := sampleDataset(t)
	c := cover.New(d)
	assert.Equal(t, 5, c.Count())
}

func TestCover_BranchOnIntersects(t *testing.T) {
	d := sampleDataset(t)
	c := cover.New(d)

	// attribute 0 = 1 for samples 0,2,4 -> support 3
	got := c.BranchOn(core.MakeItem(0, 1))
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, c.Count())
}

func TestCover_CountIfBranchOn_IsPure(t *testing.T) {
	d := sampleDataset(t)
	c := cover.New(d)

	before := c.Count()
	predicted := c.CountIfBranchOn(core.MakeItem(1, 0))
	assert.Equal(t, before, c.Count(), "CountIfBranchOn must not mutate")

	actual := c.BranchOn(core.MakeItem(1, 0))
	assert.Equal(t, predicted, actual)
}

func TestCover_BacktrackRestoresBitForBit(t *testing.T) {
	d := sampleDataset(t)
	c := cover.New(d)
	original := c.Sparse()

	c.BranchOn(core.MakeItem(0, 1))
	c.BranchOn(core.MakeItem(1, 1))
	c.Backtrack()
	c.Backtrack()

	assert.Equal(t, original, c.Sparse())
	assert.Equal(t, 5, c.Count())
}

func TestCover_NestedBranchBacktrackSequence(t *testing.T) {
	d := sampleDataset(t)
	c := cover.New(d)
	original := c.Sparse()

	seq := []core.Item{
		core.MakeItem(0, 1),
		core.MakeItem(2, 0),
		core.MakeItem(1, 1),
	}
	for _, it := range seq {
		c.BranchOn(it)
	}
	for range seq {
		c.Backtrack()
	}

	assert.Equal(t, original, c.Sparse())
}

func TestCover_BacktrackWithoutBranchPanics(t *testing.T) {
	d := sampleDataset(t)
	c := cover.New(d)
	assert.Panics(t, func() { c.Backtrack() })
}

func TestCover_LabelsCount(t *testing.T) {
	d := sampleDataset(t)
	c := cover.New(d)
	counts := c.LabelsCount()
	require.Len(t, counts, 2)
	assert.Equal(t, 3, counts[0])
	assert.Equal(t, 2, counts[1])
}

func TestCover_SymmetricDifference(t *testing.T) {
	d := sampleDataset(t)
	c := cover.New(d)
	snap := c.Sparse()
	c.BranchOn(core.MakeItem(0, 1))
	// Removed samples 1 and 3 (attribute 0 == 0 there).
	assert.Equal(t, 2, c.SymmetricDifference(snap))
}

func TestCover_DepthTracksOutstandingBranches(t *testing.T) {
	d := sampleDataset(t)
	c := cover.New(d)
	assert.Equal(t, 0, c.Depth())
	c.BranchOn(core.MakeItem(0, 1))
	assert.Equal(t, 1, c.Depth())
	c.Backtrack()
	assert.Equal(t, 0, c.Depth())
}
