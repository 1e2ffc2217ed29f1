package cover_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/dataset"
)

func snapshotCover(t *testing.T) *cover.Cover {
	t.Helper()
	features := [][]int{
		{1, 0},
		{1, 1},
		{0, 0},
		{0, 1},
		{1, 0},
	}
	labels := []int{1, 1, 0, 0, 1}
	d, err := dataset.FromArrays(features, labels)
	require.NoError(t, err)

	return cover.New(d)
}

func TestTids_FullAndBranched(t *testing.T) {
	c := snapshotCover(t)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, c.Tids())

	c.BranchOn(core.MakeItem(0, 1))
	assert.Equal(t, []int{0, 1, 4}, c.Tids())
	c.Backtrack()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, c.Tids())
}

func TestDifference_AgainstSnapshot(t *testing.T) {
	c := snapshotCover(t)
	full := c.Sparse()

	c.BranchOn(core.MakeItem(0, 1)) // keeps {0, 1, 4}
	in, out := c.Difference(full)
	assert.Equal(t, 0, in, "branching never adds samples")
	assert.Equal(t, 2, out, "samples 2 and 3 left the cover")

	snapA := c.Sparse()
	c.Backtrack()

	c.BranchOn(core.MakeItem(0, 0)) // keeps {2, 3}
	in, out = c.Difference(snapA)
	assert.Equal(t, 2, in)
	assert.Equal(t, 3, out)
	c.Backtrack()
}
