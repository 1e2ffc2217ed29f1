package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/dataset"
	"github.com/dl85go/dl85/heuristic"
)

func sampleCover(t *testing.T) *cover.Cover {
	t.Helper()
	features := [][]int{
		{1, 0},
		{1, 1},
		{0, 0},
		{0, 1},
	}
	labels := []int{1, 1, 0, 0} // attribute 0 perfectly predicts the label
	d, err := dataset.FromArrays(features, labels)
	require.NoError(t, err)

	return cover.New(d)
}

func TestNoHeuristic_LeavesOrderUnchanged(t *testing.T) {
	c := sampleCover(t)
	cands := []core.Item{core.MakeItem(1, 1), core.MakeItem(0, 1)}
	got := heuristic.NoHeuristic{}.Compute(c, cands)
	assert.Equal(t, cands, got)
}

func TestInformationGain_PrefersThePerfectSplitter(t *testing.T) {
	c := sampleCover(t)
	cands := []core.Item{core.MakeItem(1, 1), core.MakeItem(0, 1)}
	got := heuristic.InformationGain{}.Compute(c, cands)
	require.Len(t, got, 2)
	assert.Equal(t, core.MakeItem(0, 1), got[0])
}

func TestGiniIndex_PrefersThePerfectSplitter(t *testing.T) {
	c := sampleCover(t)
	cands := []core.Item{core.MakeItem(1, 1), core.MakeItem(0, 1)}
	got := heuristic.GiniIndex{}.Compute(c, cands)
	assert.Equal(t, core.MakeItem(0, 1), got[0])
}

func TestWeightedEntropy_PrefersThePerfectSplitter(t *testing.T) {
	c := sampleCover(t)
	cands := []core.Item{core.MakeItem(1, 1), core.MakeItem(0, 1)}
	got := heuristic.WeightedEntropy{}.Compute(c, cands)
	assert.Equal(t, core.MakeItem(0, 1), got[0])
}

func TestHeuristics_DoNotMutateCover(t *testing.T) {
	c := sampleCover(t)
	before := c.Sparse()
	cands := []core.Item{core.MakeItem(1, 1), core.MakeItem(0, 1)}
	heuristic.InformationGain{}.Compute(c, cands)
	assert.Equal(t, before, c.Sparse())
}

func TestMemoized_ReturnsSameOrderOnRepeat(t *testing.T) {
	c := sampleCover(t)
	cands := []core.Item{core.MakeItem(1, 1), core.MakeItem(0, 1)}
	m := heuristic.NewMemoized(heuristic.InformationGain{}, 8)

	first := m.Compute(c, cands)
	second := m.Compute(c, cands)
	assert.Equal(t, first, second)
}
