package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/heuristic"
)

func TestComputeScored_HigherIsBetterAcrossMetrics(t *testing.T) {
	cands := []core.Item{core.MakeItem(1, 1), core.MakeItem(0, 1)}

	for name, h := range map[string]heuristic.Scored{
		"information gain": heuristic.InformationGain{},
		"gini":             heuristic.GiniIndex{},
		"weighted entropy": heuristic.WeightedEntropy{},
	} {
		t.Run(name, func(t *testing.T) {
			c := sampleCover(t)
			ordered, scores := h.ComputeScored(c, append([]core.Item{}, cands...))
			require.Len(t, ordered, 2)
			require.Len(t, scores, 2)

			// Attribute 0 predicts the label perfectly and must rank
			// first under every metric once scores are normalized.
			assert.Equal(t, 0, ordered[0].Attribute())
			assert.GreaterOrEqual(t, scores[0], scores[1], "scores must be descending")

			// Scoring must leave the cover untouched.
			assert.Equal(t, 4, c.Count())
			assert.Equal(t, 0, c.Depth())
		})
	}
}

func TestComputeScored_EmptyCandidates(t *testing.T) {
	c := sampleCover(t)
	ordered, scores := heuristic.InformationGain{}.ComputeScored(c, nil)
	assert.Empty(t, ordered)
	assert.Nil(t, scores)
}
