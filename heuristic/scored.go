package heuristic

import (
	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
)

// Scored is implemented by heuristics that can expose their raw
// per-candidate scores alongside the reordered slice. Scores are
// normalized so that HIGHER is always better, regardless of whether the
// underlying metric is minimized or maximized: the search engine relies
// on scores[0] being the best to accumulate gain gaps
// (best_score - chosen_score) for the Gain rule.
type Scored interface {
	Heuristic
	ComputeScored(c *cover.Cover, candidates []core.Item) ([]core.Item, []float64)
}

// sortAndExtractScored is sortAndExtract plus the score vector, negated
// for lower-is-better metrics so callers always see higher-is-better.
func sortAndExtractScored(scores []scored, lowerIsBetter bool) ([]core.Item, []float64) {
	items := sortAndExtract(scores, lowerIsBetter)
	out := make([]float64, len(scores))
	for i, s := range scores {
		if lowerIsBetter {
			out[i] = -s.score
		} else {
			out[i] = s.score
		}
	}

	return items, out
}

func (h GiniIndex) ComputeScored(c *cover.Cover, candidates []core.Item) ([]core.Item, []float64) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	parent := c.LabelsCount()
	scores := scoreCandidates(c, candidates, parent, giniScore)

	return sortAndExtractScored(scores, true)
}

func (h InformationGain) ComputeScored(c *cover.Cover, candidates []core.Item) ([]core.Item, []float64) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	parent := c.LabelsCount()
	parentEntropy := entropy(parent)
	scores := scoreCandidates(c, candidates, parent, func(_, left, right []int) float64 {
		return informationGain(parentEntropy, parent, left, right)
	})

	return sortAndExtractScored(scores, false)
}

func (h WeightedEntropy) ComputeScored(c *cover.Cover, candidates []core.Item) ([]core.Item, []float64) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	parent := c.LabelsCount()
	scores := scoreCandidates(c, candidates, parent, weightedEntropyScore)

	return sortAndExtractScored(scores, true)
}
