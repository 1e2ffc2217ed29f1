package heuristic

import (
	"math"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
)

// Scorer computes a split-quality score from a parent distribution and
// the two child distributions branching on value 0 produces. Lower or
// higher is better depending on the Heuristic that owns it.
type Scorer func(parent, left, right []int) float64

// Heuristic returns candidates reordered by split quality. The scoring
// heuristics return a new slice and leave the input slice in its original
// order; NoHeuristic returns the input slice itself. Implementations must
// leave cover unmutated on return.
type Heuristic interface {
	Compute(c *cover.Cover, candidates []core.Item) []core.Item
}

// NoHeuristic leaves candidate order untouched.
type NoHeuristic struct{}

func (NoHeuristic) Compute(_ *cover.Cover, candidates []core.Item) []core.Item { return candidates }

type scored struct {
	item  core.Item
	score float64
}

// scoreCandidates branches on each candidate's value-0 literal, scores
// the resulting split with scorer, and restores the cover before moving
// to the next candidate.
func scoreCandidates(c *cover.Cover, candidates []core.Item, parent []int, scorer Scorer) []scored {
	out := make([]scored, len(candidates))
	for i, it := range candidates {
		zeroItem := core.MakeItem(it.Attribute(), 0)
		c.BranchOn(zeroItem)
		left := c.LabelsCount()
		c.Backtrack()

		right := make([]int, len(parent))
		for l := range parent {
			right[l] = parent[l] - left[l]
		}

		out[i] = scored{item: it, score: scorer(parent, left, right)}
	}

	return out
}

func sortAndExtract(scores []scored, lowerIsBetter bool) []core.Item {
	sort.SliceStable(scores, func(i, j int) bool {
		if lowerIsBetter {
			return scores[i].score < scores[j].score
		}

		return scores[i].score > scores[j].score
	})
	out := make([]core.Item, len(scores))
	for i, s := range scores {
		out[i] = s.item
	}

	return out
}

// GiniIndex orders candidates by ascending weighted Gini impurity of the
// split they induce: a more pure split sorts first.
type GiniIndex struct{}

func (GiniIndex) Compute(c *cover.Cover, candidates []core.Item) []core.Item {
	if len(candidates) == 0 {
		return candidates
	}
	parent := c.LabelsCount()
	scores := scoreCandidates(c, candidates, parent, giniScore)

	return sortAndExtract(scores, true)
}

func giniScore(parent, left, right []int) float64 {
	total := sumInts(parent)
	if total == 0 {
		return 0
	}
	leftWeight := float64(sumInts(left))
	rightWeight := float64(sumInts(right))

	return (leftWeight*branchImpurity(left, leftWeight) + rightWeight*branchImpurity(right, rightWeight)) / float64(total)
}

func branchImpurity(distribution []int, total float64) float64 {
	if total < 1 {
		return 0
	}
	sum := 0.0
	for _, count := range distribution {
		p := float64(count) / total
		sum += p * p
	}

	return 1 - sum
}

// InformationGain orders candidates by descending entropy reduction.
type InformationGain struct{}

func (InformationGain) Compute(c *cover.Cover, candidates []core.Item) []core.Item {
	if len(candidates) == 0 {
		return candidates
	}
	parent := c.LabelsCount()
	parentEntropy := entropy(parent)
	scores := scoreCandidates(c, candidates, parent, func(_, left, right []int) float64 {
		return informationGain(parentEntropy, parent, left, right)
	})

	return sortAndExtract(scores, false)
}

func informationGain(parentEntropy float64, parent, left, right []int) float64 {
	total := float64(sumInts(parent))
	if total < 1 {
		return 0
	}
	leftWeight := float64(sumInts(left)) / total
	rightWeight := float64(sumInts(right)) / total

	return parentEntropy - (leftWeight*entropy(left) + rightWeight*entropy(right))
}

// WeightedEntropy orders candidates by ascending weighted child entropy,
// with empty or fully one-sided splits scored as infinitely bad.
type WeightedEntropy struct{}

func (WeightedEntropy) Compute(c *cover.Cover, candidates []core.Item) []core.Item {
	if len(candidates) == 0 {
		return candidates
	}
	parent := c.LabelsCount()
	scores := scoreCandidates(c, candidates, parent, weightedEntropyScore)

	return sortAndExtract(scores, true)
}

func weightedEntropyScore(parent, left, right []int) float64 {
	total := float64(sumInts(parent))
	if total < 1 {
		return core.Infinity
	}
	leftWeight := float64(sumInts(left)) / total
	rightWeight := float64(sumInts(right)) / total
	if leftWeight < epsilon || rightWeight < epsilon {
		return core.Infinity
	}

	return leftWeight*entropy(left) + rightWeight*entropy(right)
}

const epsilon = 1e-12

func entropy(distribution []int) float64 {
	sum := sumInts(distribution)
	if sum == 0 {
		return 0
	}
	h := 0.0
	for _, count := range distribution {
		if count > 0 {
			p := float64(count) / float64(sum)
			h -= p * math.Log2(p)
		}
	}

	return h
}

func sumInts(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}

	return total
}

// Memoized wraps another Heuristic with an LRU cache keyed on the
// cover's current label distribution, so repeated candidate sets over
// structurally identical covers (common near the bottom of the search
// tree, where many nodes share a support/label profile) skip rescoring.
type Memoized struct {
	inner Heuristic
	cache *lru.Cache[string, []core.Item]
}

// NewMemoized builds a Memoized heuristic wrapping inner, with an LRU of
// the given size.
func NewMemoized(inner Heuristic, size int) *Memoized {
	c, _ := lru.New[string, []core.Item](size)

	return &Memoized{inner: inner, cache: c}
}

func (m *Memoized) Compute(c *cover.Cover, candidates []core.Item) []core.Item {
	key := memoKey(c, candidates)
	if cached, ok := m.cache.Get(key); ok {
		out := make([]core.Item, len(cached))
		copy(out, cached)

		return out
	}

	ordered := m.inner.Compute(c, candidates)
	stored := make([]core.Item, len(ordered))
	copy(stored, ordered)
	m.cache.Add(key, stored)

	return ordered
}

func memoKey(c *cover.Cover, candidates []core.Item) string {
	buf := make([]byte, 0, 8*(len(candidates)+len(c.LabelsCount())))
	for _, count := range c.LabelsCount() {
		buf = appendInt(buf, count)
	}
	buf = append(buf, '|')
	for _, it := range candidates {
		buf = appendInt(buf, int(it))
	}

	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	start := len(buf)
	if v == 0 {
		return append(buf, '0', ',')
	}
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	// digits were appended least-significant first; reverse in place.
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return append(buf, ',')
}
