package depth2

import (
	"fmt"
	"math"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/errorfn"
	"github.com/dl85go/dl85/tree"
)

// InfoGainMaximizer is the depth-2 solver variant that maximizes
// information gain instead of minimizing error. Leaf errors still come
// from the error function so the
// output tree satisfies the error-sum invariant; each internal node of a
// depth-2 result additionally carries its gain in the Metric field. A
// depth-1 result (including every fallback to depth 1) leaves Metric unset.
type InfoGainMaximizer struct {
	errFn errorfn.ErrorFn
}

// NewInfoGainMaximizer builds an InfoGainMaximizer over errFn. Panics on
// nil errFn.
func NewInfoGainMaximizer(errFn errorfn.ErrorFn) *InfoGainMaximizer {
	if errFn == nil {
		panic("depth2: nil error function")
	}

	return &InfoGainMaximizer{errFn: errFn}
}

// Fit solves the depth-1 or depth-2 problem on the current cover,
// maximizing gain. Falls through to depth 1 when the parent entropy is
// already zero (no split can gain anything).
func (m *InfoGainMaximizer) Fit(minSupport, depth int, c *cover.Cover, candidates []core.Item) (*tree.Tree, error) {
	if minSupport <= 0 {
		return nil, core.ErrInvalidMinSupport
	}
	switch depth {
	case 1:
		return m.depthOne(minSupport, c, candidates)
	case 2:
		return m.depthTwo(minSupport, c, candidates)
	default:
		return nil, fmt.Errorf("%w: depth-2 optimizer handles depth 1 or 2, got %d", core.ErrInvalidDepth, depth)
	}
}

// depthOne splits on the valid candidate with the highest gain. Ties go
// to the first candidate in pool order; with a pure parent every split
// gains nothing, so the first valid candidate is taken.
func (m *InfoGainMaximizer) depthOne(minSupport int, c *cover.Cover, candidates []core.Item) (*tree.Tree, error) {
	attrs := validAttributes(c, minSupport, candidates)
	if len(attrs) == 0 {
		return nil, core.ErrEmptyCandidates
	}

	parent := c.LabelsCount()
	support := float64(sumDist(parent))
	parentEntropy := distEntropy(parent)
	a, bestGain := -1, math.Inf(-1)
	var leftDist, rightDist []int
	for _, cand := range attrs {
		c.BranchOn(core.MakeItem(cand, 0))
		l := c.LabelsCount()
		c.Backtrack()
		r := subDist(parent, l)
		gain := parentEntropy - (distEntropy(l)*float64(sumDist(l))+distEntropy(r)*float64(sumDist(r)))/support
		if gain > bestGain {
			a, bestGain, leftDist, rightDist = cand, gain, l, r
		}
	}

	le, lo := m.errFn.Compute(leftDist)
	re, ro := m.errFn.Compute(rightDist)

	return assemble(a, le+re,
		side{err: le, isLeaf: true, out: lo},
		side{err: re, isLeaf: true, out: ro},
	), nil
}

func (m *InfoGainMaximizer) depthTwo(minSupport int, c *cover.Cover, candidates []core.Item) (*tree.Tree, error) {
	attrs := validAttributes(c, minSupport, candidates)
	if len(attrs) == 0 {
		return nil, core.ErrEmptyCandidates
	}
	if len(attrs) < 2 {
		return m.depthOne(minSupport, c, candidates)
	}

	parent := c.LabelsCount()
	support := sumDist(parent)
	parentEntropy := distEntropy(parent)
	if parentEntropy <= 0 {
		return m.depthOne(minSupport, c, candidates)
	}

	matrix := buildPairMatrix(c, attrs)

	bestGain := math.Inf(-1)
	bestAttr := -1
	var bestLeft, bestRight gainSide
	for i := range attrs {
		rightDist := matrix.at(i, i)
		rightSup := sumDist(rightDist)
		leftSup := support - rightSup
		if leftSup < minSupport || rightSup < minSupport {
			continue
		}
		leftDist := subDist(parent, rightDist)

		left := m.bestGainSide(minSupport, attrs, leftDist, leftSup, support, parentEntropy, func(j int) ([]int, []int) {
			gRight := subDist(matrix.at(j, j), matrix.at(i, j))

			return subDist(leftDist, gRight), gRight
		}, i)
		right := m.bestGainSide(minSupport, attrs, rightDist, rightSup, support, parentEntropy, func(j int) ([]int, []int) {
			gRight := matrix.at(i, j)

			return subDist(rightDist, gRight), gRight
		}, i)

		if total := left.gain + right.gain; total > bestGain {
			bestGain = total
			bestAttr = attrs[i]
			bestLeft, bestRight = left, right
			if left.side.err+right.side.err <= 0 {
				break
			}
		}
	}

	if bestAttr < 0 {
		return m.depthOne(minSupport, c, candidates)
	}

	t := assembleGain(bestAttr, bestLeft, bestRight, bestGain)

	return t, nil
}

type gainSide struct {
	side
	gain float64
}

// bestGainSide picks, for one half of the root split, the second
// attribute whose sub-split maximizes gain over the whole dataset's
// entropy baseline; a side that cannot split (support or candidate
// exhaustion) stays a leaf with gain 0.
func (m *InfoGainMaximizer) bestGainSide(minSupport int, attrs []int, dist []int, sup, total int, parentEntropy float64, grandchildren func(j int) ([]int, []int), skip int) gainSide {
	leafErr, leafOut := m.errFn.Compute(dist)
	best := gainSide{side: side{err: leafErr, isLeaf: true, out: leafOut}}
	if sup < 2*minSupport {
		return best
	}

	for j := range attrs {
		if j == skip {
			continue
		}
		gLeft, gRight := grandchildren(j)
		lSup, rSup := sumDist(gLeft), sumDist(gRight)
		if lSup < minSupport || rSup < minSupport {
			continue
		}
		gain := parentEntropy -
			distEntropy(gLeft)*float64(lSup)/float64(total) -
			distEntropy(gRight)*float64(rSup)/float64(total)
		if gain <= best.gain {
			continue
		}
		le, lo := m.errFn.Compute(gLeft)
		re, ro := m.errFn.Compute(gRight)
		best = gainSide{
			gain: gain,
			side: side{
				err:      le + re,
				test:     attrs[j],
				leftErr:  le,
				rightErr: re,
				leftOut:  lo,
				rightOut: ro,
			},
		}
	}

	return best
}

func assembleGain(rootAttr int, left, right gainSide, totalGain float64) *tree.Tree {
	t := tree.New()
	rootValue := tree.TestValue(rootAttr, left.err+right.err)
	rootValue.Metric = &totalGain
	root := t.AddRoot(rootValue)
	attachGain(t, root, true, left)
	attachGain(t, root, false, right)

	return t
}

func attachGain(t *tree.Tree, parent int, isLeft bool, s gainSide) {
	if s.isLeaf {
		t.AddNode(parent, isLeft, tree.LeafValue(s.out, s.err))

		return
	}
	v := tree.TestValue(s.test, s.err)
	g := s.gain
	v.Metric = &g
	n := t.AddNode(parent, isLeft, v)
	t.AddNode(n, true, tree.LeafValue(s.leftOut, s.leftErr))
	t.AddNode(n, false, tree.LeafValue(s.rightOut, s.rightErr))
}

// distEntropy is the Shannon entropy of a count vector in bits.
func distEntropy(dist []int) float64 {
	total := sumDist(dist)
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, count := range dist {
		if count > 0 {
			p := float64(count) / float64(total)
			h -= p * math.Log2(p)
		}
	}

	return h
}
