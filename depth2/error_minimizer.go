package depth2

import (
	"fmt"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/errorfn"
	"github.com/dl85go/dl85/tree"
)

// side is the resolved depth-1 half of a depth-2 tree: either a leaf or
// a second split with two grandchild leaves.
type side struct {
	err    float64
	isLeaf bool
	out    int // leaf prediction when isLeaf

	test              int // second attribute when !isLeaf
	leftErr, rightErr float64
	leftOut, rightOut int
}

// ErrorMinimizer returns the depth <= 2 subtree with minimum total
// error. Ties are broken by strict less-than updates, so
// the first candidate in pool order wins.
type ErrorMinimizer struct {
	errFn errorfn.ErrorFn
}

// NewErrorMinimizer builds an ErrorMinimizer over errFn. Panics on a nil
// errFn: the capability is required, not optional.
func NewErrorMinimizer(errFn errorfn.ErrorFn) *ErrorMinimizer {
	if errFn == nil {
		panic("depth2: nil error function")
	}

	return &ErrorMinimizer{errFn: errFn}
}

// Fit solves the depth-1 or depth-2 problem exactly on the current
// cover. Returns core.ErrEmptyCandidates when no attribute meets
// minSupport on both branches, core.ErrInvalidDepth for depth outside
// {1, 2}.
func (m *ErrorMinimizer) Fit(minSupport, depth int, c *cover.Cover, candidates []core.Item) (*tree.Tree, error) {
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

func (m *ErrorMinimizer) depthOne(minSupport int, c *cover.Cover, candidates []core.Item) (*tree.Tree, error) {
	attrs := validAttributes(c, minSupport, candidates)
	if len(attrs) == 0 {
		return nil, core.ErrEmptyCandidates
	}

	parent := c.LabelsCount()
	bestErr := core.Infinity
	bestAttr := -1
	var bestLeft, bestRight side
	for _, a := range attrs {
		c.BranchOn(core.MakeItem(a, 0))
		leftDist := c.LabelsCount()
		c.Backtrack()
		rightDist := subDist(parent, leftDist)

		le, lo := m.errFn.Compute(leftDist)
		re, ro := m.errFn.Compute(rightDist)
		if le+re < bestErr {
			bestErr = le + re
			bestAttr = a
			bestLeft = side{err: le, isLeaf: true, out: lo}
			bestRight = side{err: re, isLeaf: true, out: ro}
		}
	}

	return assemble(bestAttr, bestErr, bestLeft, bestRight), nil
}

func (m *ErrorMinimizer) depthTwo(minSupport int, c *cover.Cover, candidates []core.Item) (*tree.Tree, error) {
	attrs := validAttributes(c, minSupport, candidates)
	if len(attrs) == 0 {
		return nil, core.ErrEmptyCandidates
	}
	if len(attrs) < 2 {
		return m.depthOne(minSupport, c, candidates)
	}

	matrix := buildPairMatrix(c, attrs)
	parent := c.LabelsCount()
	support := sumDist(parent)

	bestErr := core.Infinity
	bestAttr := -1
	var bestLeft, bestRight side
	for i := range attrs {
		rightDist := matrix.at(i, i)
		rightSup := sumDist(rightDist)
		leftSup := support - rightSup
		if leftSup < minSupport || rightSup < minSupport {
			continue
		}
		leftDist := subDist(parent, rightDist)

		left := m.bestSide(minSupport, attrs, leftDist, leftSup, bestErr, func(j int) ([]int, []int) {
			gRight := subDist(matrix.at(j, j), matrix.at(i, j))
			gLeft := subDist(leftDist, gRight)

			return gLeft, gRight
		}, i)
		if left.err >= bestErr {
			continue
		}

		right := m.bestSide(minSupport, attrs, rightDist, rightSup, bestErr-left.err, func(j int) ([]int, []int) {
			gRight := matrix.at(i, j)
			gLeft := subDist(rightDist, gRight)

			return gLeft, gRight
		}, i)

		if total := left.err + right.err; total < bestErr {
			bestErr = total
			bestAttr = attrs[i]
			bestLeft, bestRight = left, right
			if bestErr <= 0 {
				break
			}
		}
	}

	if bestAttr < 0 {
		return m.depthOne(minSupport, c, candidates)
	}

	return assemble(bestAttr, bestErr, bestLeft, bestRight), nil
}

// bestSide finds the optimal depth-1 subtree for one half of the split:
// the leaf, or the best second attribute j whose grandchildren both keep
// minSupport. budget enables early-termination skips: any partial sum
// already at or above it cannot improve
// the tree under construction.
func (m *ErrorMinimizer) bestSide(minSupport int, attrs []int, dist []int, sup int, budget float64, grandchildren func(j int) ([]int, []int), skip int) side {
	leafErr, leafOut := m.errFn.Compute(dist)
	best := side{err: leafErr, isLeaf: true, out: leafOut}
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
		re, ro := m.errFn.Compute(gRight)
		if re >= best.err || re >= budget {
			continue
		}
		le, lo := m.errFn.Compute(gLeft)
		if le+re >= best.err {
			continue
		}
		best = side{
			err:      le + re,
			test:     attrs[j],
			leftErr:  le,
			rightErr: re,
			leftOut:  lo,
			rightOut: ro,
		}
		if best.err <= 0 {
			break
		}
	}

	return best
}

// assemble materializes the winning (root, left side, right side) triple
// as a tree arena: root + two children + up to four grandchild leaves.
func assemble(rootAttr int, rootErr float64, left, right side) *tree.Tree {
	t := tree.New()
	root := t.AddRoot(tree.TestValue(rootAttr, rootErr))
	attach(t, root, true, left)
	attach(t, root, false, right)

	return t
}

func attach(t *tree.Tree, parent int, isLeft bool, s side) {
	if s.isLeaf {
		t.AddNode(parent, isLeft, tree.LeafValue(s.out, s.err))

		return
	}
	n := t.AddNode(parent, isLeft, tree.TestValue(s.test, s.err))
	t.AddNode(n, true, tree.LeafValue(s.leftOut, s.leftErr))
	t.AddNode(n, false, tree.LeafValue(s.rightOut, s.rightErr))
}
