package greedy

import (
	"fmt"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/depth2"
	"github.com/dl85go/dl85/errorfn"
	"github.com/dl85go/dl85/tree"
)

// LGDT is the greedy learner. Construct with New; the zero value is not
// usable.
type LGDT struct {
	minSupport int
	maxDepth   int
	d2         depth2.Optimizer
	errFn      *errorfn.Wrapper
}

// New builds an LGDT learner from the shared capabilities. Fails fast on
// a missing capability or invalid constraints, mirroring the engine
// builder's construction-time error taxonomy.
func New(minSupport, maxDepth int, d2 depth2.Optimizer, errFn *errorfn.Wrapper) (*LGDT, error) {
	if minSupport <= 0 {
		return nil, core.ErrInvalidMinSupport
	}
	if maxDepth <= 0 {
		return nil, fmt.Errorf("greedy: %w: max_depth %d", core.ErrInvalidDepth, maxDepth)
	}
	if d2 == nil || errFn == nil {
		return nil, fmt.Errorf("greedy: %w", core.ErrMissingCapability)
	}

	return &LGDT{minSupport: minSupport, maxDepth: maxDepth, d2: d2, errFn: errFn}, nil
}

// Fit grows a tree on the given cover. The cover is restored to its
// incoming state before returning.
func (l *LGDT) Fit(c *cover.Cover) (*tree.Tree, error) {
	t := tree.New()
	l.grow(c, t, -1, false, l.maxDepth)

	return t, nil
}

// grow emits the subtree for the current cover under the remaining depth
// budget. parent < 0 means the root slot.
func (l *LGDT) grow(c *cover.Cover, t *tree.Tree, parent int, isLeft bool, remaining int) float64 {
	if remaining <= 2 {
		sub, err := l.d2.Fit(l.minSupport, remaining, c, nil)
		if err != nil {
			// EmptyCandidates and any other solver refusal both mean
			// "no admissible split here": close the branch as a leaf.
			return l.leaf(c, t, parent, isLeft)
		}

		return graft(t, parent, isLeft, sub, 0)
	}

	// Pick the split an exact depth-2 pass would make, keep only its
	// root, and recurse greedily on each side.
	probe, err := l.d2.Fit(l.minSupport, 2, c, nil)
	if err != nil || probe.Root().Value.Test == nil {
		return l.leaf(c, t, parent, isLeft)
	}
	attr := *probe.Root().Value.Test

	self := addChild(t, parent, isLeft, tree.TestValue(attr, 0))

	c.BranchOn(core.MakeItem(attr, 0))
	leftErr := l.grow(c, t, self, true, remaining-1)
	c.Backtrack()

	c.BranchOn(core.MakeItem(attr, 1))
	rightErr := l.grow(c, t, self, false, remaining-1)
	c.Backtrack()

	t.Node(self).Value.Error = leftErr + rightErr

	return leftErr + rightErr
}

func (l *LGDT) leaf(c *cover.Cover, t *tree.Tree, parent int, isLeft bool) float64 {
	err, out := l.errFn.Leaf(c)
	addChild(t, parent, isLeft, tree.LeafValue(out, err))

	return err
}

func addChild(t *tree.Tree, parent int, isLeft bool, v tree.NodeValue) int {
	if parent < 0 {
		return t.AddRoot(v)
	}

	return t.AddNode(parent, isLeft, v)
}

// graft copies a solver-produced subtree into the output arena and
// returns its root error.
func graft(t *tree.Tree, parent int, isLeft bool, sub *tree.Tree, subIdx int) float64 {
	n := sub.Node(subIdx)
	self := addChild(t, parent, isLeft, n.Value)
	if n.Left != tree.NoChild {
		graft(t, self, true, sub, n.Left)
	}
	if n.Right != tree.NoChild {
		graft(t, self, false, sub, n.Right)
	}

	return n.Value.Error
}
