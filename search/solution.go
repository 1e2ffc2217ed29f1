package search

import (
	"math"

	"github.com/dl85go/dl85/cache"
	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/tree"
)

// buildSolutionTree materializes the cached optimum as an output tree
// by walking the trie from the root and following each node's chosen
// test. Leaves are detected by IsLeaf or by
// the absence of a decided test; a node whose children were never cached
// (interrupted round) or whose error is still unknown falls back to a
// leaf at its leaf error, so the tree is always well-formed: every
// internal node has two children and every path ends in a leaf.
func (e *Engine) buildSolutionTree() *tree.Tree {
	t := tree.New()
	e.emitSolution(t, -1, false, nil, e.cache.Root())

	return t
}

// emitSolution appends the tree node for en (as root when parent < 0)
// and recurses into its cached children when it is a decided split.
func (e *Engine) emitSolution(t *tree.Tree, parent int, isLeft bool, path []core.Item, en *cache.Entry) {
	leftIdx, rightIdx, internal := e.solutionChildren(path, en)
	v := entryValue(en, internal)

	var self int
	if parent < 0 {
		self = t.AddRoot(v)
	} else {
		self = t.AddNode(parent, isLeft, v)
	}
	if !internal {
		return
	}

	leftPath := append(path, core.MakeItem(en.Test, 0))
	e.emitSolution(t, self, true, leftPath, e.cache.Node(leftIdx))
	rightPath := append(path, core.MakeItem(en.Test, 1))
	e.emitSolution(t, self, false, rightPath, e.cache.Node(rightIdx))
}

// solutionChildren resolves both child entries of a split node; internal
// is false when the node is a leaf or either child is missing.
func (e *Engine) solutionChildren(path []core.Item, en *cache.Entry) (left, right cache.Index, internal bool) {
	if en.IsLeaf || en.Test == cache.Unset {
		return 0, 0, false
	}
	left, okL := e.cache.Lookup(append(path, core.MakeItem(en.Test, 0)))
	if !okL {
		return 0, 0, false
	}
	right, okR := e.cache.Lookup(append(path, core.MakeItem(en.Test, 1)))
	if !okR {
		return 0, 0, false
	}

	return left, right, true
}

func entryValue(en *cache.Entry, internal bool) tree.NodeValue {
	err := en.Error
	if math.IsInf(err, 1) {
		err = en.LeafError
	}
	if !internal {
		return tree.LeafValue(en.Out, err)
	}

	return tree.TestValue(en.Test, err)
}
