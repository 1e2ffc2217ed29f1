package depth2

import (
	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/tree"
)

// Optimizer is the Depth2Tree capability consumed by the search
// engine. candidates restricts the attribute pool (nil means every
// attribute of the dataset); implementations never mutate it. Fit
// returns core.ErrEmptyCandidates when no attribute satisfies the
// support constraint on both sides.
type Optimizer interface {
	Fit(minSupport, depth int, c *cover.Cover, candidates []core.Item) (*tree.Tree, error)
}

// validAttributes filters the candidate pool down to attributes whose
// both branches keep at least minSupport samples.
func validAttributes(c *cover.Cover, minSupport int, candidates []core.Item) []int {
	support := c.Count()
	var pool []int
	if candidates == nil {
		pool = make([]int, c.NumAttributes())
		for a := range pool {
			pool[a] = a
		}
	} else {
		pool = make([]int, len(candidates))
		for i, it := range candidates {
			pool[i] = it.Attribute()
		}
	}

	out := pool[:0]
	for _, a := range pool {
		right := c.CountIfBranchOn(core.MakeItem(a, 1))
		left := support - right
		if left >= minSupport && right >= minSupport {
			out = append(out, a)
		}
	}

	return out
}

// pairMatrix holds M[i][j]: the label counts of samples matching both
// literal(attrs[i], 1) and literal(attrs[j], 1). M[i][i] is the
// distribution of literal(attrs[i], 1) alone; all four grandchild
// distributions of any (i, j) split derive from it by
// inclusion-exclusion.
type pairMatrix struct {
	attrs []int
	cells [][][]int
}

// buildPairMatrix computes the class-distribution matrix with nested
// reversible branchings: O(k^2) BranchOn/Backtrack pairs over the
// current cover, each O(active words).
func buildPairMatrix(c *cover.Cover, attrs []int) *pairMatrix {
	k := len(attrs)
	m := &pairMatrix{attrs: attrs, cells: make([][][]int, k)}
	for i := range m.cells {
		m.cells[i] = make([][]int, k)
	}
	for i := 0; i < k; i++ {
		c.BranchOn(core.MakeItem(attrs[i], 1))
		m.cells[i][i] = c.LabelsCount()
		for j := i + 1; j < k; j++ {
			c.BranchOn(core.MakeItem(attrs[j], 1))
			dist := c.LabelsCount()
			m.cells[i][j] = dist
			m.cells[j][i] = dist
			c.Backtrack()
		}
		c.Backtrack()
	}

	return m
}

func (m *pairMatrix) at(i, j int) []int { return m.cells[i][j] }

// subDist returns a - b element-wise; the inclusion-exclusion step that
// derives a sibling distribution from its parent and the other sibling.
func subDist(a, b []int) []int {
	out := make([]int, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}

	return out
}

func sumDist(d []int) int {
	total := 0
	for _, v := range d {
		total += v
	}

	return total
}
