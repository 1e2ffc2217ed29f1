package cover

import (
	"errors"
	"math/bits"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/dataset"
)

// ErrUnbalancedBacktrack is a programming error: Backtrack was called
// without a matching, still-open BranchOn. There is no recoverable path;
// callers must keep BranchOn/Backtrack strictly balanced.
var ErrUnbalancedBacktrack = errors.New("cover: backtrack without matching branch_on")

type mutation struct {
	word int
	old  uint64
}

type swap struct {
	posA, posB int
}

type savePoint struct {
	prevNbNonZero int
	muts          []mutation
	swaps         []swap
}

// Cover is a reversible sparse bitset over [0, N) sample indices, backed
// by a *dataset.StaticDataset for the attribute/label bitsets it
// intersects against. The zero value is not usable; construct with New.
type Cover struct {
	data         *dataset.StaticDataset
	nSamples     int
	nWords       int
	lastWordMask uint64

	words     []uint64
	nonZero   []int // permutation of [0, nWords)
	pos       []int // pos[wordIdx] = index of wordIdx within nonZero
	nbNonZero int

	trail []savePoint
}

// New builds a Cover containing every sample in data (the root cover).
func New(data *dataset.StaticDataset) *Cover {
	n := data.NumSamples()
	nWords := wordsNeeded(n)
	c := &Cover{
		data:         data,
		nSamples:     n,
		nWords:       nWords,
		lastWordMask: lastWordMask(n),
		words:        make([]uint64, nWords),
		nonZero:      make([]int, nWords),
		pos:          make([]int, nWords),
	}
	for i := 0; i < nWords; i++ {
		c.words[i] = ^uint64(0)
		c.nonZero[i] = i
		c.pos[i] = i
	}
	if nWords > 0 {
		c.words[nWords-1] &= c.lastWordMask
	}
	c.nbNonZero = nWords
	// A dataset with zero samples has no non-zero words at all.
	if n == 0 {
		c.nbNonZero = 0
	}

	return c
}

func wordsNeeded(n int) int {
	if n == 0 {
		return 0
	}

	return (n + 63) / 64
}

func lastWordMask(n int) uint64 {
	if n == 0 {
		return 0
	}
	r := uint(n % 64)
	if r == 0 {
		return ^uint64(0)
	}

	return (uint64(1) << r) - 1
}

// NumSamples returns N, the size of the dataset this cover is drawn from.
func (c *Cover) NumSamples() int { return c.nSamples }

// NumAttributes returns A, the dataset's feature count.
func (c *Cover) NumAttributes() int { return c.data.NumAttributes() }

// Count returns the number of samples currently in the cover.
// Complexity: O(active words).
func (c *Cover) Count() int {
	total := 0
	for i := 0; i < c.nbNonZero; i++ {
		total += bits.OnesCount64(c.words[c.nonZero[i]])
	}

	return total
}

// branchMask returns the attribute bitset word for index wi, or its
// complement restricted to live bits, depending on value.
func (c *Cover) branchMask(attrWords []uint64, wi int, value int) uint64 {
	if value == 1 {
		return attrWords[wi]
	}
	live := ^uint64(0)
	if wi == c.nWords-1 {
		live = c.lastWordMask
	}

	return ^attrWords[wi] & live
}

// CountIfBranchOn computes the support the cover would have after
// branching on item, without mutating any state. Used for candidate
// filtering and dynamic-branching lower-bound lookups.
// Complexity: O(active words).
func (c *Cover) CountIfBranchOn(item core.Item) int {
	attrWords := c.data.AttributeWords(item.Attribute())
	value := item.Value()
	total := 0
	for i := 0; i < c.nbNonZero; i++ {
		wi := c.nonZero[i]
		total += bits.OnesCount64(c.words[wi] & c.branchMask(attrWords, wi, value))
	}

	return total
}

// BranchOn intersects the cover with the literal item:
// with A[attribute(item)] when value(item)=1, with its complement
// otherwise. Pushes a save-point first. Returns the new support.
// Complexity: O(active words).
func (c *Cover) BranchOn(item core.Item) int {
	sp := savePoint{prevNbNonZero: c.nbNonZero}

	attrWords := c.data.AttributeWords(item.Attribute())
	value := item.Value()

	// Iterate a snapshot of the current active prefix: removals swap
	// entries into the tail, which must not be revisited in this pass.
	active := c.nbNonZero
	i := 0
	for i < active {
		wi := c.nonZero[i]
		newWord := c.words[wi] & c.branchMask(attrWords, wi, value)
		if newWord == c.words[wi] {
			i++
			continue
		}
		sp.muts = append(sp.muts, mutation{word: wi, old: c.words[wi]})
		c.words[wi] = newWord
		if newWord != 0 {
			i++
			continue
		}

		// Word died: swap it out of the active prefix.
		lastActive := active - 1
		lastIdx := c.nonZero[lastActive]
		if wi != lastIdx {
			c.nonZero[i], c.nonZero[lastActive] = c.nonZero[lastActive], c.nonZero[i]
			c.pos[wi] = lastActive
			c.pos[lastIdx] = i
			sp.swaps = append(sp.swaps, swap{posA: i, posB: lastActive})
		}
		active--
		// Do not advance i: the entry now at position i is unexamined.
	}
	c.nbNonZero = active
	c.trail = append(c.trail, sp)

	return c.Count()
}

// Backtrack pops one save-point and restores every word and non-zero
// index it touched, in LIFO order. Panics with ErrUnbalancedBacktrack if
// no BranchOn is outstanding: a trail underflow is a caller programming
// error, not a recoverable condition.
// Complexity: O(words touched by the matching BranchOn).
func (c *Cover) Backtrack() {
	if len(c.trail) == 0 {
		panic(ErrUnbalancedBacktrack)
	}
	n := len(c.trail) - 1
	sp := c.trail[n]
	c.trail = c.trail[:n]

	c.nbNonZero = sp.prevNbNonZero
	for i := len(sp.swaps) - 1; i >= 0; i-- {
		s := sp.swaps[i]
		idxA, idxB := c.nonZero[s.posA], c.nonZero[s.posB]
		c.nonZero[s.posA], c.nonZero[s.posB] = idxB, idxA
		c.pos[idxA], c.pos[idxB] = s.posB, s.posA
	}
	for i := len(sp.muts) - 1; i >= 0; i-- {
		m := sp.muts[i]
		c.words[m.word] = m.old
	}
}

// Depth returns how many unmatched BranchOn calls are outstanding.
func (c *Cover) Depth() int { return len(c.trail) }

// LabelsCount returns, for each label class, the popcount of the
// intersection of the cover with L[c].
// Complexity: O(active words * num labels).
func (c *Cover) LabelsCount() []int {
	nLabels := c.data.NumLabels()
	counts := make([]int, nLabels)
	for lbl := 0; lbl < nLabels; lbl++ {
		lw := c.data.LabelWords(lbl)
		total := 0
		for i := 0; i < c.nbNonZero; i++ {
			wi := c.nonZero[i]
			total += bits.OnesCount64(c.words[wi] & lw[wi])
		}
		counts[lbl] = total
	}

	return counts
}

// Sparse returns a read-only, O(nWords) dense clone of the live words,
// used for similarity bookkeeping.
func (c *Cover) Sparse() []uint64 {
	snap := make([]uint64, c.nWords)
	copy(snap, c.words)

	return snap
}

// ShallowSnapshot is an alias for Sparse, the name the DL8.5 literature
// uses for this snapshot.
func (c *Cover) ShallowSnapshot() []uint64 { return c.Sparse() }

// SymmetricDifference returns the popcount of (current cover XOR other),
// where other is a snapshot taken via Sparse/ShallowSnapshot. This is the
// primitive the similarity lower bound is
// built from.
func (c *Cover) SymmetricDifference(other []uint64) int {
	total := 0
	for i := 0; i < c.nWords; i++ {
		total += bits.OnesCount64(c.words[i] ^ other[i])
	}

	return total
}
