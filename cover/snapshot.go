package cover

import "math/bits"

// Tids materializes the sample indices currently in the cover, in
// ascending order. Used when the error function is configured to consume
// raw indices rather than class counts.
// Complexity: O(words + |cover|).
func (c *Cover) Tids() []int {
	out := make([]int, 0, c.Count())
	for wi := 0; wi < c.nWords; wi++ {
		w := c.words[wi]
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*64+b)
			w &= w - 1
		}
	}

	return out
}

// Difference compares the current cover against a snapshot taken earlier
// via Sparse/ShallowSnapshot. in counts samples present now but absent
// from the snapshot; out counts samples in the snapshot no longer
// covered. out is the quantity the similarity lower bound subtracts:
// dropping a sample can reduce a subtree's error by at most one.
// Complexity: O(words).
func (c *Cover) Difference(snapshot []uint64) (in, out int) {
	for wi := 0; wi < c.nWords; wi++ {
		in += bits.OnesCount64(c.words[wi] &^ snapshot[wi])
		out += bits.OnesCount64(snapshot[wi] &^ c.words[wi])
	}

	return in, out
}
