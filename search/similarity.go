package search

import (
	"math"

	"github.com/dl85go/dl85/cover"
)

// simSlot is one remembered (cover snapshot, proven error) pair.
type simSlot struct {
	words []uint64
	err   float64
	valid bool
}

// similarityCover keeps up to two explored sibling covers per node and
// derives lower bounds from them: removing a sample from a cover can
// lower its subtree error by at most one, so error(saved) - |saved \ cur|
// bounds the current subproblem from below. Each search node owns one
// store for its children.
type similarityCover struct {
	slots [2]simSlot
}

// update remembers the just-solved cover with its proven error. With
// both slots occupied, the slot closer to the current cover is replaced,
// keeping the pair diverse. Infinite errors are ignored: a node whose
// error is unknown bounds nothing.
func (s *similarityCover) update(c *cover.Cover, err float64) {
	if math.IsInf(err, 1) {
		return
	}
	snap := simSlot{words: c.Sparse(), err: err, valid: true}
	for i := range s.slots {
		if !s.slots[i].valid {
			s.slots[i] = snap

			return
		}
	}
	in0, out0 := c.Difference(s.slots[0].words)
	in1, out1 := c.Difference(s.slots[1].words)
	if in0+out0 < in1+out1 {
		s.slots[0] = snap
	} else {
		s.slots[1] = snap
	}
}

// bound returns the best similarity-derived lower bound for the current
// cover, or 0 when nothing useful is stored.
func (s *similarityCover) bound(c *cover.Cover) float64 {
	best := 0.0
	for i := range s.slots {
		if !s.slots[i].valid {
			continue
		}
		_, out := c.Difference(s.slots[i].words)
		if v := s.slots[i].err - float64(out); v > best {
			best = v
		}
	}

	return best
}
