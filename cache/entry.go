package cache

import "github.com/dl85go/dl85/core"

// Unset marks Entry.Test / Entry.Out as "not yet decided".
const Unset = -1

// Entry is the memoized state of one search subproblem. Invariants
// (enforced by the search engine, not this
// package): LowerBound <= Error <= UpperBound whenever all three are
// finite; LeafError is monotone non-decreasing as the path from the root
// lengthens; once IsOptimal is true under a given UpperBound, revisits
// with a weaker bound are answered directly from this entry.
type Entry struct {
	// Item is the last literal added to reach this node (display only).
	Item core.Item
	// Test is the chosen splitting attribute, or Unset before a decision.
	Test int
	// Error is the best subtree error proved so far (core.Infinity until set).
	Error float64
	// UpperBound is the bound under which Error was proved.
	UpperBound float64
	// LowerBound is the best known lower bound on this subproblem's error.
	LowerBound float64
	// LeafError is the error if this node were a leaf.
	LeafError float64
	// Out is the majority label (leaf prediction), or Unset.
	Out int
	// Size is the sample count at this node.
	Size int
	// IsOptimal reports whether Error is provably optimal under UpperBound.
	IsOptimal bool
	// IsLeaf reports whether this node was concluded to be a leaf.
	IsLeaf bool
}

func newEntry() Entry {
	return Entry{
		Test:       Unset,
		Error:      core.Infinity,
		UpperBound: core.Infinity,
		LowerBound: 0,
		LeafError:  core.Infinity,
		Out:        Unset,
	}
}

// NeedsSeeding reports whether this entry still has its default
// (never-computed) leaf error, meaning the search engine must compute
// and install node statistics before using it.
func (e *Entry) NeedsSeeding() bool {
	return e.LeafError == core.Infinity
}

// Updater is a fluent mutator over a cache Entry. All setters return
// the receiver for chaining and
// write straight through to the entry owned by the trie node — there is
// no copy-on-write, matching the "entries never move" invariant.
type Updater struct {
	e *Entry
}

func newUpdater(e *Entry) *Updater { return &Updater{e: e} }

func (u *Updater) Error(v float64) *Updater      { u.e.Error = v; return u }
func (u *Updater) LeafError(v float64) *Updater  { u.e.LeafError = v; return u }
func (u *Updater) UpperBound(v float64) *Updater { u.e.UpperBound = v; return u }
func (u *Updater) LowerBound(v float64) *Updater { u.e.LowerBound = v; return u }
func (u *Updater) Test(attr int) *Updater        { u.e.Test = attr; return u }
func (u *Updater) Output(label int) *Updater     { u.e.Out = label; return u }
func (u *Updater) Size(n int) *Updater           { u.e.Size = n; return u }
func (u *Updater) Leaf(v bool) *Updater          { u.e.IsLeaf = v; return u }
func (u *Updater) Optimal(v bool) *Updater       { u.e.IsOptimal = v; return u }

// Metric is an alias for Error, for callers that think of the node
// value as a generic optimization metric.
func (u *Updater) Metric(v float64) *Updater { return u.Error(v) }

// Entry returns the underlying Entry for a final read after chaining.
func (u *Updater) Entry() *Entry { return u.e }
