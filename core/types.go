package core

import "math"

// Infinity is the sentinel "not yet known / unbounded" error value used
// throughout the cache and rule framework. Go's math.Inf(1) round-trips
// through comparisons (`>`, `<`) the way the search needs, so no
// separate "unset" flag is needed alongside an error field.
var Infinity = math.Inf(1)

// RuleContext is the transient record handed to every Rule.Evaluate
// call. It is rebuilt per node/candidate by the
// search engine and never retained by rules between calls.
type RuleContext struct {
	// Depth is the current recursion depth (root = 0).
	Depth int
	// LastItem is the literal that was just branched on to reach this
	// position (NoItem at the root).
	LastItem Item
	// Support is |cover| at this node.
	Support int
	// Position is this candidate's 0-indexed rank among its sorted siblings.
	Position int
	// Discrepancy is the cumulative sum of ancestor positions along the path.
	Discrepancy int
	// GainGap is the cumulative (best_score - chosen_score) along the path.
	GainGap float64
	// UpperBound is the subtree error budget currently in force.
	UpperBound float64
	// NodeUpperBound is the bound stored on the node's cache entry (the
	// bound under which its Error was proved). Infinity marks a node a
	// relaxable rule pruned inside: it must be re-expanded, never reused.
	NodeUpperBound float64
	// LowerBound is the best known lower bound for this node's subtree error.
	LowerBound float64
	// Error is the best proven subtree error for this node, or Infinity.
	Error float64
	// LeafError is the error if this node were a leaf.
	LeafError float64
}

// SearchResult is returned by one round of the search.
type SearchResult struct {
	Error          float64
	HasIntersected bool
	Reason         Reason
}
