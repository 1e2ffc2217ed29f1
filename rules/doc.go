// Package rules implements the pruning/stopping framework the search
// engine consults at every node and every candidate position. Rules are
// small, independently testable policies; a Manager holds a
// priority-sorted collection of them and short-circuits at the first one
// that fires, collapsing a chain of checks into one pass/fail outcome.
//
// Two Manager instances are kept by the search engine: one for node
// rules (MaxDepth, MinSupport, PureNode, UsableNode, LowerBound, Purity)
// and one for search rules (Discrepancy, TopK, Gain). TimeLimit and
// SimilarityLB are evaluated inline by the engine as singletons, not
// through a Manager.
package rules
