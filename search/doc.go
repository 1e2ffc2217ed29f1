// Package search drives the DL85 branch-and-bound exploration: a
// memoized depth-first search over binary decision
// trees, arbitrated by node and search rule managers, with reversible
// cover branching, similarity-based lower-bound lifting, dynamic child
// ordering, and a depth-2 terminal specialization.
//
// An Engine is assembled from its capabilities (cache, error function,
// heuristic, depth-2 solver) via Builder, which fails fast when a
// required capability is missing. Fit runs rounds of PartialFit until no
// relaxable rule wants another pass or the time budget runs out; the
// best tree found so far is always available via Tree.
package search
