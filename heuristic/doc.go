// Package heuristic orders a node's candidate attributes before the
// search engine explores them.
// A good order lets pruning rules like GainRule and TopKRule discard the
// rest of the list earlier, so ordering is itself a search-space
// reduction, not just cosmetic sorting.
//
// Every Heuristic scores each candidate by the label-distribution split
// it would produce and sorts candidates accordingly; NoHeuristic leaves
// the incoming order untouched. Implementations never mutate the cover
// they are handed: each candidate is scored with a matching
// BranchOn/Backtrack pair.
package heuristic
