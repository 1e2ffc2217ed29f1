// Package cover implements the reversible sparse bitset that tracks the
// current training sample subset as the search engine branches deeper
// into the decision tree.
//
// A Cover starts as the full sample set. BranchOn intersects it with an
// attribute bitset (or its complement) and pushes exactly one save-point;
// Backtrack pops exactly one save-point and restores every word it
// touched, in LIFO order with the recursion — the same discipline
// tsp.bbEngine uses for its visited/path arrays, generalized here to
// words instead of booleans so the restore cost is proportional to what
// actually changed, not to N.
package cover
