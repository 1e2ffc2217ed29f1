// Package greedy implements LGDT, a greedy decision-tree learner that
// shares the cover, error-function, and depth-2 capabilities with the
// exact DL85 engine. At each node it fits an exact depth-2 subtree and
// keeps only its root split, recursing until the depth budget runs out;
// the result is a fast baseline, not an optimality guarantee.
package greedy
