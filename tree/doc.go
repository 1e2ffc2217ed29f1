// Package tree holds the output decision-tree representation: a flat
// arena of nodes where index 0 is the root and a child index of 0 means
// "no child" (no node ever points back at the root, so 0 doubles as the
// null sentinel). Trees are produced by the search engine, the depth-2
// optimizers, and the greedy learner, and serialize to a stable JSON
// shape.
package tree
