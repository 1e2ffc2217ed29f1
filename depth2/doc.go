// Package depth2 implements the exact terminal solvers the search
// engine calls once the remaining depth drops to 2 or less. Instead of
// recursing, a solver enumerates candidate attribute
// pairs against a precomputed class-distribution matrix and assembles
// the provably optimal subtree directly.
//
// Two solvers are provided: ErrorMinimizer (minimize node error, the
// default) and InfoGainMaximizer (maximize information gain). Both share
// the candidate filter and pair-matrix precomputation.
package depth2
