// Package dl85 is an optimal binary decision-tree learner for Go.
//
// 🚀 What is dl85?
//
//	A single-threaded, cache-driven branch-and-bound engine that, given a
//	dataset of 0/1 features and small integer labels, returns a
//	depth-bounded decision tree minimizing a pluggable node-error
//	function (misclassification count by default), under minimum-support
//	and wall-clock constraints.
//
// ✨ Why choose dl85?
//
//   - Exact              — proves optimality, not just a greedy guess
//   - Anytime            — timeouts and rule budgets still yield the best tree so far
//   - Relaxable          — restart, LDS, top-k, and gain-gap search strategies
//   - Composable         — cache, heuristic, error function, and depth-2 solver are capabilities
//
// Everything is organized under focused subpackages:
//
//	core/      — items (packed literals), enums, rule context, sentinel errors
//	dataset/   — static per-attribute/per-label bitsets + text/CSV readers
//	cover/     — the reversible sparse bitset with a LIFO save/restore trail
//	cache/     — the literal-set trie memoizing per-subproblem bounds
//	rules/     — the prioritized, relaxable pruning/stopping framework
//	heuristic/ — candidate ordering (gini, information gain, entropy, memoized)
//	errorfn/   — node-error capabilities (misclassification, custom funcs)
//	depth2/    — exact terminal solvers for remaining depth <= 2
//	search/    — the DL85 engine: builder, recursion, similarity bounds
//	greedy/    — LGDT, a greedy baseline sharing the same capabilities
//	tree/      — the output arena with a stable JSON shape
//	stats/     — per-run counters
//	config/    — functional options + YAML loading
//	cmd/dl85/  — the command-line front end
//
// Quick example:
//
//	cfg, _ := config.New(config.WithMaxDepth(3), config.WithMinSupport(5))
//	engine, _ := search.Default(cfg)
//	res := engine.Fit(cover.New(ds))
//	fmt.Println(res.Error, engine.Tree().Depth())
//
// The search follows the DL8.5 family of algorithms: depth-first
// exploration over itemsets, a trie cache keyed by the sorted literal
// path, sibling-bound pruning, an inlined optimal depth-2 solver, and
// optional similarity-derived lower bounds.
package dl85
