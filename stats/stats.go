package stats

// Statistics is the per-run counter block for one engine.
// The engine mutates it in place; it is safe to read between rounds and
// serializes to JSON for the CLI.
type Statistics struct {
	// CacheSize is the number of distinct subproblems memoized at the
	// end of the last round.
	CacheSize int `json:"cache_size"`
	// CacheHits counts cache lookups answered without re-seeding.
	CacheHits int `json:"cache_hits"`
	// Restarts counts completed partial-fit rounds.
	Restarts int `json:"restarts"`
	// SiblingSkips counts second branches skipped by the sibling-pruning
	// gate.
	SiblingSkips int `json:"sibling_skips"`
	// NodesExpanded counts search-tree nodes entered across all rounds.
	NodesExpanded int `json:"nodes_expanded"`
	// TreeError is the best tree's error after the last round.
	TreeError float64 `json:"tree_error"`
	// DurationSeconds is wall-clock time spent searching.
	DurationSeconds float64 `json:"duration_seconds"`
	// NumAttributes is the dataset's feature count.
	NumAttributes int `json:"num_attributes"`
	// NumSamples is the dataset's sample count.
	NumSamples int `json:"num_samples"`
}
