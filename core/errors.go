package core

import "errors"

// Sentinel errors shared across packages. Package-local conditions get
// their own sentinels in the package that detects them; these are the
// ones that cross package boundaries (surfaced by builder/config/search).
var (
	// ErrInvalidDepth is returned when a requested depth is <= 0, or (for
	// the depth-2 optimizer specifically) > 2.
	ErrInvalidDepth = errors.New("core: invalid depth")

	// ErrInvalidMinSupport is returned when min_support <= 0.
	ErrInvalidMinSupport = errors.New("core: min_support must be positive")

	// ErrMissingCapability is returned at construction time when a
	// required plug-in (cache, error function, heuristic, depth-2
	// optimizer) was not supplied to a builder.
	ErrMissingCapability = errors.New("core: required capability not supplied")

	// ErrEmptyCandidates signals that no attribute satisfies min-support
	// on both branches at a node; callers convert this to a leaf.
	ErrEmptyCandidates = errors.New("core: no candidate attribute meets min_support on both sides")
)
