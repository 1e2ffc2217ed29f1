package core

// NodeDataType selects the shape the ErrorWrapper capability consumes:
// pre-aggregated class-support counts, or the raw list of sample indices
// covered by the node.
type NodeDataType int

const (
	// ClassesSupport feeds the error function a per-label count vector.
	ClassesSupport NodeDataType = iota
	// Tids feeds the error function the raw sample-index list.
	Tids
)

func (t NodeDataType) String() string {
	switch t {
	case ClassesSupport:
		return "ClassesSupport"
	case Tids:
		return "Tids"
	default:
		return "NodeDataType(?)"
	}
}

// Specialization toggles the depth-2 terminal shortcut.
type Specialization int

const (
	SpecializationDisabled Specialization = iota
	SpecializationEnabled
)

// LowerBoundPolicy toggles similarity-based lower-bound lifting.
type LowerBoundPolicy int

const (
	LowerBoundDisabled LowerBoundPolicy = iota
	LowerBoundSimilarity
)

// BranchingPolicy selects how the two children of a candidate attribute
// are ordered during recursion.
type BranchingPolicy int

const (
	// BranchingDefault always explores value 0 before value 1.
	BranchingDefault BranchingPolicy = iota
	// BranchingDynamic explores the branch with the smaller lower bound first.
	BranchingDynamic
)

// CacheInitStrategy is an advisory preallocation hint carried in the
// configuration. The cache does not read it (only the size hint
// preallocates its node index), and it never changes search semantics.
type CacheInitStrategy int

const (
	CacheInitDefault CacheInitStrategy = iota
	CacheInitUserAllocated
	CacheInitDynamicAllocation
)

// Reason enumerates why a search call returned: either it exhausted the
// search space under the current rule budgets (Done), or one of the
// stopping conditions fired.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDone
	ReasonTimeLimitReached
	ReasonLowerBoundConstrained
	ReasonMaxDepthReached
	ReasonNotEnoughSupport
	ReasonNoCandidates
	ReasonPureNode
	ReasonFromSpecializedAlgorithm
	ReasonRuleReason
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonDone:
		return "Done"
	case ReasonTimeLimitReached:
		return "TimeLimitReached"
	case ReasonLowerBoundConstrained:
		return "LowerBoundConstrained"
	case ReasonMaxDepthReached:
		return "MaxDepthReached"
	case ReasonNotEnoughSupport:
		return "NotEnoughSupport"
	case ReasonNoCandidates:
		return "NoCandidates"
	case ReasonPureNode:
		return "PureNode"
	case ReasonFromSpecializedAlgorithm:
		return "FromSpecializedAlgorithm"
	case ReasonRuleReason:
		return "RuleReason"
	default:
		return "Reason(?)"
	}
}

// IsRelaxable reports whether this reason means "a relaxable rule pruned
// something; another partial_fit round may do better".
func (r Reason) IsRelaxable() bool {
	return r == ReasonRuleReason
}

// RuleState is the lifecycle of a single Rule.
type RuleState int

const (
	RuleActive RuleState = iota
	RuleDisabled
	RuleRelaxed
)

func (s RuleState) String() string {
	switch s {
	case RuleActive:
		return "Active"
	case RuleDisabled:
		return "Disabled"
	case RuleRelaxed:
		return "Relaxed"
	default:
		return "RuleState(?)"
	}
}
