package rules

import "github.com/dl85go/dl85/core"

// Kind tags a Rule with the variant it implements.
type Kind int

const (
	KindMaxDepth Kind = iota
	KindMinSupport
	KindPureNode
	KindUsableNode
	KindLowerBound
	KindSimilarityLB
	KindTimeLimit
	KindDiscrepancy
	KindTopK
	KindGain
	KindPurity
)

func (k Kind) String() string {
	names := [...]string{
		"MaxDepth", "MinSupport", "PureNode", "UsableNode", "LowerBound",
		"SimilarityLB", "TimeLimit", "Discrepancy", "TopK", "Gain", "Purity",
	}
	if int(k) < len(names) {
		return names[k]
	}

	return "Kind(?)"
}

// Result is what Rule.Evaluate returns: whether to stop descending, why,
// and (when stopping) the error value the search engine should use and
// whether that value is a proven-optimal leaf.
type Result struct {
	Stop      bool
	Reason    core.Reason
	Value     float64 // meaningful only if Stop
	IsOptimal bool     // meaningful only if Stop
	IsLeaf    bool     // meaningful only if Stop
}

// continueResult is the shared "nothing fired" return value.
var continueResult = Result{Reason: core.ReasonNone}

// Rule is the shared contract every pruning/stopping policy implements.
type Rule interface {
	Kind() Kind
	Priority() int
	Description() string
	State() core.RuleState
	IsRelaxable() bool
	Evaluate(ctx *core.RuleContext) Result

	Activate()
	Deactivate()
	Reset()
	// Relax advances a relaxable rule's budget by one step, or
	// deactivates it once its hard limit has been reached. No-op on a
	// non-relaxable rule.
	Relax()
	// Delay reports the current relaxation budget, truncated to int
	// (0 for non-relaxable rules), for introspection/debugging.
	Delay() int
}

// base provides the bookkeeping shared by every rule: priority, name,
// and lifecycle state. Concrete rules embed it and implement Evaluate.
type base struct {
	kind     Kind
	priority int
	desc     string
	state    core.RuleState
}

func (b *base) Kind() Kind               { return b.kind }
func (b *base) Priority() int            { return b.priority }
func (b *base) Description() string      { return b.desc }
func (b *base) State() core.RuleState    { return b.state }
func (b *base) Activate()                { b.state = core.RuleActive }
func (b *base) Deactivate()              { b.state = core.RuleDisabled }
func (b *base) Reset()                   { b.state = core.RuleActive }
func (b *base) IsRelaxable() bool        { return false }
func (b *base) Relax()                   {}
func (b *base) Delay() int               { return 0 }
func (b *base) active() bool             { return b.state == core.RuleActive }
