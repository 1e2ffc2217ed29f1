package rules

import (
	"math"

	"github.com/dl85go/dl85/core"
)

// pureEpsilon is the tolerance PureNodeRule uses for "error ≈ 0".
const pureEpsilon = 1e-9

// MaxDepthRule stops descent once the path has reached the configured
// max depth, forcing a leaf at the node's current leaf error.
type MaxDepthRule struct {
	base
	maxDepth int
}

func NewMaxDepthRule(maxDepth int) *MaxDepthRule {
	return &MaxDepthRule{
		base:     base{kind: KindMaxDepth, priority: 0, desc: "stop at configured max_depth", state: core.RuleActive},
		maxDepth: maxDepth,
	}
}

func (r *MaxDepthRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() || ctx.Depth < r.maxDepth {
		return continueResult
	}

	return Result{Stop: true, Reason: core.ReasonMaxDepthReached, Value: ctx.LeafError, IsOptimal: true, IsLeaf: true}
}

// MinSupportRule stops descent when the node's support falls below the
// configured minimum, forcing a leaf.
type MinSupportRule struct {
	base
	minSupport int
}

func NewMinSupportRule(minSupport int) *MinSupportRule {
	return &MinSupportRule{
		base:       base{kind: KindMinSupport, priority: 1, desc: "stop when support < min_support", state: core.RuleActive},
		minSupport: minSupport,
	}
}

func (r *MinSupportRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() || ctx.Support >= r.minSupport {
		return continueResult
	}

	return Result{Stop: true, Reason: core.ReasonNotEnoughSupport, Value: ctx.LeafError, IsOptimal: true, IsLeaf: true}
}

// PureNodeRule stops descent when the node's leaf error is (numerically)
// zero: no split can do better than a pure leaf.
type PureNodeRule struct {
	base
}

func NewPureNodeRule() *PureNodeRule {
	return &PureNodeRule{base: base{kind: KindPureNode, priority: 2, desc: "stop on a pure node", state: core.RuleActive}}
}

func (r *PureNodeRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() || ctx.LeafError > pureEpsilon {
		return continueResult
	}

	return Result{Stop: true, Reason: core.ReasonPureNode, Value: ctx.LeafError, IsOptimal: true, IsLeaf: true}
}

// UsableNodeRule stops descent when the node already carries a finite
// error proved under a finite stored bound. A node whose stored bound is
// infinite was pruned by a relaxable rule and must be re-expanded, so
// the rule lets it through.
type UsableNodeRule struct {
	base
}

func NewUsableNodeRule() *UsableNodeRule {
	return &UsableNodeRule{base: base{kind: KindUsableNode, priority: 3, desc: "reuse an already-proven node", state: core.RuleActive}}
}

func (r *UsableNodeRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() || math.IsInf(ctx.Error, 1) || math.IsInf(ctx.NodeUpperBound, 1) {
		return continueResult
	}

	return Result{Stop: true, Reason: core.ReasonDone, Value: ctx.Error, IsOptimal: true}
}

// LowerBoundRule prunes a node whose lower bound already meets or
// exceeds the upper bound in force, or whose upper bound is already
// (numerically) zero.
type LowerBoundRule struct {
	base
}

func NewLowerBoundRule() *LowerBoundRule {
	return &LowerBoundRule{base: base{kind: KindLowerBound, priority: 4, desc: "prune when upper_bound <= lower_bound", state: core.RuleActive}}
}

func (r *LowerBoundRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() {
		return continueResult
	}
	if ctx.UpperBound <= ctx.LowerBound || ctx.UpperBound <= pureEpsilon {
		return Result{Stop: true, Reason: core.ReasonLowerBoundConstrained, Value: ctx.LowerBound}
	}

	return continueResult
}

// PurityRule prunes a node whose proportion of correctly-classified
// samples already meets a configured purity threshold. It is relaxable:
// relaxing deactivates it immediately, since purity carries no step
// schedule (min_purity and epsilon only).
type PurityRule struct {
	relaxable
	minPurity float64
	epsilon   float64
}

func NewPurityRule(minPurity, epsilon float64) *PurityRule {
	r := &PurityRule{minPurity: minPurity, epsilon: epsilon}
	r.base = base{kind: KindPurity, priority: 5, desc: "prune once purity exceeds threshold", state: core.RuleActive}
	r.hardLimit = 0 // already at the hard limit: one Relax() call disables it

	return r
}

func (r *PurityRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() || ctx.Support == 0 {
		return continueResult
	}
	purity := 1 - ctx.Error/float64(ctx.Support)
	if purity+r.epsilon >= r.minPurity {
		return Result{Stop: true, Reason: core.ReasonRuleReason, Value: ctx.LeafError, IsLeaf: true}
	}

	return continueResult
}
