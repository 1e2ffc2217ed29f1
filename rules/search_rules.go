package rules

import "github.com/dl85go/dl85/core"

// DiscrepancyRule bounds the cumulative sum of ancestor sibling ranks
// along the current path (Limited Discrepancy Search). Its
// budget grows across partial_fit rounds per the configured StepStrategy.
type DiscrepancyRule struct {
	relaxable
}

// NewDiscrepancyRule builds a DiscrepancyRule with hard limit maxDiscrepancy
// and the given relaxation schedule.
func NewDiscrepancyRule(maxDiscrepancy int, step StepStrategy) *DiscrepancyRule {
	r := &DiscrepancyRule{}
	r.base = base{kind: KindDiscrepancy, priority: 6, desc: "bound cumulative sibling rank (LDS)", state: core.RuleActive}
	r.step = step
	r.hardLimit = float64(maxDiscrepancy)

	return r
}

// SetHardLimit replaces the rule's hard limit with the true maximum
// discrepancy, computed by the engine from the root candidate count once
// it is known.
func (r *DiscrepancyRule) SetHardLimit(maxDiscrepancy int) {
	r.hardLimit = float64(maxDiscrepancy)
}

func (r *DiscrepancyRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() || float64(ctx.Discrepancy) <= r.budget {
		return continueResult
	}

	return Result{Stop: true, Reason: core.ReasonRuleReason, Value: ctx.LeafError, IsLeaf: true}
}

// TopKRule keeps only the first K candidates (by position) at a node,
// under increasing budgets across partial_fit rounds. The budget tracks
// the maximum admissible position (K-1), not a count, so it starts at 0
// and admits only the top-ranked candidate until relaxed. Position is the
// rank in the order the node iterates its candidates: with always_sort
// that is the node's own re-sorted order, otherwise the root ranking with
// the attributes filtered out at this node removed.
type TopKRule struct {
	relaxable
}

// NewTopKRule builds a TopKRule with hard limit k (final admissible
// window size) and the given relaxation schedule.
func NewTopKRule(k int, step StepStrategy) *TopKRule {
	r := &TopKRule{}
	r.base = base{kind: KindTopK, priority: 7, desc: "explore only the first K siblings", state: core.RuleActive}
	r.step = step
	r.hardLimit = float64(k - 1)

	return r
}

func (r *TopKRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() || float64(ctx.Position) <= r.budget {
		return continueResult
	}

	return Result{Stop: true, Reason: core.ReasonRuleReason, Value: ctx.LeafError, IsLeaf: true}
}

// DecreasingTopKRule is TopKRule run in reverse: it starts by admitting
// every candidate and tightens the admitted window as relax() is called,
// for search strategies that prefer to narrow from a full pass.
type DecreasingTopKRule struct {
	relaxable
	initialK int
}

// NewDecreasingTopKRule builds a DecreasingTopKRule that starts at
// initialK and shrinks towards floorK following step.
func NewDecreasingTopKRule(initialK, floorK int, step StepStrategy) *DecreasingTopKRule {
	r := &DecreasingTopKRule{initialK: initialK}
	r.base = base{kind: KindTopK, priority: 7, desc: "explore a shrinking window of top siblings", state: core.RuleActive}
	r.step = step
	r.hardLimit = float64(initialK - floorK)

	return r
}

func (r *DecreasingTopKRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() {
		return continueResult
	}
	window := r.initialK - int(r.budget)
	if ctx.Position < window {
		return continueResult
	}

	return Result{Stop: true, Reason: core.ReasonRuleReason, Value: ctx.LeafError, IsLeaf: true}
}

// GainRule prunes a candidate whose cumulative gain gap along the path
// already exceeds the budget currently in force. Step values are scaled
// by epsilon to convert the integer schedule into gain units; the engine
// replaces epsilon after the first round with the smallest positive gap
// it observed. RuleContext.GainGap only grows when the engine re-sorts at
// every node (always_sort) with a heuristic that implements
// heuristic.Scored; in every other configuration the gap stays 0 and the
// rule never fires.
type GainRule struct {
	relaxable
	epsilon float64
}

// NewGainRule builds a GainRule with hard limit maxGainGap, step scale
// epsilon (<= 0 defaults to 1 until the engine bootstraps it), and the
// given relaxation schedule. maxGainGap uses the same units as
// RuleContext.GainGap.
func NewGainRule(maxGainGap, epsilon float64, step StepStrategy) *GainRule {
	r := &GainRule{epsilon: epsilon}
	if r.epsilon <= 0 {
		r.epsilon = 1
	}
	r.base = base{kind: KindGain, priority: 8, desc: "bound cumulative gain gap along the path", state: core.RuleActive}
	r.step = step
	r.hardLimit = maxGainGap

	return r
}

// SetEpsilon replaces the step scale. Ignores non-positive values.
func (r *GainRule) SetEpsilon(e float64) {
	if e > 0 {
		r.epsilon = e
	}
}

// Relax advances the budget by epsilon-scaled steps, deactivating at the
// hard limit like every relaxable rule.
func (r *GainRule) Relax() {
	if r.state == core.RuleDisabled {
		return
	}
	if r.budget >= r.hardLimit {
		r.state = core.RuleDisabled

		return
	}
	next := float64(r.step.Next()) * r.epsilon
	if next > r.hardLimit {
		next = r.hardLimit
	}
	r.budget = next
}

func (r *GainRule) Evaluate(ctx *core.RuleContext) Result {
	if !r.active() || ctx.GainGap <= r.budget {
		return continueResult
	}

	return Result{Stop: true, Reason: core.ReasonRuleReason, Value: ctx.LeafError, IsLeaf: true}
}
