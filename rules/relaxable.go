package rules

import "github.com/dl85go/dl85/core"

// relaxable is the shared Relax()/Reset()/Delay() machinery for rules
// whose pruning strength is governed by a budget that grows across
// partial_fit rounds. budget and
// hardLimit share units with whatever the concrete rule compares against
// (an int count for Discrepancy/TopK, a float64 threshold for Gain).
type relaxable struct {
	base
	step      StepStrategy
	hardLimit float64
	budget    float64
}

func (r *relaxable) IsRelaxable() bool { return true }

// Delay reports the current budget truncated to int. For GainRule, whose
// budget is a float threshold, the fractional part is dropped; no rule
// exposes the raw float budget.
func (r *relaxable) Delay() int { return int(r.budget) }

// Relax advances the budget by one step, or deactivates the rule once
// the hard limit has already been reached — a deactivated relaxable rule
// is no longer a reason to retry, since the pruning it would have done
// is now unconditional.
func (r *relaxable) Relax() {
	if r.state == core.RuleDisabled {
		return
	}
	if r.budget >= r.hardLimit {
		r.state = core.RuleDisabled

		return
	}
	next := float64(r.step.Next())
	if next > r.hardLimit {
		next = r.hardLimit
	}
	r.budget = next
}

func (r *relaxable) Reset() {
	r.state = core.RuleActive
	r.budget = 0
}
