package rules

import (
	"time"

	"github.com/dl85go/dl85/core"
)

// TimeLimitRule stops the whole search once a wall-clock deadline has
// passed. Unlike the node/search rule managers, it is evaluated inline by
// the search engine before recursing, since a time check must run
// regardless of which manager owns the current node.
type TimeLimitRule struct {
	base
	deadline time.Time
	enabled  bool
}

// NewTimeLimitRule builds a TimeLimitRule armed to fire maxDuration from
// now; each Start call re-arms it from the time of that call.
// maxDuration <= 0 disables the rule.
func NewTimeLimitRule(maxDuration time.Duration) *TimeLimitRule {
	return &TimeLimitRule{
		base:    base{kind: KindTimeLimit, priority: 0, desc: "stop the search after a wall-clock deadline", state: core.RuleActive},
		enabled: maxDuration > 0,
		deadline: func() time.Time {
			if maxDuration > 0 {
				return time.Now().Add(maxDuration)
			}

			return time.Time{}
		}(),
	}
}

// Start resets the deadline relative to now; call once per fit/partial_fit.
func (r *TimeLimitRule) Start(maxDuration time.Duration) {
	r.enabled = maxDuration > 0
	if r.enabled {
		r.deadline = time.Now().Add(maxDuration)
	}
}

// Expired reports whether the deadline has passed.
func (r *TimeLimitRule) Expired() bool {
	return r.enabled && time.Now().After(r.deadline)
}

// SimilarityLBRule lifts a node's lower bound using the proven error of
// a structurally similar sibling cover seen earlier in the same
// search. It holds no per-node state of its own;
// the search engine supplies both the candidate's lower bound and the
// cached error of the similar node it found.
type SimilarityLBRule struct {
	base
}

// NewSimilarityLBRule builds a SimilarityLBRule. It starts disabled: the
// search engine activates it only when LowerBoundPolicy ==
// LowerBoundSimilarity.
func NewSimilarityLBRule() *SimilarityLBRule {
	return &SimilarityLBRule{base: base{kind: KindSimilarityLB, priority: 0, desc: "lift a node's lower bound from a similar sibling", state: core.RuleDisabled}}
}

// Evaluate compares a candidate's current lower bound, lifted to
// similarLeafError if that is larger, against the upper bound in force.
// similarLeafError should be core.Infinity when no similar node was found.
func (r *SimilarityLBRule) Evaluate(ctx *core.RuleContext, similarLeafError float64) Result {
	if !r.active() {
		return continueResult
	}

	lb := ctx.LowerBound
	if similarLeafError > lb && similarLeafError < core.Infinity {
		lb = similarLeafError
	}
	if lb >= ctx.UpperBound {
		return Result{Stop: true, Reason: core.ReasonLowerBoundConstrained, Value: lb}
	}
	if ctx.Error <= lb {
		return Result{Stop: true, Reason: core.ReasonDone, Value: ctx.Error, IsOptimal: true, IsLeaf: true}
	}

	return continueResult
}
