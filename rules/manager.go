package rules

import (
	"sort"

	"github.com/dl85go/dl85/core"
)

// Manager holds a priority-ordered collection of rules and evaluates
// them in order, short-circuiting on the first one that stops
// descent. The search engine keeps two Managers:
// one for node rules (MaxDepth, MinSupport, PureNode, UsableNode,
// LowerBound, Purity), one for search rules (Discrepancy, TopK, Gain).
type Manager struct {
	rules []Rule
}

// NewManager builds a Manager over rules, sorted ascending by Priority
// so that cheap structural checks run before expensive bound checks.
func NewManager(rules ...Rule) *Manager {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority() < sorted[j].Priority() })

	return &Manager{rules: sorted}
}

// Evaluate runs every active rule in priority order, returning the first
// Result with Stop set, or continueResult if none fired.
func (m *Manager) Evaluate(ctx *core.RuleContext) Result {
	for _, r := range m.rules {
		if res := r.Evaluate(ctx); res.Stop {
			return res
		}
	}

	return continueResult
}

// IsActive reports whether any contained RELAXABLE rule is still Active
// — used by the search engine to decide whether another partial_fit
// round could possibly change the outcome. Non-relaxable rules prune the
// same way every round, so they never justify a retry.
func (m *Manager) IsActive() bool {
	for _, r := range m.rules {
		if r.IsRelaxable() && r.State() == core.RuleActive {
			return true
		}
	}

	return false
}

// RelaxAll calls Relax on every managed rule. Non-relaxable rules ignore it.
func (m *Manager) RelaxAll() {
	for _, r := range m.rules {
		r.Relax()
	}
}

// ActivateAll re-activates every managed rule, e.g. after a full Reset.
func (m *Manager) ActivateAll() {
	for _, r := range m.rules {
		r.Activate()
	}
}

// ResetAll returns every managed rule to the Active state and every
// relaxable rule to a budget of 0. Step strategies are not rewound: the
// next Relax continues each rule's schedule where it left off, and a hard
// limit replaced after construction (SetHardLimit) is kept.
func (m *Manager) ResetAll() {
	for _, r := range m.rules {
		r.Reset()
	}
}

// Get returns the first managed rule of the given kind, for the
// post-hoc parameter updates some rules receive from the engine (true
// max discrepancy, observed minimum gain gap). Callers type-assert the
// returned Rule to the concrete variant.
func (m *Manager) Get(kind Kind) (Rule, bool) {
	for _, r := range m.rules {
		if r.Kind() == kind {
			return r, true
		}
	}

	return nil, false
}

// Rules exposes the managed rules in priority order, for introspection
// and testing.
func (m *Manager) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)

	return out
}
