package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/rules"
)

func TestDiscrepancyRule_RelaxesOverRounds(t *testing.T) {
	r := rules.NewDiscrepancyRule(4, rules.NewMonotonic(2))

	// budget starts at 0: any positive discrepancy is pruned.
	res := r.Evaluate(&core.RuleContext{Discrepancy: 1, LeafError: 0.7})
	assert.True(t, res.Stop)
	assert.Equal(t, core.ReasonRuleReason, res.Reason)

	r.Relax() // budget -> 0 (first Next() call)
	r.Relax() // budget -> 2
	assert.False(t, r.Evaluate(&core.RuleContext{Discrepancy: 2}).Stop)
	assert.True(t, r.Evaluate(&core.RuleContext{Discrepancy: 3}).Stop)

	r.Relax() // budget -> 4, equal to hard limit
	assert.False(t, r.Evaluate(&core.RuleContext{Discrepancy: 4}).Stop)

	r.Relax() // budget already at hard limit -> disables
	assert.Equal(t, core.RuleDisabled, r.State())
}

func TestTopKRule(t *testing.T) {
	r := rules.NewTopKRule(2, rules.NewMonotonic(1))

	assert.False(t, r.Evaluate(&core.RuleContext{Position: 0}).Stop)
	assert.True(t, r.Evaluate(&core.RuleContext{Position: 1}).Stop)

	r.Relax() // budget -> 0
	r.Relax() // budget -> 1
	assert.False(t, r.Evaluate(&core.RuleContext{Position: 0}).Stop)
	assert.False(t, r.Evaluate(&core.RuleContext{Position: 1}).Stop)
	assert.True(t, r.Evaluate(&core.RuleContext{Position: 2}).Stop)
}

func TestDecreasingTopKRule(t *testing.T) {
	r := rules.NewDecreasingTopKRule(5, 1, rules.NewMonotonic(1))

	// window starts at initialK=5: everything under position 5 passes.
	assert.False(t, r.Evaluate(&core.RuleContext{Position: 4}).Stop)

	r.Relax() // budget -> 0, window 5
	r.Relax() // budget -> 1, window 4
	assert.False(t, r.Evaluate(&core.RuleContext{Position: 3}).Stop)
	assert.True(t, r.Evaluate(&core.RuleContext{Position: 4}).Stop)
}

func TestGainRule(t *testing.T) {
	r := rules.NewGainRule(0.5, 1, rules.NewMonotonic(1))

	res := r.Evaluate(&core.RuleContext{GainGap: 0.1, LeafError: 0.9})
	assert.True(t, res.Stop) // budget starts at 0

	r.Relax() // budget -> 0
	r.Relax() // budget -> 1, capped to hardLimit 0.5
	assert.False(t, r.Evaluate(&core.RuleContext{GainGap: 0.4}).Stop)
	assert.True(t, r.Evaluate(&core.RuleContext{GainGap: 0.6}).Stop)
}
