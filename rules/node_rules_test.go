package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/rules"
)

func TestMaxDepthRule(t *testing.T) {
	r := rules.NewMaxDepthRule(2)

	res := r.Evaluate(&core.RuleContext{Depth: 1})
	assert.False(t, res.Stop)

	res = r.Evaluate(&core.RuleContext{Depth: 2, LeafError: 0.5})
	assert.True(t, res.Stop)
	assert.Equal(t, core.ReasonMaxDepthReached, res.Reason)
	assert.Equal(t, 0.5, res.Value)
	assert.True(t, res.IsOptimal)
	assert.True(t, res.IsLeaf)
}

func TestMinSupportRule(t *testing.T) {
	r := rules.NewMinSupportRule(5)

	assert.False(t, r.Evaluate(&core.RuleContext{Support: 10}).Stop)

	res := r.Evaluate(&core.RuleContext{Support: 4, LeafError: 1})
	assert.True(t, res.Stop)
	assert.Equal(t, core.ReasonNotEnoughSupport, res.Reason)
}

func TestPureNodeRule(t *testing.T) {
	r := rules.NewPureNodeRule()

	assert.False(t, r.Evaluate(&core.RuleContext{LeafError: 0.3}).Stop)

	res := r.Evaluate(&core.RuleContext{LeafError: 0})
	assert.True(t, res.Stop)
	assert.Equal(t, core.ReasonPureNode, res.Reason)
	assert.True(t, res.IsOptimal)
}

func TestUsableNodeRule(t *testing.T) {
	r := rules.NewUsableNodeRule()

	assert.False(t, r.Evaluate(&core.RuleContext{Error: core.Infinity, NodeUpperBound: 1}).Stop)
	assert.False(t, r.Evaluate(&core.RuleContext{Error: 0.2, NodeUpperBound: core.Infinity}).Stop)

	res := r.Evaluate(&core.RuleContext{Error: 0.2, NodeUpperBound: 1})
	assert.True(t, res.Stop)
	assert.Equal(t, 0.2, res.Value)
	assert.True(t, res.IsOptimal)
}

func TestLowerBoundRule(t *testing.T) {
	r := rules.NewLowerBoundRule()

	assert.False(t, r.Evaluate(&core.RuleContext{UpperBound: 1, LowerBound: 0.2}).Stop)

	res := r.Evaluate(&core.RuleContext{UpperBound: 0.3, LowerBound: 0.5})
	assert.True(t, res.Stop)
	assert.Equal(t, core.ReasonLowerBoundConstrained, res.Reason)

	res = r.Evaluate(&core.RuleContext{UpperBound: 0, LowerBound: 0})
	assert.True(t, res.Stop)
}

func TestPurityRule(t *testing.T) {
	r := rules.NewPurityRule(0.9, 1e-9)

	// purity = 1 - 1/10 = 0.9 -> meets threshold
	res := r.Evaluate(&core.RuleContext{Support: 10, Error: 1, LeafError: 1})
	assert.True(t, res.Stop)
	assert.True(t, res.IsLeaf)

	res = r.Evaluate(&core.RuleContext{Support: 10, Error: 4})
	assert.False(t, res.Stop)

	assert.True(t, r.IsRelaxable())
	r.Relax()
	assert.Equal(t, core.RuleDisabled, r.State())
	assert.False(t, r.Evaluate(&core.RuleContext{Support: 10, Error: 4}).Stop)
}
