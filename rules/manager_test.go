package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/rules"
)

func TestManager_ShortCircuitsOnFirstStop(t *testing.T) {
	m := rules.NewManager(
		rules.NewMinSupportRule(5),
		rules.NewMaxDepthRule(3),
	)

	res := m.Evaluate(&core.RuleContext{Depth: 3, Support: 10, LeafError: 0.1})
	assert.True(t, res.Stop)
	assert.Equal(t, core.ReasonMaxDepthReached, res.Reason)
}

func TestManager_PriorityOrdering(t *testing.T) {
	m := rules.NewManager(rules.NewLowerBoundRule(), rules.NewMaxDepthRule(1))
	got := m.Rules()
	assert.Equal(t, rules.KindMaxDepth, got[0].Kind())
	assert.Equal(t, rules.KindLowerBound, got[1].Kind())
}

func TestManager_IsActiveAndRelaxAll(t *testing.T) {
	disc := rules.NewDiscrepancyRule(0, rules.NewMonotonic(1))
	m := rules.NewManager(disc)

	assert.True(t, m.IsActive())
	m.RelaxAll() // budget already at hard limit 0 -> disables
	assert.False(t, m.IsActive())
}

func TestManager_ResetAll(t *testing.T) {
	disc := rules.NewDiscrepancyRule(0, rules.NewMonotonic(1))
	m := rules.NewManager(disc)
	m.RelaxAll()
	assert.False(t, m.IsActive())

	m.ResetAll()
	assert.True(t, m.IsActive())
}
