package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/rules"
)

func TestTimeLimitRule_Expired(t *testing.T) {
	r := rules.NewTimeLimitRule(10 * time.Millisecond)
	assert.False(t, r.Expired())
	time.Sleep(20 * time.Millisecond)
	assert.True(t, r.Expired())
}

func TestTimeLimitRule_DisabledWhenZero(t *testing.T) {
	r := rules.NewTimeLimitRule(0)
	assert.False(t, r.Expired())
}

func TestSimilarityLBRule_StartsDisabled(t *testing.T) {
	r := rules.NewSimilarityLBRule()
	res := r.Evaluate(&core.RuleContext{LowerBound: 0, UpperBound: 0.1}, core.Infinity)
	assert.False(t, res.Stop)
}

func TestSimilarityLBRule_LiftsLowerBound(t *testing.T) {
	r := rules.NewSimilarityLBRule()
	r.Activate()

	res := r.Evaluate(&core.RuleContext{LowerBound: 0.1, UpperBound: 0.5}, 0.6)
	assert.True(t, res.Stop)
	assert.Equal(t, core.ReasonLowerBoundConstrained, res.Reason)
}

func TestSimilarityLBRule_OptimalLeafWhenErrorMeetsBound(t *testing.T) {
	r := rules.NewSimilarityLBRule()
	r.Activate()

	res := r.Evaluate(&core.RuleContext{LowerBound: 0.2, UpperBound: 0.5, Error: 0.2}, core.Infinity)
	assert.True(t, res.Stop)
	assert.True(t, res.IsOptimal)
}
