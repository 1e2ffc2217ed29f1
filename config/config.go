package config

import (
	"fmt"
	"time"

	"github.com/dl85go/dl85/core"
)

// StepKind names a rule relaxation schedule in configuration; it maps to
// a rules.StepStrategy when the engine is assembled.
type StepKind string

const (
	StepMonotonic   StepKind = "monotonic"
	StepExponential StepKind = "exponential"
	StepLuby        StepKind = "luby"
)

// StepConfig selects a relaxation schedule and its scale parameter
// (k for monotonic, b for exponential, m for luby).
type StepConfig struct {
	Kind  StepKind `yaml:"kind"`
	Scale int      `yaml:"scale"`
}

// DiscrepancyConfig attaches a Limited Discrepancy Search rule. A Limit
// of 0 means "compute the theoretical maximum from the candidate count
// at fit time".
type DiscrepancyConfig struct {
	Limit int        `yaml:"limit"`
	Step  StepConfig `yaml:"step"`
}

// TopKConfig attaches a top-k sibling window rule.
type TopKConfig struct {
	Limit int        `yaml:"limit"`
	Step  StepConfig `yaml:"step"`
}

// GainConfig attaches a cumulative gain-gap rule. Epsilon scales the
// step schedule; when zero the engine substitutes the smallest positive
// gain gap observed during the first round.
type GainConfig struct {
	MinGain float64    `yaml:"min_gain"`
	Epsilon float64    `yaml:"epsilon"`
	Limit   float64    `yaml:"limit"`
	Step    StepConfig `yaml:"step"`
}

// PurityConfig attaches a purity-threshold stopping rule.
type PurityConfig struct {
	MinPurity float64 `yaml:"min_purity"`
	Epsilon   float64 `yaml:"epsilon"`
}

// Config is the resolved engine configuration. Construct with New; the
// zero value has an invalid MinSupport and will fail Validate.
type Config struct {
	MinSupport        int                    `yaml:"min_support"`
	MaxDepth          int                    `yaml:"max_depth"`
	MaxError          float64                `yaml:"max_error"`
	MaxTime           time.Duration          `yaml:"max_time"`
	AlwaysSort        bool                   `yaml:"always_sort"`
	Specialization    core.Specialization    `yaml:"-"`
	LowerBoundPolicy  core.LowerBoundPolicy  `yaml:"-"`
	BranchingPolicy   core.BranchingPolicy   `yaml:"-"`
	CacheInitSize     int                    `yaml:"cache_init_size"`
	CacheInitStrategy core.CacheInitStrategy `yaml:"-"`
	DataType          core.NodeDataType      `yaml:"-"`

	Discrepancy   *DiscrepancyConfig `yaml:"discrepancy,omitempty"`
	TopK          *TopKConfig        `yaml:"topk,omitempty"`
	Gain          *GainConfig        `yaml:"gain,omitempty"`
	Purity        *PurityConfig      `yaml:"purity,omitempty"`
	TimeRelaxable bool               `yaml:"time_relaxable"`
}

// Option mutates a Config during New, in the order given.
type Option func(*Config)

// New resolves opts over the defaults: min_support 1, max_depth 2,
// unbounded error and time, depth-2 specialization enabled, no lower
// bound lifting, default branching, class-support data.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		MinSupport:     1,
		MaxDepth:       2,
		MaxError:       core.Infinity,
		MaxTime:        0,
		Specialization: core.SpecializationEnabled,
		DataType:       core.ClassesSupport,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the search preconditions: positive
// min-support and a positive depth.
func (c *Config) Validate() error {
	if c.MinSupport <= 0 {
		return fmt.Errorf("config: %w: got %d", core.ErrInvalidMinSupport, c.MinSupport)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("config: %w: max_depth %d", core.ErrInvalidDepth, c.MaxDepth)
	}
	if c.MaxError <= 0 {
		return fmt.Errorf("config: max_error must be positive, got %v", c.MaxError)
	}

	return nil
}

// WithMinSupport sets the minimum samples required on each side of any split.
func WithMinSupport(n int) Option { return func(c *Config) { c.MinSupport = n } }

// WithMaxDepth sets the hard depth cap.
func WithMaxDepth(d int) Option { return func(c *Config) { c.MaxDepth = d } }

// WithMaxError seeds the root upper bound.
func WithMaxError(e float64) Option { return func(c *Config) { c.MaxError = e } }

// WithMaxTime sets the wall-clock budget; 0 disables it.
func WithMaxTime(d time.Duration) Option { return func(c *Config) { c.MaxTime = d } }

// WithAlwaysSort re-sorts candidates with the heuristic at every node.
func WithAlwaysSort(v bool) Option { return func(c *Config) { c.AlwaysSort = v } }

// WithSpecialization toggles the depth-2 terminal shortcut.
func WithSpecialization(s core.Specialization) Option {
	return func(c *Config) { c.Specialization = s }
}

// WithLowerBoundPolicy toggles similarity-based lower-bound lifting.
func WithLowerBoundPolicy(p core.LowerBoundPolicy) Option {
	return func(c *Config) { c.LowerBoundPolicy = p }
}

// WithBranchingPolicy selects default or dynamic child ordering.
func WithBranchingPolicy(p core.BranchingPolicy) Option {
	return func(c *Config) { c.BranchingPolicy = p }
}

// WithCacheInit passes the advisory cache preallocation hints through.
func WithCacheInit(size int, strategy core.CacheInitStrategy) Option {
	return func(c *Config) { c.CacheInitSize = size; c.CacheInitStrategy = strategy }
}

// WithDataType selects the shape handed to the error function.
func WithDataType(t core.NodeDataType) Option { return func(c *Config) { c.DataType = t } }

// WithDiscrepancy attaches a Limited Discrepancy Search rule.
func WithDiscrepancy(dc DiscrepancyConfig) Option {
	return func(c *Config) { c.Discrepancy = &dc }
}

// WithTopK attaches a top-k sibling window rule.
func WithTopK(tc TopKConfig) Option { return func(c *Config) { c.TopK = &tc } }

// WithGain attaches a cumulative gain-gap rule.
func WithGain(gc GainConfig) Option { return func(c *Config) { c.Gain = &gc } }

// WithPurity attaches a purity-threshold rule.
func WithPurity(pc PurityConfig) Option { return func(c *Config) { c.Purity = &pc } }

// WithRelaxableTime makes the time rule relaxable: hitting the deadline
// reports RuleReason instead of TimeLimitReached, letting restart loops
// treat it like any other exhausted budget.
func WithRelaxableTime(v bool) Option { return func(c *Config) { c.TimeRelaxable = v } }
