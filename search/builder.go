package search

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dl85go/dl85/cache"
	"github.com/dl85go/dl85/config"
	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/depth2"
	"github.com/dl85go/dl85/errorfn"
	"github.com/dl85go/dl85/heuristic"
	"github.com/dl85go/dl85/rules"
)

// Builder composes an Engine from its capabilities and fails fast on a
// missing one. Setters return the receiver for chaining.
type Builder struct {
	cfg    *config.Config
	errFn  *errorfn.Wrapper
	heur   heuristic.Heuristic
	d2     depth2.Optimizer
	logger zerolog.Logger
}

// NewBuilder starts an empty Builder with a no-op logger.
func NewBuilder() *Builder {
	return &Builder{logger: zerolog.Nop()}
}

// WithConfig installs the resolved configuration. Required.
func (b *Builder) WithConfig(cfg *config.Config) *Builder { b.cfg = cfg; return b }

// WithErrorFunction installs the node-error capability. Required.
func (b *Builder) WithErrorFunction(w *errorfn.Wrapper) *Builder { b.errFn = w; return b }

// WithHeuristic installs the candidate-ordering capability. Required;
// use heuristic.NoHeuristic for plain candidate order.
func (b *Builder) WithHeuristic(h heuristic.Heuristic) *Builder { b.heur = h; return b }

// WithDepth2 installs the terminal depth-2 solver. Required when the
// configuration enables specialization.
func (b *Builder) WithDepth2(o depth2.Optimizer) *Builder { b.d2 = o; return b }

// WithLogger threads a structured logger through the engine. Optional.
func (b *Builder) WithLogger(l zerolog.Logger) *Builder { b.logger = l; return b }

// Build validates the composition and assembles the Engine: cache, rule
// managers derived from the attached rule configurations, and the inline
// time/similarity singletons.
func (b *Builder) Build() (*Engine, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("search: config: %w", core.ErrMissingCapability)
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if b.errFn == nil {
		return nil, fmt.Errorf("search: error function: %w", core.ErrMissingCapability)
	}
	if b.heur == nil {
		return nil, fmt.Errorf("search: heuristic: %w", core.ErrMissingCapability)
	}
	if b.cfg.Specialization == core.SpecializationEnabled && b.d2 == nil {
		return nil, fmt.Errorf("search: depth-2 optimizer: %w", core.ErrMissingCapability)
	}

	e := &Engine{
		cfg:      b.cfg,
		cache:    cache.Init(b.cfg.CacheInitSize),
		errFn:    b.errFn,
		heur:     b.heur,
		d2:       b.d2,
		timeRule: rules.NewTimeLimitRule(b.cfg.MaxTime),
		simRule:  rules.NewSimilarityLBRule(),
		log:      b.logger,
	}
	e.nodeRules = buildNodeRules(b.cfg)
	e.searchRules = buildSearchRules(b.cfg)

	return e, nil
}

// Default assembles an Engine with the stock capabilities: the
// misclassification error, no heuristic ordering, and the
// error-minimizing depth-2 solver.
func Default(cfg *config.Config) (*Engine, error) {
	miscls := errorfn.Misclassification{}
	wrapper, err := errorfn.NewWrapper(cfg.DataType, miscls, nil)
	if err != nil {
		return nil, err
	}

	return NewBuilder().
		WithConfig(cfg).
		WithErrorFunction(wrapper).
		WithHeuristic(heuristic.NoHeuristic{}).
		WithDepth2(depth2.NewErrorMinimizer(miscls)).
		Build()
}

func buildNodeRules(cfg *config.Config) *rules.Manager {
	rs := []rules.Rule{
		rules.NewMaxDepthRule(cfg.MaxDepth),
		rules.NewMinSupportRule(cfg.MinSupport),
		rules.NewPureNodeRule(),
		rules.NewUsableNodeRule(),
		rules.NewLowerBoundRule(),
	}
	if cfg.Purity != nil {
		rs = append(rs, rules.NewPurityRule(cfg.Purity.MinPurity, cfg.Purity.Epsilon))
	}

	return rules.NewManager(rs...)
}

func buildSearchRules(cfg *config.Config) *rules.Manager {
	var rs []rules.Rule
	if cfg.Discrepancy != nil {
		rs = append(rs, rules.NewDiscrepancyRule(cfg.Discrepancy.Limit, stepFrom(cfg.Discrepancy.Step)))
	}
	if cfg.TopK != nil {
		rs = append(rs, rules.NewTopKRule(cfg.TopK.Limit, stepFrom(cfg.TopK.Step)))
	}
	if cfg.Gain != nil {
		rs = append(rs, rules.NewGainRule(cfg.Gain.Limit, cfg.Gain.Epsilon, stepFrom(cfg.Gain.Step)))
	}

	return rules.NewManager(rs...)
}

// stepFrom maps a configured schedule onto a rules.StepStrategy,
// defaulting to Monotonic(1).
func stepFrom(sc config.StepConfig) rules.StepStrategy {
	scale := sc.Scale
	if scale <= 0 {
		scale = 1
	}
	switch sc.Kind {
	case config.StepExponential:
		return rules.NewExponential(scale)
	case config.StepLuby:
		return rules.NewLuby(scale)
	default:
		return rules.NewMonotonic(scale)
	}
}
