package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dl85go/dl85/core"
)

// fileConfig is the YAML wire shape. Enum-valued fields are strings in
// the file and mapped onto core enums here, so config files stay
// readable ("branching: dynamic") while the engine keeps typed values.
type fileConfig struct {
	MinSupport     int     `yaml:"min_support"`
	MaxDepth       int     `yaml:"max_depth"`
	MaxError       float64 `yaml:"max_error"`
	MaxTimeSeconds float64 `yaml:"max_time_seconds"`
	AlwaysSort     bool    `yaml:"always_sort"`
	Specialization string  `yaml:"specialization"`
	LowerBound     string  `yaml:"lower_bound"`
	Branching      string  `yaml:"branching"`
	CacheInitSize  int     `yaml:"cache_init_size"`
	DataType       string  `yaml:"data_type"`

	Discrepancy   *DiscrepancyConfig `yaml:"discrepancy"`
	TopK          *TopKConfig        `yaml:"topk"`
	Gain          *GainConfig        `yaml:"gain"`
	Purity        *PurityConfig      `yaml:"purity"`
	TimeRelaxable bool               `yaml:"time_relaxable"`
}

// Load reads a YAML config file and resolves it into a validated Config.
// Absent fields keep the New defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(raw)
}

// Parse resolves YAML bytes into a validated Config.
func Parse(raw []byte) (*Config, error) {
	fc := fileConfig{
		MinSupport:     1,
		MaxDepth:       2,
		Specialization: "enabled",
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	opts := []Option{
		WithMinSupport(fc.MinSupport),
		WithMaxDepth(fc.MaxDepth),
		WithAlwaysSort(fc.AlwaysSort),
		WithCacheInit(fc.CacheInitSize, core.CacheInitDefault),
		WithRelaxableTime(fc.TimeRelaxable),
	}
	if fc.MaxError > 0 {
		opts = append(opts, WithMaxError(fc.MaxError))
	}
	if fc.MaxTimeSeconds > 0 {
		opts = append(opts, WithMaxTime(time.Duration(fc.MaxTimeSeconds*float64(time.Second))))
	}

	switch fc.Specialization {
	case "", "enabled":
		opts = append(opts, WithSpecialization(core.SpecializationEnabled))
	case "disabled":
		opts = append(opts, WithSpecialization(core.SpecializationDisabled))
	default:
		return nil, fmt.Errorf("config: unknown specialization %q", fc.Specialization)
	}

	switch fc.LowerBound {
	case "", "disabled":
	case "similarity":
		opts = append(opts, WithLowerBoundPolicy(core.LowerBoundSimilarity))
	default:
		return nil, fmt.Errorf("config: unknown lower_bound %q", fc.LowerBound)
	}

	switch fc.Branching {
	case "", "default":
	case "dynamic":
		opts = append(opts, WithBranchingPolicy(core.BranchingDynamic))
	default:
		return nil, fmt.Errorf("config: unknown branching %q", fc.Branching)
	}

	switch fc.DataType {
	case "", "classes_support":
	case "tids":
		opts = append(opts, WithDataType(core.Tids))
	default:
		return nil, fmt.Errorf("config: unknown data_type %q", fc.DataType)
	}

	if fc.Discrepancy != nil {
		opts = append(opts, WithDiscrepancy(*fc.Discrepancy))
	}
	if fc.TopK != nil {
		opts = append(opts, WithTopK(*fc.TopK))
	}
	if fc.Gain != nil {
		opts = append(opts, WithGain(*fc.Gain))
	}
	if fc.Purity != nil {
		opts = append(opts, WithPurity(*fc.Purity))
	}

	return New(opts...)
}
