// Command dl85 trains an optimal (or greedy) binary decision tree on a
// whitespace/CSV dataset whose first column is the label, and prints the
// resulting tree and run statistics as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/dl85go/dl85/config"
	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/dataset"
	"github.com/dl85go/dl85/depth2"
	"github.com/dl85go/dl85/errorfn"
	"github.com/dl85go/dl85/greedy"
	"github.com/dl85go/dl85/heuristic"
	"github.com/dl85go/dl85/search"
	"github.com/dl85go/dl85/stats"
	"github.com/dl85go/dl85/tree"
)

type output struct {
	Tree       *tree.Tree       `json:"tree"`
	Statistics stats.Statistics `json:"statistics"`
	Error      float64          `json:"error"`
	Reason     string           `json:"reason"`
}

func main() {
	var (
		input       = flag.StringP("input", "i", "", "dataset file (label in column 0, binary features)")
		configPath  = flag.StringP("config", "c", "", "optional YAML config file")
		csv         = flag.Bool("csv", false, "parse the dataset as comma-separated instead of whitespace")
		minSupport  = flag.Int("min-support", 1, "minimum samples on each side of any split")
		maxDepth    = flag.Int("max-depth", 2, "maximum tree depth")
		maxErr      = flag.Float64("max-error", 0, "initial upper bound (0 = unbounded)")
		maxSeconds  = flag.Float64("max-time", 0, "wall-clock budget in seconds (0 = unbounded)")
		alwaysSort  = flag.Bool("always-sort", false, "re-sort candidates at every node")
		noSpecial   = flag.Bool("no-specialization", false, "disable the depth-2 terminal solver")
		lowerBound  = flag.String("lower-bound", "disabled", "lower bound policy: disabled|similarity")
		branching   = flag.String("branching", "default", "branching policy: default|dynamic")
		heuristicID = flag.String("heuristic", "none", "candidate ordering: none|gini|info-gain|weighted-entropy")
		algo        = flag.String("algo", "dl85", "learner: dl85|lgdt")
		verbose     = flag.BoolP("verbose", "v", false, "debug logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	if *input == "" {
		log.Fatal().Msg("--input is required")
	}

	cfg, err := resolveConfig(*configPath, *minSupport, *maxDepth, *maxErr, *maxSeconds, *alwaysSort, *noSpecial, *lowerBound, *branching)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ds, err := readDataset(*input, *csv)
	if err != nil {
		log.Fatal().Err(err).Str("path", *input).Msg("cannot read dataset")
	}
	log.Info().
		Int("samples", ds.NumSamples()).
		Int("attributes", ds.NumAttributes()).
		Int("labels", ds.NumLabels()).
		Msg("dataset loaded")

	c := cover.New(ds)
	heur, err := pickHeuristic(*heuristicID)
	if err != nil {
		log.Fatal().Err(err).Msg("unknown heuristic")
	}

	var out output
	switch *algo {
	case "dl85":
		out, err = runDL85(cfg, heur, c, log)
	case "lgdt":
		out, err = runLGDT(cfg, c)
	default:
		err = fmt.Errorf("unknown --algo %q", *algo)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("cannot encode result")
	}
}

func resolveConfig(path string, minSupport, maxDepth int, maxErr, maxSeconds float64, alwaysSort, noSpecial bool, lowerBound, branching string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	opts := []config.Option{
		config.WithMinSupport(minSupport),
		config.WithMaxDepth(maxDepth),
		config.WithAlwaysSort(alwaysSort),
	}
	if maxErr > 0 {
		opts = append(opts, config.WithMaxError(maxErr))
	}
	if maxSeconds > 0 {
		opts = append(opts, config.WithMaxTime(time.Duration(maxSeconds*float64(time.Second))))
	}
	if noSpecial {
		opts = append(opts, config.WithSpecialization(core.SpecializationDisabled))
	}
	switch lowerBound {
	case "disabled":
	case "similarity":
		opts = append(opts, config.WithLowerBoundPolicy(core.LowerBoundSimilarity))
	default:
		return nil, fmt.Errorf("unknown --lower-bound %q", lowerBound)
	}
	switch branching {
	case "default":
	case "dynamic":
		opts = append(opts, config.WithBranchingPolicy(core.BranchingDynamic))
	default:
		return nil, fmt.Errorf("unknown --branching %q", branching)
	}

	return config.New(opts...)
}

func readDataset(path string, csv bool) (*dataset.StaticDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := dataset.DefaultReaderOptions()
	if csv {
		opts.Delimiter = dataset.DelimiterComma
	}

	return dataset.ReadText(f, opts)
}

// heuristicMemoSize bounds the LRU that short-circuits repeated scoring
// of structurally identical covers deep in the search.
const heuristicMemoSize = 4096

func pickHeuristic(name string) (heuristic.Heuristic, error) {
	switch name {
	case "none":
		return heuristic.NoHeuristic{}, nil
	case "gini":
		return heuristic.NewMemoized(heuristic.GiniIndex{}, heuristicMemoSize), nil
	case "info-gain":
		return heuristic.NewMemoized(heuristic.InformationGain{}, heuristicMemoSize), nil
	case "weighted-entropy":
		return heuristic.NewMemoized(heuristic.WeightedEntropy{}, heuristicMemoSize), nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}

func runDL85(cfg *config.Config, heur heuristic.Heuristic, c *cover.Cover, log zerolog.Logger) (output, error) {
	miscls := errorfn.Misclassification{}
	wrapper, err := errorfn.NewWrapper(cfg.DataType, miscls, nil)
	if err != nil {
		return output{}, err
	}

	engine, err := search.NewBuilder().
		WithConfig(cfg).
		WithErrorFunction(wrapper).
		WithHeuristic(heur).
		WithDepth2(depth2.NewErrorMinimizer(miscls)).
		WithLogger(log).
		Build()
	if err != nil {
		return output{}, err
	}

	res := engine.Fit(c)

	return output{
		Tree:       engine.Tree(),
		Statistics: engine.Statistics(),
		Error:      engine.Tree().RootError(),
		Reason:     res.Reason.String(),
	}, nil
}

func runLGDT(cfg *config.Config, c *cover.Cover) (output, error) {
	miscls := errorfn.Misclassification{}
	wrapper, err := errorfn.NewWrapper(core.ClassesSupport, miscls, nil)
	if err != nil {
		return output{}, err
	}
	learner, err := greedy.New(cfg.MinSupport, cfg.MaxDepth, depth2.NewErrorMinimizer(miscls), wrapper)
	if err != nil {
		return output{}, err
	}

	begin := time.Now()
	t, err := learner.Fit(c)
	if err != nil {
		return output{}, err
	}

	return output{
		Tree: t,
		Statistics: stats.Statistics{
			TreeError:       t.RootError(),
			DurationSeconds: time.Since(begin).Seconds(),
			NumAttributes:   c.NumAttributes(),
			NumSamples:      c.NumSamples(),
		},
		Error:  t.RootError(),
		Reason: core.ReasonDone.String(),
	}, nil
}
