package errorfn

import (
	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
)

// ErrorFn scores a node from its per-label count vector, returning the
// error if the node were labeled by its best class, and that class.
type ErrorFn interface {
	Compute(counts []int) (float64, int)
}

// TidsFn scores a node from the raw sample indices it covers. Used when
// the engine is configured with core.Tids as the node data type, e.g.
// for custom losses that need per-sample weights.
type TidsFn interface {
	ComputeTids(tids []int) (float64, int)
}

// Misclassification is the default error function: support minus the
// majority-class count. On ties the lowest label wins, keeping results
// deterministic across runs.
type Misclassification struct{}

func (Misclassification) Compute(counts []int) (float64, int) {
	total, best, bestLabel := 0, 0, 0
	for label, count := range counts {
		total += count
		if count > best {
			best = count
			bestLabel = label
		}
	}

	return float64(total - best), bestLabel
}

// Func adapts a plain function to the ErrorFn capability.
type Func func(counts []int) (float64, int)

func (f Func) Compute(counts []int) (float64, int) { return f(counts) }

// TidsFunc adapts a plain function to the TidsFn capability.
type TidsFunc func(tids []int) (float64, int)

func (f TidsFunc) ComputeTids(tids []int) (float64, int) { return f(tids) }

// Wrapper dispatches leaf-error computation to the configured shape:
// class-support counts or raw sample indices.
// The zero value is not usable; construct with NewWrapper.
type Wrapper struct {
	dataType core.NodeDataType
	counts   ErrorFn
	tids     TidsFn
}

// NewWrapper builds a Wrapper. counts is required for ClassesSupport,
// tids for Tids; supplying the unused one is harmless.
func NewWrapper(dataType core.NodeDataType, counts ErrorFn, tids TidsFn) (*Wrapper, error) {
	switch dataType {
	case core.ClassesSupport:
		if counts == nil {
			return nil, core.ErrMissingCapability
		}
	case core.Tids:
		if tids == nil {
			return nil, core.ErrMissingCapability
		}
	}

	return &Wrapper{dataType: dataType, counts: counts, tids: tids}, nil
}

// Leaf computes (error, majority label) for the current cover, fetching
// whichever view of the node the configured data type calls for.
func (w *Wrapper) Leaf(c *cover.Cover) (float64, int) {
	if w.dataType == core.Tids {
		return w.tids.ComputeTids(c.Tids())
	}

	return w.counts.Compute(c.LabelsCount())
}

// Counts exposes the count-vector function for callers (the depth-2
// optimizers) that work on distributions directly and cannot consume
// the Tids shape.
func (w *Wrapper) Counts() ErrorFn { return w.counts }
