package dataset

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Sentinel errors for dataset construction.
var (
	// ErrNoSamples is returned when a dataset would have zero rows.
	ErrNoSamples = errors.New("dataset: no samples")
	// ErrRaggedRows is returned when feature rows have inconsistent width.
	ErrRaggedRows = errors.New("dataset: feature rows have inconsistent width")
	// ErrLabelMismatch is returned when the label slice length disagrees
	// with the number of feature rows.
	ErrLabelMismatch = errors.New("dataset: label count does not match sample count")
	// ErrNotBinary is returned when a feature value is not 0 or 1.
	ErrNotBinary = errors.New("dataset: feature values must be 0 or 1")
	// ErrNegativeLabel is returned when a label value is negative.
	ErrNegativeLabel = errors.New("dataset: labels must be nonnegative")
)

// StaticDataset holds the immutable per-attribute bitsets A[a] (bit i set
// iff sample i has feature a = 1) and per-label bitsets L[c] (bit i set
// iff sample i has label c).
//
// Every *bitset.BitSet here is owned by the dataset and never mutated
// after FromArrays/ReadText/ReadCSV returns; Cover only reads
// their backing words (via AttributeWords/LabelWords).
type StaticDataset struct {
	nSamples int
	attrs    []*bitset.BitSet
	labels   []*bitset.BitSet
}

// NumSamples returns N, the training set size.
func (d *StaticDataset) NumSamples() int { return d.nSamples }

// NumAttributes returns A, the feature count.
func (d *StaticDataset) NumAttributes() int { return len(d.attrs) }

// NumLabels returns the number of distinct label classes.
func (d *StaticDataset) NumLabels() int { return len(d.labels) }

// AttributeWords returns the raw 64-bit words backing A[a]. The slice is
// owned by the dataset; callers must treat it as read-only.
func (d *StaticDataset) AttributeWords(a int) []uint64 {
	return d.attrs[a].Bytes()
}

// LabelWords returns the raw 64-bit words backing L[c]. Read-only.
func (d *StaticDataset) LabelWords(c int) []uint64 {
	return d.labels[c].Bytes()
}

// LabelCount returns the number of samples with label c (popcount of L[c]).
func (d *StaticDataset) LabelCount(c int) int {
	return int(d.labels[c].Count())
}

// FromArrays builds a StaticDataset from a dense feature matrix (one []int
// of 0/1 values per sample) and a parallel label slice. Labels must be
// small nonnegative integers; the label space is inferred as
// [0, max(labels)].
func FromArrays(features [][]int, labels []int) (*StaticDataset, error) {
	if len(features) == 0 {
		return nil, ErrNoSamples
	}
	if len(features) != len(labels) {
		return nil, ErrLabelMismatch
	}
	nAttrs := len(features[0])
	maxLabel := 0
	for i, row := range features {
		if len(row) != nAttrs {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedRows, i, len(row), nAttrs)
		}
		if labels[i] < 0 {
			return nil, ErrNegativeLabel
		}
		if labels[i] > maxLabel {
			maxLabel = labels[i]
		}
	}

	n := uint(len(features))
	attrs := make([]*bitset.BitSet, nAttrs)
	for a := range attrs {
		attrs[a] = bitset.New(n)
	}
	lbls := make([]*bitset.BitSet, maxLabel+1)
	for c := range lbls {
		lbls[c] = bitset.New(n)
	}

	for i, row := range features {
		for a, v := range row {
			switch v {
			case 0:
			case 1:
				attrs[a].Set(uint(i))
			default:
				return nil, fmt.Errorf("%w: sample %d attribute %d = %d", ErrNotBinary, i, a, v)
			}
		}
		lbls[labels[i]].Set(uint(i))
	}

	return &StaticDataset{nSamples: len(features), attrs: attrs, labels: lbls}, nil
}
