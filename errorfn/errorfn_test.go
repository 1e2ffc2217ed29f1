package errorfn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/dataset"
	"github.com/dl85go/dl85/errorfn"
)

func TestMisclassification(t *testing.T) {
	tests := []struct {
		name      string
		counts    []int
		wantErr   float64
		wantLabel int
	}{
		{"pure", []int{5, 0}, 0, 0},
		{"majority one", []int{2, 7}, 2, 1},
		{"tie picks lowest label", []int{3, 3}, 3, 0},
		{"empty", []int{0, 0}, 0, 0},
		{"three classes", []int{1, 4, 2}, 3, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotErr, gotLabel := errorfn.Misclassification{}.Compute(tc.counts)
			assert.Equal(t, tc.wantErr, gotErr)
			assert.Equal(t, tc.wantLabel, gotLabel)
		})
	}
}

func TestWrapper_DispatchesOnDataType(t *testing.T) {
	features := [][]int{{1}, {1}, {0}}
	labels := []int{1, 1, 0}
	d, err := dataset.FromArrays(features, labels)
	require.NoError(t, err)
	c := cover.New(d)

	counts, err := errorfn.NewWrapper(core.ClassesSupport, errorfn.Misclassification{}, nil)
	require.NoError(t, err)
	e, out := counts.Leaf(c)
	assert.Equal(t, 1.0, e)
	assert.Equal(t, 1, out)

	var seen []int
	tids, err := errorfn.NewWrapper(core.Tids, nil, errorfn.TidsFunc(func(ts []int) (float64, int) {
		seen = ts

		return float64(len(ts)), 9
	}))
	require.NoError(t, err)
	e, out = tids.Leaf(c)
	assert.Equal(t, 3.0, e)
	assert.Equal(t, 9, out)
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestNewWrapper_MissingCapability(t *testing.T) {
	_, err := errorfn.NewWrapper(core.ClassesSupport, nil, nil)
	assert.ErrorIs(t, err, core.ErrMissingCapability)

	_, err = errorfn.NewWrapper(core.Tids, errorfn.Misclassification{}, nil)
	assert.ErrorIs(t, err, core.ErrMissingCapability)
}
