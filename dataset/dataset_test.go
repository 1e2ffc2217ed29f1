package dataset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl85go/dl85/dataset"
)

func TestFromArrays_Basic(t *testing.T) {
	features := [][]int{
		{1, 0},
		{0, 1},
		{1, 1},
	}
	labels := []int{0, 1, 0}

	d, err := dataset.FromArrays(features, labels)
	require.NoError(t, err)
	assert.Equal(t, 3, d.NumSamples())
	assert.Equal(t, 2, d.NumAttributes())
	assert.Equal(t, 2, d.NumLabels())
	assert.Equal(t, 2, d.LabelCount(0))
	assert.Equal(t, 1, d.LabelCount(1))
}

func TestFromArrays_RejectsRaggedRows(t *testing.T) {
	_, err := dataset.FromArrays([][]int{{1, 0}, {1}}, []int{0, 0})
	require.ErrorIs(t, err, dataset.ErrRaggedRows)
}

func TestFromArrays_RejectsNonBinary(t *testing.T) {
	_, err := dataset.FromArrays([][]int{{2, 0}}, []int{0})
	require.ErrorIs(t, err, dataset.ErrNotBinary)
}

func TestFromArrays_RejectsLabelMismatch(t *testing.T) {
	_, err := dataset.FromArrays([][]int{{1, 0}}, []int{0, 1})
	require.ErrorIs(t, err, dataset.ErrLabelMismatch)
}

func TestReadText_SpaceDelimited(t *testing.T) {
	text := "# comment\n0 1 0 1\n1 0 1 1\n0 1 1 0\n"
	d, err := dataset.ReadText(strings.NewReader(text), dataset.DefaultReaderOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, d.NumSamples())
	assert.Equal(t, 3, d.NumAttributes())
}

func TestReadCSV(t *testing.T) {
	text := "1,1,0\n0,0,1\n1,1,1\n"
	d, err := dataset.ReadCSV(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, 3, d.NumSamples())
	assert.Equal(t, 2, d.NumAttributes())
}
