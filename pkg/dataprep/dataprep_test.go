package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlierprep/pkg/core"
)

func TestImputeMedian(t *testing.T) {
	nan := math.NaN()
	X, err := core.FromSlice([][]float64{{1, nan, nan}, {nan, 4, nan}, {3, 8, nan}, {10, 6, nan}})
	require.NoError(t, err)

	out, n := ImputeMedian(X)
	assert.Equal(t, 6, n)
	assert.Equal(t, [][]float64{{1, 6, 0}, {3, 4, 0}, {3, 8, 0}, {10, 6, 0}}, out.ToSlice())
	assert.True(t, math.IsNaN(X.At(0, 1)), "input untouched")
}

func TestImputeMedianNoMissing(t *testing.T) {
	X := core.FromVector([]float64{1, 2, 3})
	out, n := ImputeMedian(X)
	assert.Equal(t, 0, n)
	assert.Equal(t, X, out)
}

func TestDuplicateMask(t *testing.T) {
	X, err := core.FromSlice([][]float64{{1, 2}, {3, 4}, {1, 2}, {3, 5}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, false, true}, DuplicateMask(X))
}

func TestDuplicateMaskSignedZero(t *testing.T) {
	X, err := core.FromSlice([][]float64{{0, 1}, {math.Copysign(0, -1), 1}, {1, 0}})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, DuplicateMask(X))
}
