package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"outlierprep/pkg/core"
)

func TestMaskPointsSingleColumn(t *testing.T) {
	X := core.FromVector([]float64{1, 50, 2})
	kept, out, err := MaskPoints(X, []bool{false, true, false})
	require.NoError(t, err)
	assert.Equal(t, plotter.XYs{{X: 0, Y: 1}, {X: 2, Y: 2}}, kept)
	assert.Equal(t, plotter.XYs{{X: 1, Y: 50}}, out)
}

func TestMaskPointsTwoColumns(t *testing.T) {
	X, err := core.FromSlice([][]float64{{1, 2, 9}, {3, 4, 9}})
	require.NoError(t, err)
	kept, out, err := MaskPoints(X, []bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, plotter.XYs{{X: 3, Y: 4}}, kept)
	assert.Equal(t, plotter.XYs{{X: 1, Y: 2}}, out)
}

func TestMaskPointsLengthMismatch(t *testing.T) {
	_, _, err := MaskPoints(core.FromVector([]float64{1, 2}), []bool{true})
	assert.ErrorContains(t, err, "mask has 1 entries")
}

func TestPlotMaskWritesFile(t *testing.T) {
	X := core.FromVector([]float64{0.1, 0.2, 90, 0.15})
	path := filepath.Join(t.TempDir(), "mask.svg")
	require.NoError(t, PlotMask(X, []string{"value"}, []bool{false, false, true, false}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
