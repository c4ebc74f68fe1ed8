package dataprep

import (
	"math"

	"outlierprep/pkg/core"
	"outlierprep/pkg/stats"
)

// ImputeMedian returns a copy of X with every NaN replaced by the median of
// the non-NaN values in its column (0 for an all-NaN column), and the
// number of cells replaced.
func ImputeMedian(X *core.Matrix) (*core.Matrix, int) {
	out := X.Clone()
	filled := 0
	for j := 0; j < X.C; j++ {
		col := X.Col(j)
		median := math.NaN()
		for i, v := range col {
			if !math.IsNaN(v) {
				continue
			}
			if math.IsNaN(median) {
				median = stats.NaNMedian(col)
			}
			out.Set(i, j, median)
			filled++
		}
	}
	return out, filled
}
