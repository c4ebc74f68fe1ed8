package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"outlierprep/pkg/core"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Std computes the population standard deviation of a slice.
func Std(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.PopStdDev(x, nil)
}

// Median returns the median value of the slice (allocates a copy).
// Even lengths average the two middle values; an empty slice yields 0 and
// any NaN in x yields NaN.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	if floats.HasNaN(x) {
		return math.NaN()
	}
	m, _ := mstats.Median(x)
	return m
}

// NaNMedian is Median over the non-NaN values of x.
func NaNMedian(x []float64) float64 {
	vals := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return Median(vals)
}

// ColumnMedians returns the per-column median vector of X. A column
// holding a NaN has a NaN median.
func ColumnMedians(X *core.Matrix) []float64 {
	out := make([]float64, X.C)
	col := make([]float64, X.R)
	for j := 0; j < X.C; j++ {
		for i := 0; i < X.R; i++ {
			col[i] = X.Data[i*X.C+j]
		}
		out[j] = Median(col)
	}
	return out
}

// Distances returns the Euclidean distance of every row of X to center.
func Distances(X *core.Matrix, center []float64) []float64 {
	out := make([]float64, X.R)
	for i := 0; i < X.R; i++ {
		out[i] = floats.Distance(X.Row(i), center, 2)
	}
	return out
}
