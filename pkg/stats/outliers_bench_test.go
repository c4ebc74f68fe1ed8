package stats

import (
	"math"
	"strconv"
	"testing"

	"outlierprep/pkg/core"
)

func makeBenchTable(n, d int) *core.Matrix {
	X := core.NewMatrix(n, d)
	for i := range X.Data {
		X.Data[i] = math.Sin(float64(i) * 0.37)
	}
	return X
}

func BenchmarkRemoveOutliers(b *testing.B) {
	for _, n := range []int{1000, 10000, 100000} {
		X := makeBenchTable(n, 3)
		for _, workers := range []int{1, 4} {
			opts := OutlierOptions{Threshold: DefaultThreshold, WindowFraction: 0.01, Workers: workers}
			b.Run(strconv.Itoa(n)+"/w"+strconv.Itoa(workers), func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(X.Data) * 8))

				for i := 0; i < b.N; i++ {
					_, _ = RemoveOutliers(X, opts)
				}
			})
		}
	}
}
