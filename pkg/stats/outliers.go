package stats

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"outlierprep/pkg/core"
)

// Based on http://www.itl.nist.gov/div898/handbook/eda/section3/eda35h.htm

const (
	DefaultThreshold      = 3.5
	DefaultWindowFraction = 0.05

	// OutlierFactor scales the median deviation so the score is comparable
	// to a standard z-score under normality.
	OutlierFactor = 0.6745
)

// ErrInvalidArgument is wrapped by every parameter validation failure.
var ErrInvalidArgument = errors.New("invalid argument")

// OutlierOptions configures RemoveOutliers.
type OutlierOptions struct {
	// Threshold is the modified z-score above which a row is an outlier.
	Threshold float64
	// WindowFraction sets the window length to floor(N * WindowFraction).
	// A zero window length puts the whole table in one window.
	WindowFraction float64
	// ReturnMask requests the per-row outlier mask in the result.
	ReturnMask bool
	// Workers > 1 scores windows concurrently. Output is identical.
	Workers int
}

// DefaultOutlierOptions returns threshold 3.5, window fraction 0.05, no mask.
func DefaultOutlierOptions() OutlierOptions {
	return OutlierOptions{Threshold: DefaultThreshold, WindowFraction: DefaultWindowFraction}
}

// Validate checks Threshold and WindowFraction.
func (o OutlierOptions) Validate() error {
	t, wf := o.Threshold, o.WindowFraction
	if t < 0 {
		return fmt.Errorf("%w: threshold must be non-negative, got %v", ErrInvalidArgument, t)
	} else if math.IsInf(t, 0) || math.IsNaN(t) {
		return fmt.Errorf("%w: threshold must be finite, got %v", ErrInvalidArgument, t)
	}

	if wf < 0 || wf > 1 {
		return fmt.Errorf("%w: window_fraction must be a fraction in [0,1], got %v", ErrInvalidArgument, wf)
	} else if math.IsInf(wf, 0) || math.IsNaN(wf) {
		return fmt.Errorf("%w: window_fraction must be finite, got %v", ErrInvalidArgument, wf)
	}
	return nil
}

// OutlierResult holds the retained rows and, when requested, the mask.
// Mask[i] is true when input row i was discarded.
type OutlierResult struct {
	Data *core.Matrix
	Mask []bool
}

// RemoveOutliers drops rows of X whose windowed modified z-score exceeds
// opts.Threshold. X is not modified. Retained rows keep their input order.
func RemoveOutliers(X *core.Matrix, opts OutlierOptions) (*OutlierResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	mask := OutlierMask(X, opts.Threshold, WindowLength(X.R, opts.WindowFraction), opts.Workers)
	res := &OutlierResult{Data: X.Drop(mask)}
	if opts.ReturnMask {
		res.Mask = mask
	}
	return res, nil
}

// RemoveOutliers1D is RemoveOutliers for a scalar series. The returned mask
// is nil unless opts.ReturnMask is set.
func RemoveOutliers1D(x []float64, opts OutlierOptions) ([]float64, []bool, error) {
	res, err := RemoveOutliers(core.FromVector(x), opts)
	if err != nil {
		return nil, nil, err
	}
	return res.Data.Flatten(), res.Mask, nil
}

// WindowLength returns floor(n * fraction).
func WindowLength(n int, fraction float64) int {
	return int(math.Floor(float64(n) * fraction))
}

// Windows splits [0, n) into consecutive [start, end) ranges of length wl.
// The last range holds the remainder. wl <= 0 yields a single range.
func Windows(n, wl int) [][2]int {
	if n == 0 {
		return nil
	}
	if wl <= 0 || wl >= n {
		return [][2]int{{0, n}}
	}
	out := make([][2]int, 0, (n+wl-1)/wl)
	for start := 0; start < n; start += wl {
		out = append(out, [2]int{start, min(start+wl, n)})
	}
	return out
}

// OutlierMask scores every window of X and returns the concatenated mask.
// Validation is the caller's job.
func OutlierMask(X *core.Matrix, threshold float64, wl, workers int) []bool {
	windows := Windows(X.R, wl)
	mask := make([]bool, X.R)

	run := func(w [2]int) {
		for i, z := range ModifiedZScores(X.Rows(w[0], w[1])) {
			mask[w[0]+i] = z > threshold
		}
	}

	if workers <= 1 || len(windows) < 2 {
		for _, w := range windows {
			run(w)
		}
		return mask
	}

	// windows write disjoint ranges of mask, so no locking is needed
	workers = min(workers, runtime.GOMAXPROCS(0), len(windows))
	chunk := (len(windows) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, len(windows))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for _, win := range windows[s:e] {
				run(win)
			}
		}(start, end)
	}
	wg.Wait()
	return mask
}

// ModifiedZScores scores every row of W against the window's median row.
// When the median deviation is zero, rows away from the median score +Inf
// and rows on it score 0. A NaN anywhere in W makes every score NaN, so
// the whole window is kept.
func ModifiedZScores(W *core.Matrix) []float64 {
	dist := Distances(W, ColumnMedians(W))
	mad := Median(dist)

	scores := make([]float64, len(dist))
	for i, d := range dist {
		if mad == 0 {
			if d > 0 {
				scores[i] = math.Inf(1)
			}
			continue
		}
		scores[i] = OutlierFactor * d / mad
	}
	return scores
}
