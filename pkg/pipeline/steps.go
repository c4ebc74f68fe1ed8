package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"outlierprep/pkg/core"
	"outlierprep/pkg/dataprep"
	"outlierprep/pkg/logger"
	"outlierprep/pkg/stats"
)

// OutlierStep removes windowed robust-z outliers. It holds no fitted
// state; every Transform call filters its own input.
type OutlierStep struct {
	opts stats.OutlierOptions
	mask []bool
}

// NewOutlierStep validates opts up front so Transform cannot fail on them.
func NewOutlierStep(opts stats.OutlierOptions) (*OutlierStep, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.ReturnMask = true
	return &OutlierStep{opts: opts}, nil
}

func (s *OutlierStep) Fit(X [][]float64, Y []float64) error { return nil }

func (s *OutlierStep) Transform(X [][]float64) ([][]float64, error) {
	m, err := core.FromSlice(X)
	if err != nil {
		return nil, err
	}
	res, err := stats.RemoveOutliers(m, s.opts)
	if err != nil {
		return nil, err
	}
	s.mask = res.Mask
	logger.Log.Debugw("outliers removed", "rows", m.R, "outliers", m.R-res.Data.R)
	return res.Data.ToSlice(), nil
}

// TransformDense filters a gonum matrix. An input whose rows are all
// outliers yields a nil matrix, since gonum has no empty dense matrix.
func (s *OutlierStep) TransformDense(X mat.Matrix) (*mat.Dense, error) {
	m := core.FromDense(X)
	res, err := stats.RemoveOutliers(m, s.opts)
	if err != nil {
		return nil, err
	}
	s.mask = res.Mask
	logger.Log.Debugw("outliers removed", "rows", m.R, "outliers", m.R-res.Data.R)
	return res.Data.Dense(), nil
}

// LastMask returns the mask of the most recent Transform.
func (s *OutlierStep) LastMask() []bool { return s.mask }

// ImputeStep fills NaN cells with their column median.
type ImputeStep struct{}

func (ImputeStep) Fit(X [][]float64, Y []float64) error { return nil }

func (ImputeStep) Transform(X [][]float64) ([][]float64, error) {
	m, err := core.FromSlice(X)
	if err != nil {
		return nil, err
	}
	out, n := dataprep.ImputeMedian(m)
	if n > 0 {
		logger.Log.Debugw("imputed missing cells", "cells", n)
	}
	return out.ToSlice(), nil
}
