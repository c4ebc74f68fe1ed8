package pipeline

import (
	"fmt"

	"outlierprep/pkg/logger"
)

// Transformer interface for fit/transform pattern.
type Transformer interface {
	Fit(X [][]float64, Y []float64) error
	Transform(X [][]float64) ([][]float64, error)
}

// RowDropper is implemented by steps that remove rows. LastMask reports
// which rows of the most recent Transform input were removed.
type RowDropper interface {
	LastMask() []bool
}

// Pipeline chains multiple transformers.
type Pipeline struct {
	steps []Transformer
}

func NewPipeline(steps ...Transformer) *Pipeline {
	return &Pipeline{steps: steps}
}

// Fit fits each step on the output of the previous one. Labels are
// dropped alongside rows removed by a RowDropper so they stay aligned.
func (p *Pipeline) Fit(X [][]float64, Y []float64) error {
	for i, step := range p.steps {
		if err := step.Fit(X, Y); err != nil {
			return fmt.Errorf("fit step %d: %w", i, err)
		}
		out, err := step.Transform(X)
		if err != nil {
			return fmt.Errorf("transform step %d: %w", i, err)
		}
		if d, ok := step.(RowDropper); ok && Y != nil {
			Y = dropLabels(Y, d.LastMask())
		}
		logger.Log.Debugw("pipeline step fitted", "step", i, "rowsIn", len(X), "rowsOut", len(out))
		X = out
	}
	return nil
}

func (p *Pipeline) Transform(X [][]float64) ([][]float64, error) {
	for i, step := range p.steps {
		out, err := step.Transform(X)
		if err != nil {
			return nil, fmt.Errorf("transform step %d: %w", i, err)
		}
		X = out
	}
	return X, nil
}

func dropLabels(Y []float64, mask []bool) []float64 {
	out := make([]float64, 0, len(Y))
	for i, y := range Y {
		if !mask[i] {
			out = append(out, y)
		}
	}
	return out
}
