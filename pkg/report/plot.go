package report

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"outlierprep/pkg/core"
)

// MaskPoints splits X into kept and outlier points. Single-column tables
// plot row index against value; wider tables plot column 0 against 1.
func MaskPoints(X *core.Matrix, mask []bool) (kept, outliers plotter.XYs, err error) {
	if len(mask) != X.R {
		return nil, nil, fmt.Errorf("mask has %d entries for %d rows", len(mask), X.R)
	}
	if X.C == 0 {
		return nil, nil, errors.New("table has no columns")
	}
	for i := 0; i < X.R; i++ {
		pt := plotter.XY{X: float64(i), Y: X.At(i, 0)}
		if X.C > 1 {
			pt = plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)}
		}
		if mask[i] {
			outliers = append(outliers, pt)
		} else {
			kept = append(kept, pt)
		}
	}
	return kept, outliers, nil
}

// PlotMask saves a scatter chart of kept and discarded rows. The format
// follows the file extension of path.
func PlotMask(X *core.Matrix, headers []string, mask []bool, path string) error {
	kept, outliers, err := MaskPoints(X, mask)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Outlier filter"
	if X.C > 1 {
		p.X.Label.Text, p.Y.Label.Text = label(headers, 0), label(headers, 1)
	} else {
		p.X.Label.Text, p.Y.Label.Text = "row", label(headers, 0)
	}

	if len(kept) > 0 {
		s, err := plotter.NewScatter(kept)
		if err != nil {
			return fmt.Errorf("kept scatter: %w", err)
		}
		s.Color = color.RGBA{B: 255, A: 255, R: 50, G: 50}
		s.Radius = vg.Points(1.5)
		p.Add(s)
		p.Legend.Add("kept", s)
	}
	if len(outliers) > 0 {
		s, err := plotter.NewScatter(outliers)
		if err != nil {
			return fmt.Errorf("outlier scatter: %w", err)
		}
		s.Color = color.RGBA{R: 255, A: 255}
		s.Shape = draw.CrossGlyph{}
		s.Radius = vg.Points(4)
		p.Add(s)
		p.Legend.Add("outlier", s)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func label(headers []string, i int) string {
	if i < len(headers) {
		return headers[i]
	}
	return fmt.Sprintf("x%d", i)
}
