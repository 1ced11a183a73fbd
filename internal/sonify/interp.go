package sonify

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

type fitPredictor interface {
	Fit(xs, ys []float64) error
	Predict(x float64) float64
}

// resample evaluates a smooth curve through (day, ys[day]) at every grid point.
// Three or more days use a natural cubic spline; two days fall back to a line.
func resample(ys, grid []float64) ([]float64, error) {
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}

	var fp fitPredictor
	if len(ys) >= 3 {
		fp = &interp.NaturalCubic{}
	} else {
		fp = &interp.PiecewiseLinear{}
	}
	if err := fp.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit curve: %w", err)
	}

	out := make([]float64, len(grid))
	for i, x := range grid {
		out[i] = fp.Predict(x)
	}
	return out, nil
}

func clampMin(x []float64, lo float64) []float64 {
	for i, v := range x {
		if v < lo {
			x[i] = lo
		}
	}
	return x
}
