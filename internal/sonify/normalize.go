package sonify

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// epsilon keeps min-max and ratio denominators away from zero.
const epsilon = 1e-9

// NormalizedCurve is a read-only view of a series scaled into [0, 1].
type NormalizedCurve struct {
	Raw []float64
	// LogNorm is log1p(Raw) min-max scaled. Drives pitch.
	LogNorm []float64
	// LinearNorm is Raw min-max scaled. Drives loudness.
	LinearNorm []float64
}

// Normalize builds the log-compressed and linear views of series.
func Normalize(series []float64) NormalizedCurve {
	logged := make([]float64, len(series))
	for i, v := range series {
		logged[i] = math.Log1p(v)
	}
	return NormalizedCurve{
		Raw:        series,
		LogNorm:    minMax(logged),
		LinearNorm: minMax(append([]float64(nil), series...)),
	}
}

// minMax rescales x in place to (x-min)/(max-min+epsilon). A constant input maps to zeros.
func minMax(x []float64) []float64 {
	if len(x) == 0 {
		return x
	}
	lo, hi := floats.Min(x), floats.Max(x)
	span := hi - lo + epsilon
	for i, v := range x {
		x[i] = (v - lo) / span
	}
	return x
}

// ConversionRatio returns revenue[i] / (sessions[i] + epsilon).
func ConversionRatio(sessions, revenue []float64) []float64 {
	out := make([]float64, len(sessions))
	for i := range sessions {
		out[i] = revenue[i] / (sessions[i] + epsilon)
	}
	return out
}
