package sonify

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Timbre is an additive sum of sine harmonics: weight k applies to sin((k+1)*phase).
type Timbre []float64

var (
	// Organ is the fundamental-heavy pad used for traffic.
	Organ = Timbre{1.00, 0.50, 0.25, 0.10}
	// Bright carries strong upper harmonics so the revenue echo stays distinguishable.
	Bright = Timbre{1.00, 0.80, 0.60, 0.45, 0.30, 0.18}
)

// Sample evaluates the timbre at one instantaneous phase.
func (t Timbre) Sample(phase float64) float64 {
	sum := 0.0
	for k, w := range t {
		sum += w * math.Sin(float64(k+1)*phase)
	}
	return sum
}

// AccumulatePhase integrates 2π·freq·mod·detune/sampleRate over the timeline.
// mod may be nil for an unmodulated tone.
func AccumulatePhase(freq, mod []float64, detune float64, sampleRate int) []float64 {
	step := make([]float64, len(freq))
	k := 2 * math.Pi * detune / float64(sampleRate)
	for i, f := range freq {
		m := 1.0
		if mod != nil {
			m = mod[i]
		}
		step[i] = k * f * m
	}
	return floats.CumSum(step, step)
}
