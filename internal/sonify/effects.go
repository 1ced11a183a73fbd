package sonify

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// Tap is one delayed copy in a multi-tap delay.
type Tap struct {
	DelayMs float64
	Gain    float64
}

// butterworthQ is the resonance of a maximally flat 2-pole section.
var butterworthQ = 1 / math.Sqrt2

// LowPass runs a 2-pole Butterworth low-pass over signal and returns a new slice.
// Cutoffs at or above Nyquist are clamped to 0.99·Nyquist.
func LowPass(signal []float64, cutoffHz float64, sampleRate int) []float64 {
	out := make([]float64, len(signal))
	sr := float64(sampleRate)
	cutoff := math.Min(cutoffHz, 0.99*sr/2)
	if cutoff <= 0 {
		return out
	}

	section := biquad.NewSection(design.Lowpass(cutoff, butterworthQ, sr))
	for i, x := range signal {
		out[i] = section.ProcessSample(x)
	}
	return out
}

// MultiTapDelay adds one delayed, attenuated copy of the dry signal per tap.
// Every tap reads the dry input, never another tap's output, so the tail is
// bounded and the result is a linear superposition. Taps that land past the
// end of the signal are dropped.
func MultiTapDelay(signal []float64, taps []Tap, sampleRate int) []float64 {
	out := append([]float64(nil), signal...)
	n := len(signal)
	for _, tap := range taps {
		d := int(float64(sampleRate) * tap.DelayMs / 1000)
		if d < 0 || d >= n {
			continue
		}
		for i := d; i < n; i++ {
			out[i] += signal[i-d] * tap.Gain
		}
	}
	return out
}
