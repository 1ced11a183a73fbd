package sonify

import "math"

// PitchMapper maps a normalized value onto an exponential frequency range.
type PitchMapper struct {
	BaseHz  float64
	Octaves float64
}

// Frequency returns BaseHz * 2^(Octaves*u).
func (p PitchMapper) Frequency(u float64) float64 {
	return p.BaseHz * math.Exp2(p.Octaves*u)
}

// MaxFrequency is the frequency reached at u = 1.
func (p PitchMapper) MaxFrequency() float64 {
	return p.Frequency(1)
}

// AmplitudeMapper maps a normalized value onto a linear loudness range.
type AmplitudeMapper struct {
	Floor float64
	Range float64
}

// Amplitude returns Floor + Range*u.
func (a AmplitudeMapper) Amplitude(u float64) float64 {
	return a.Floor + a.Range*u
}

// Both channels share one range so left and right pitch compare directly (80-640 Hz).
var (
	DefaultPitch     = PitchMapper{BaseHz: 80, Octaves: 3}
	DefaultAmplitude = AmplitudeMapper{Floor: 0.25, Range: 0.55}
)
