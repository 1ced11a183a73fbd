package sonify

import "math"

// Envelope is a linear attack followed by exponential decay, used for discrete notes.
type Envelope struct {
	AttackSeconds float64
	DecayRate     float64 // per second
}

// Shape returns n envelope gains at sampleRate.
func (e Envelope) Shape(n, sampleRate int) []float64 {
	env := make([]float64, n)
	sr := float64(sampleRate)
	for i := range env {
		env[i] = math.Exp(-float64(i) / sr * e.DecayRate)
	}
	attack := int(e.AttackSeconds * sr)
	if attack > n {
		attack = n
	}
	for i := 0; i < attack; i++ {
		if attack == 1 {
			env[i] = 0
			break
		}
		env[i] = float64(i) / float64(attack-1)
	}
	return env
}

// Vibrato is a slow sinusoidal frequency modulation for continuous tones.
type Vibrato struct {
	RateHz float64
	Depth  float64 // fraction of the carrier, 0.004 = ±0.4%
}

// Modulation returns the per-sample frequency factor 1 + Depth·sin(2π·Rate·t).
func (v Vibrato) Modulation(n, sampleRate int) []float64 {
	mod := make([]float64, n)
	w := 2 * math.Pi * v.RateHz / float64(sampleRate)
	for i := range mod {
		mod[i] = 1 + v.Depth*math.Sin(w*float64(i))
	}
	return mod
}
