package sonify

import "math"

// voice bundles the timbre and effects of one channel. Both render
// strategies synthesize through the same two voices.
type voice struct {
	Timbre   Timbre
	Detune   []float64 // chorus factors; empty means a single oscillator
	Vibrato  *Vibrato
	CutoffHz float64
	Taps     []Tap // continuous-mode room
	NoteTaps []Tap // per-note room in per-day mode
	Envelope Envelope
}

var (
	trafficVoice = voice{
		Timbre:   Organ,
		Vibrato:  &Vibrato{RateHz: 5.2, Depth: 0.004},
		CutoffHz: 1000,
		Taps:     []Tap{{18, 0.20}, {37, 0.12}, {58, 0.07}},
		Envelope: Envelope{AttackSeconds: 0.006, DecayRate: 3.2},
	}
	echoVoice = voice{
		Timbre:   Bright,
		Detune:   []float64{1.000, 1.015, 0.985},
		CutoffHz: 2500,
		Taps:     []Tap{{28, 0.45}, {55, 0.32}, {90, 0.20}, {135, 0.12}},
		NoteTaps: []Tap{{28, 0.35}, {55, 0.20}},
		Envelope: Envelope{AttackSeconds: 0.006, DecayRate: 2.2},
	}
)

func (v voice) detunes() []float64 {
	if len(v.Detune) == 0 {
		return []float64{1}
	}
	return v.Detune
}

// glide renders a continuous tone that follows a frequency/amplitude trajectory.
func (v voice) glide(tr Trajectory, sampleRate int) []float64 {
	n := len(tr.Freq)
	var mod []float64
	if v.Vibrato != nil {
		mod = v.Vibrato.Modulation(n, sampleRate)
	}

	detunes := v.detunes()
	mix := make([]float64, n)
	for _, d := range detunes {
		phase := AccumulatePhase(tr.Freq, mod, d, sampleRate)
		for i, ph := range phase {
			mix[i] += v.Timbre.Sample(ph)
		}
	}
	voices := float64(len(detunes))
	for i := range mix {
		mix[i] = mix[i] / voices * tr.Amp[i]
	}

	out := LowPass(mix, v.CutoffHz, sampleRate)
	return MultiTapDelay(out, v.Taps, sampleRate)
}

// pluck renders one enveloped note at a fixed frequency.
func (v voice) pluck(n Note, sampleRate int) []float64 {
	if n.Length <= 0 {
		return nil
	}
	env := v.Envelope.Shape(n.Length, sampleRate)
	detunes := v.detunes()
	voices := float64(len(detunes))
	sr := float64(sampleRate)

	mix := make([]float64, n.Length)
	for i := range mix {
		t := float64(i) / sr
		sum := 0.0
		for _, d := range detunes {
			sum += v.Timbre.Sample(2 * math.Pi * n.Freq * d * t)
		}
		mix[i] = sum / voices * n.Amp * env[i]
	}

	out := LowPass(mix, v.CutoffHz, sampleRate)
	if len(v.NoteTaps) > 0 {
		out = MultiTapDelay(out, v.NoteTaps, sampleRate)
	}
	return out
}
