package sonify

import (
	"math"

	"SalesEcho/internal/model"
)

// TargetPeak is the level both channels are normalized to.
const TargetPeak = 0.80

// Click is a short decaying sine burst.
type Click struct {
	Gain      float64
	DecayRate float64
	FreqHz    float64
	Seconds   float64
}

// DayTick marks every day boundary when ticks are enabled.
var DayTick = Click{Gain: 0.13, DecayRate: 300, FreqHz: 900, Seconds: 0.018}

// Length returns the click length in samples.
func (c Click) Length(sampleRate int) int {
	return int(c.Seconds * float64(sampleRate))
}

// Waveform renders the click at sampleRate.
func (c Click) Waveform(sampleRate int) []float64 {
	n := c.Length(sampleRate)
	wave := make([]float64, n)
	sr := float64(sampleRate)
	for i := range wave {
		t := float64(i) / sr
		wave[i] = math.Exp(-t*c.DecayRate) * math.Sin(2*math.Pi*c.FreqHz*t) * c.Gain
	}
	return wave
}

// PeakNormalize scales signal in place so its peak equals target.
// A silent signal is left untouched.
func PeakNormalize(signal []float64, target float64) {
	peak := 0.0
	for _, v := range signal {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return
	}
	g := target / peak
	for i := range signal {
		signal[i] *= g
	}
}

// OverlayTicks adds DayTick at every day onset on both channels.
func OverlayTicks(buf *model.AudioBuffer, tb TimeBase) {
	wave := DayTick.Waveform(tb.SampleRate)
	for day := 0; day < tb.Days; day++ {
		onset := tb.DayOnset(day)
		for k, v := range wave {
			i := onset + k
			if i >= len(buf.Frames) {
				break
			}
			buf.Frames[i][0] += v
			buf.Frames[i][1] += v
		}
	}
}

// HardClip saturates every sample to [-1, 1]. It never rescales.
func HardClip(buf *model.AudioBuffer) {
	for i := range buf.Frames {
		for ch := range buf.Frames[i] {
			buf.Frames[i][ch] = math.Max(-1, math.Min(1, buf.Frames[i][ch]))
		}
	}
}

// Mix normalizes each channel independently, overlays ticks after
// normalization and clips last.
func Mix(left, right []float64, tb TimeBase, p model.RenderParameters) *model.AudioBuffer {
	PeakNormalize(left, TargetPeak)
	PeakNormalize(right, TargetPeak)

	buf := model.NewAudioBuffer(tb.TotalSamples, p.SampleRate, p.DurationSeconds)
	buf.SetChannel(model.ChannelLeft, left)
	buf.SetChannel(model.ChannelRight, right)

	if p.TicksEnabled {
		OverlayTicks(buf, tb)
	}
	HardClip(buf)
	return buf
}
