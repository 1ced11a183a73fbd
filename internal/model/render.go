package model

import (
	"fmt"
	"strings"
)

// Mode selects how the engine renders the series.
type Mode string

const (
	ModeContinuous Mode = "continuous"
	ModePerDay     Mode = "per-day"
)

// ParseMode accepts the config and bot spellings of a render mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continuous", "glide":
		return ModeContinuous, nil
	case "per-day", "perday", "per_day", "pluck":
		return ModePerDay, nil
	default:
		return "", fmt.Errorf("unknown sound mode %q", s)
	}
}

// RenderParameters is the immutable per-call configuration of the engine.
type RenderParameters struct {
	LagDays         int
	Mode            Mode
	TicksEnabled    bool
	SampleRate      int
	DurationSeconds float64
}

// Channel indexes a stereo frame.
type Channel int

const (
	ChannelLeft  Channel = 0
	ChannelRight Channel = 1
)

func (c Channel) String() string {
	if c == ChannelLeft {
		return "left"
	}
	return "right"
}

// AudioBuffer is the engine output: Frames[i] = {left, right}, each in [-1, 1].
type AudioBuffer struct {
	Frames          [][2]float64
	SampleRate      int
	DurationSeconds float64
}

// NewAudioBuffer allocates a silent buffer of n frames.
func NewAudioBuffer(n, sampleRate int, duration float64) *AudioBuffer {
	return &AudioBuffer{
		Frames:          make([][2]float64, n),
		SampleRate:      sampleRate,
		DurationSeconds: duration,
	}
}

// Len returns the number of stereo frames.
func (b *AudioBuffer) Len() int { return len(b.Frames) }

// Channel returns a copy of one channel as a mono slice.
func (b *AudioBuffer) Channel(ch Channel) []float64 {
	out := make([]float64, len(b.Frames))
	for i, f := range b.Frames {
		out[i] = f[ch]
	}
	return out
}

// SetChannel overwrites one channel from a mono slice of equal length.
func (b *AudioBuffer) SetChannel(ch Channel, samples []float64) {
	for i := range b.Frames {
		b.Frames[i][ch] = samples[i]
	}
}

// Solo returns a copy with every channel except ch silenced.
func (b *AudioBuffer) Solo(ch Channel) *AudioBuffer {
	out := NewAudioBuffer(len(b.Frames), b.SampleRate, b.DurationSeconds)
	for i, f := range b.Frames {
		out.Frames[i][ch] = f[ch]
	}
	return out
}

// Peak returns the largest absolute sample on a channel.
func (b *AudioBuffer) Peak(ch Channel) float64 {
	peak := 0.0
	for _, f := range b.Frames {
		v := f[ch]
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}
