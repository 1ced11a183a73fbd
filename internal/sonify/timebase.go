package sonify

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// TimeBase maps day indices in [0, Days-1] onto the sample timeline.
type TimeBase struct {
	SampleRate   int
	Days         int
	TotalSamples int
}

// NewTimeBase returns the timeline for a render of durationSeconds at sampleRate.
func NewTimeBase(sampleRate int, durationSeconds float64, days int) TimeBase {
	return TimeBase{
		SampleRate:   sampleRate,
		Days:         days,
		TotalSamples: int(math.Round(durationSeconds * float64(sampleRate))),
	}
}

// SamplesPerDay is the (fractional) width of one day slot.
func (tb TimeBase) SamplesPerDay() float64 {
	return float64(tb.TotalSamples) / float64(tb.Days)
}

// DayOnset returns the first sample of a day slot.
func (tb TimeBase) DayOnset(day int) int {
	return int(float64(day) * tb.SamplesPerDay())
}

// LagSamples converts a lag in day slots to whole samples. Lags of a full
// clip or more saturate at TotalSamples.
func (tb TimeBase) LagSamples(lagDays int) int {
	if lagDays >= tb.Days {
		return tb.TotalSamples
	}
	return int(float64(lagDays) * tb.SamplesPerDay())
}

// Samples converts a duration in seconds to a whole number of samples.
func (tb TimeBase) Samples(seconds float64) int {
	return int(seconds * float64(tb.SampleRate))
}

// DayGrid spreads the day domain [0, Days-1] evenly across every sample.
func (tb TimeBase) DayGrid() []float64 {
	grid := make([]float64, tb.TotalSamples)
	if len(grid) < 2 {
		return grid
	}
	return floats.Span(grid, 0, float64(tb.Days-1))
}

// TimeGrid returns the time in seconds of every sample.
func (tb TimeBase) TimeGrid() []float64 {
	t := make([]float64, tb.TotalSamples)
	sr := float64(tb.SampleRate)
	for i := range t {
		t[i] = float64(i) / sr
	}
	return t
}
