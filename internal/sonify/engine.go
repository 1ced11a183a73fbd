// Package sonify renders a leading traffic series and a lagging revenue
// series into a deterministic stereo buffer. Left carries traffic, right
// carries the revenue echo delayed by the configured lag.
package sonify

import (
	"errors"
	"fmt"
	"math"

	"SalesEcho/internal/model"
)

var (
	ErrLengthMismatch    = errors.New("sessions and revenue differ in length")
	ErrTooFewDays        = errors.New("at least 2 days are required")
	ErrInvalidInput      = errors.New("invalid series value")
	ErrInvalidParameters = errors.New("invalid render parameters")
)

// Validate checks shapes, values and parameters before any synthesis runs.
func Validate(sessions []int, revenue []float64, p model.RenderParameters) error {
	if len(sessions) != len(revenue) {
		return fmt.Errorf("%w: %d sessions vs %d revenue", ErrLengthMismatch, len(sessions), len(revenue))
	}
	if len(sessions) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewDays, len(sessions))
	}
	for i, s := range sessions {
		if s < 0 {
			return fmt.Errorf("%w: sessions[%d] = %d", ErrInvalidInput, i, s)
		}
	}
	for i, r := range revenue {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return fmt.Errorf("%w: revenue[%d] = %v", ErrInvalidInput, i, r)
		}
	}

	if p.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidParameters, p.SampleRate)
	}
	if math.IsNaN(p.DurationSeconds) || math.IsInf(p.DurationSeconds, 0) || p.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration %v", ErrInvalidParameters, p.DurationSeconds)
	}
	if math.Round(p.DurationSeconds*float64(p.SampleRate)) < 1 {
		return fmt.Errorf("%w: duration %v is shorter than one sample", ErrInvalidParameters, p.DurationSeconds)
	}
	if p.LagDays < 0 {
		return fmt.Errorf("%w: lag %d days", ErrInvalidParameters, p.LagDays)
	}
	if p.Mode != model.ModeContinuous && p.Mode != model.ModePerDay {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidParameters, p.Mode)
	}
	return nil
}

// Render turns the two series into a freshly allocated stereo buffer of
// round(duration·sampleRate) frames. Identical inputs give bit-identical output.
func Render(sessions []int, revenue []float64, p model.RenderParameters) (*model.AudioBuffer, error) {
	if err := Validate(sessions, revenue, p); err != nil {
		return nil, err
	}

	s := make([]float64, len(sessions))
	for i, v := range sessions {
		s[i] = float64(v)
	}
	r := append([]float64(nil), revenue...)

	strategy, err := StrategyFor(p.Mode)
	if err != nil {
		return nil, err
	}
	tb := NewTimeBase(p.SampleRate, p.DurationSeconds, len(s))
	left, right, err := strategy.Render(s, r, tb, p.LagDays)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", p.Mode, err)
	}
	return Mix(left, right, tb, p), nil
}

// RenderSeries renders a collected DailySeries.
func RenderSeries(series *model.DailySeries, p model.RenderParameters) (*model.AudioBuffer, error) {
	return Render(series.Sessions, series.Revenue, p)
}
