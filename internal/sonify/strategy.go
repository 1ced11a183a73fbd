package sonify

import (
	"fmt"

	"SalesEcho/internal/model"
)

// Strategy renders the leading (left) and lagging (right) channels for one mode.
// Both channels come back unnormalized and TotalSamples long.
type Strategy interface {
	Render(sessions, revenue []float64, tb TimeBase, lagDays int) (left, right []float64, err error)
}

// StrategyFor selects the render strategy for a mode tag.
func StrategyFor(mode model.Mode) (Strategy, error) {
	switch mode {
	case model.ModeContinuous:
		return NewContinuous(), nil
	case model.ModePerDay:
		return NewPerDay(), nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameters, mode)
	}
}

// Trajectory is a per-sample frequency and amplitude track.
type Trajectory struct {
	Freq []float64
	Amp  []float64
}

// Continuous glides both channels smoothly across every day.
type Continuous struct {
	Pitch   PitchMapper
	Amp     AmplitudeMapper
	Traffic voice
	Echo    voice
}

// NewContinuous returns the glide strategy with the shared mappers and voices.
func NewContinuous() *Continuous {
	return &Continuous{
		Pitch:   DefaultPitch,
		Amp:     DefaultAmplitude,
		Traffic: trafficVoice,
		Echo:    echoVoice,
	}
}

// Trajectories resamples both series onto the sample timeline and maps them.
// The echo track follows the conversion ratio, not raw revenue.
func (c *Continuous) Trajectories(sessions, revenue []float64, tb TimeBase) (traffic, echo Trajectory, err error) {
	grid := tb.DayGrid()
	s, err := resample(sessions, grid)
	if err != nil {
		return traffic, echo, err
	}
	r, err := resample(revenue, grid)
	if err != nil {
		return traffic, echo, err
	}
	clampMin(s, 1)
	clampMin(r, 0)

	traffic = c.trajectory(Normalize(s))
	echo = c.trajectory(Normalize(ConversionRatio(s, r)))
	return traffic, echo, nil
}

func (c *Continuous) trajectory(curve NormalizedCurve) Trajectory {
	tr := Trajectory{
		Freq: make([]float64, len(curve.Raw)),
		Amp:  make([]float64, len(curve.Raw)),
	}
	for i := range curve.Raw {
		tr.Freq[i] = c.Pitch.Frequency(curve.LogNorm[i])
		tr.Amp[i] = c.Amp.Amplitude(curve.LinearNorm[i])
	}
	return tr
}

func (c *Continuous) Render(sessions, revenue []float64, tb TimeBase, lagDays int) ([]float64, []float64, error) {
	traffic, echo, err := c.Trajectories(sessions, revenue, tb)
	if err != nil {
		return nil, nil, err
	}
	left := c.Traffic.glide(traffic, tb.SampleRate)
	right := ShiftRight(c.Echo.glide(echo, tb.SampleRate), lagDays, tb)
	return left, right, nil
}

// Note is one discrete per-day event.
type Note struct {
	Day    int // source day of the data
	Slot   int // day slot the note sounds in
	Onset  int
	Length int
	Freq   float64
	Amp    float64
}

// PerDay plays one plucked note per day; echo notes land lagDays slots later.
type PerDay struct {
	Pitch    PitchMapper
	Amp      AmplitudeMapper
	Traffic  voice
	Echo     voice
	NoteFill float64 // fraction of a slot the note occupies
}

// NewPerDay returns the pluck strategy with the shared mappers and voices.
func NewPerDay() *PerDay {
	return &PerDay{
		Pitch:    DefaultPitch,
		Amp:      DefaultAmplitude,
		Traffic:  trafficVoice,
		Echo:     echoVoice,
		NoteFill: 0.72,
	}
}

// Notes generates the traffic and echo events. An echo whose slot falls
// beyond the last day slot is omitted.
func (p *PerDay) Notes(sessions, revenue []float64, tb TimeBase, lagDays int) (traffic, echo []Note) {
	sc := Normalize(sessions)
	rc := Normalize(ConversionRatio(sessions, revenue))
	noteLen := int(tb.SamplesPerDay() * p.NoteFill)

	for day := 0; day < tb.Days; day++ {
		onset := tb.DayOnset(day)
		length := min(onset+noteLen, tb.TotalSamples) - onset
		traffic = append(traffic, Note{
			Day:    day,
			Slot:   day,
			Onset:  onset,
			Length: length,
			Freq:   p.Pitch.Frequency(sc.LogNorm[day]),
			Amp:    p.Amp.Amplitude(sc.LinearNorm[day]),
		})

		if lagDays >= tb.Days-day {
			continue
		}
		slot := day + lagDays
		echoOnset := tb.DayOnset(slot)
		echo = append(echo, Note{
			Day:    day,
			Slot:   slot,
			Onset:  echoOnset,
			Length: min(echoOnset+length, tb.TotalSamples) - echoOnset,
			Freq:   p.Pitch.Frequency(rc.LogNorm[day]),
			Amp:    p.Amp.Amplitude(rc.LinearNorm[day]),
		})
	}
	return traffic, echo
}

func (p *PerDay) Render(sessions, revenue []float64, tb TimeBase, lagDays int) ([]float64, []float64, error) {
	traffic, echo := p.Notes(sessions, revenue, tb, lagDays)
	left := make([]float64, tb.TotalSamples)
	right := make([]float64, tb.TotalSamples)
	for _, n := range traffic {
		place(left, p.Traffic.pluck(n, tb.SampleRate), n.Onset)
	}
	for _, n := range echo {
		place(right, p.Echo.pluck(n, tb.SampleRate), n.Onset)
	}
	return left, right, nil
}

func place(dst, note []float64, onset int) {
	for i, v := range note {
		dst[onset+i] += v
	}
}
