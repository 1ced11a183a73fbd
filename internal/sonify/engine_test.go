package sonify

import (
	"errors"
	"math"
	"testing"

	"SalesEcho/internal/model"
)

const (
	testRate     = 8000
	testDuration = 3.0 // 24000 samples, 800 per day over 30 days
)

func params(mode model.Mode, lag int, ticks bool) model.RenderParameters {
	return model.RenderParameters{
		LagDays:         lag,
		Mode:            mode,
		TicksEnabled:    ticks,
		SampleRate:      testRate,
		DurationSeconds: testDuration,
	}
}

// trafficFixture mimics a month of store traffic with a few campaign spikes.
func trafficFixture() ([]int, []float64) {
	sessions := make([]int, 30)
	revenue := make([]float64, 30)
	for d := range sessions {
		sessions[d] = int(1400 * (1 + 0.3*math.Sin(2*math.Pi*float64(d)/7+1)) * (1 + float64(d)*0.015))
	}
	sessions[11] *= 3
	sessions[25] = sessions[25] * 9 / 2
	for d := range revenue {
		prev1 := sessions[max(0, d-1)]
		prev2 := sessions[max(0, d-2)]
		revenue[d] = (0.30*float64(sessions[d]) + 0.50*float64(prev1) + 0.20*float64(prev2)) * 87 * 0.034
	}
	return sessions, revenue
}

func TestRender_ShapeAndRange(t *testing.T) {
	sessions, revenue := trafficFixture()
	for _, mode := range []model.Mode{model.ModeContinuous, model.ModePerDay} {
		for _, ticks := range []bool{false, true} {
			buf, err := Render(sessions, revenue, params(mode, 1, ticks))
			if err != nil {
				t.Fatalf("%s ticks=%v: unexpected error: %v", mode, ticks, err)
			}
			if buf.Len() != 24000 {
				t.Fatalf("%s: expected 24000 frames, got %d", mode, buf.Len())
			}
			if buf.SampleRate != testRate || buf.DurationSeconds != testDuration {
				t.Errorf("%s: buffer should carry its sample rate and duration", mode)
			}
			for i, f := range buf.Frames {
				for ch, v := range f {
					if math.IsNaN(v) || math.IsInf(v, 0) || v < -1 || v > 1 {
						t.Fatalf("%s: frame %d ch %d = %v out of [-1,1]", mode, i, ch, v)
					}
				}
			}
			if ticks {
				// Clicks land after normalization and may cancel part of a note.
				continue
			}
			for _, ch := range []model.Channel{model.ChannelLeft, model.ChannelRight} {
				if peak := buf.Peak(ch); peak < 0.79 {
					t.Errorf("%s: %s peak %v, expected normalized near 0.8", mode, ch, peak)
				}
			}
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	sessions, revenue := trafficFixture()
	for _, mode := range []model.Mode{model.ModeContinuous, model.ModePerDay} {
		a, err := Render(sessions, revenue, params(mode, 2, true))
		if err != nil {
			t.Fatal(err)
		}
		b, err := Render(sessions, revenue, params(mode, 2, true))
		if err != nil {
			t.Fatal(err)
		}
		for i := range a.Frames {
			if a.Frames[i] != b.Frames[i] {
				t.Fatalf("%s: frame %d differs between identical renders", mode, i)
			}
		}
		if &a.Frames[0] == &b.Frames[0] {
			t.Fatalf("%s: renders must not share storage", mode)
		}
	}
}

func TestRender_LagBeyondSeriesSilencesEcho(t *testing.T) {
	sessions, revenue := trafficFixture()
	for _, mode := range []model.Mode{model.ModeContinuous, model.ModePerDay} {
		for _, lag := range []int{30, 45, 1 << 40, math.MaxInt} {
			buf, err := Render(sessions, revenue, params(mode, lag, false))
			if err != nil {
				t.Fatalf("%s lag %d: unexpected error: %v", mode, lag, err)
			}
			if peak := buf.Peak(model.ChannelRight); peak != 0 {
				t.Errorf("%s lag %d: expected silent right channel, peak %v", mode, lag, peak)
			}
			if buf.Peak(model.ChannelLeft) == 0 {
				t.Errorf("%s lag %d: traffic channel should still play", mode, lag)
			}
		}
	}
}

func TestRender_ContinuousLagShiftsEcho(t *testing.T) {
	sessions, revenue := trafficFixture()
	buf, err := Render(sessions, revenue, params(model.ModeContinuous, 2, false))
	if err != nil {
		t.Fatal(err)
	}
	right := buf.Channel(model.ChannelRight)
	for i := 0; i < 1600; i++ {
		if right[i] != 0 {
			t.Fatalf("expected zero head for 2 lag days, got %v at %d", right[i], i)
		}
	}
	if right[1600+100] == 0 {
		t.Error("expected echo to start after the lag")
	}
}

func TestRender_PerDayZeroLagAligned(t *testing.T) {
	sessions, revenue := trafficFixture()
	tb := NewTimeBase(testRate, testDuration, 30)
	traffic, echo := NewPerDay().Notes(toFloat(sessions), revenue, tb, 0)
	if len(echo) != len(traffic) {
		t.Fatalf("expected %d echo notes, got %d", len(traffic), len(echo))
	}
	for i := range traffic {
		if echo[i].Onset != traffic[i].Onset || echo[i].Slot != traffic[i].Slot {
			t.Errorf("day %d: echo at %d, traffic at %d", i, echo[i].Onset, traffic[i].Onset)
		}
	}

	buf, err := Render(sessions, revenue, params(model.ModePerDay, 0, false))
	if err != nil {
		t.Fatal(err)
	}
	noteLen := int(tb.SamplesPerDay() * 0.72)
	for day := 0; day < 30; day++ {
		onset := tb.DayOnset(day)
		for _, ch := range []model.Channel{model.ChannelLeft, model.ChannelRight} {
			if buf.Frames[onset+noteLen/2][ch] == 0 {
				t.Errorf("day %d %s: expected a sounding note mid-slot", day, ch)
			}
			if v := buf.Frames[onset+noteLen+10][ch]; v != 0 {
				t.Errorf("day %d %s: expected silent gap, got %v", day, ch, v)
			}
		}
	}
}

func TestRender_PerDayConstantSeries(t *testing.T) {
	sessions := constSessions(30, 1000)
	revenue := constRevenue(30, 50)
	tb := NewTimeBase(testRate, testDuration, 30)

	traffic, echo := NewPerDay().Notes(toFloat(sessions), revenue, tb, 1)
	if len(traffic) != 30 {
		t.Fatalf("expected 30 traffic notes, got %d", len(traffic))
	}
	if len(echo) != 29 {
		t.Fatalf("expected 29 echo notes (day 29 omitted), got %d", len(echo))
	}
	for _, n := range traffic {
		if n.Freq != 80 || n.Amp != 0.25 {
			t.Errorf("day %d: expected 80Hz/0.25, got %v/%v", n.Day, n.Freq, n.Amp)
		}
	}
	for i, n := range echo {
		if n.Day != i || n.Slot != i+1 {
			t.Errorf("echo %d: expected day %d in slot %d, got day %d slot %d", i, i, i+1, n.Day, n.Slot)
		}
		if n.Freq != 80 || n.Amp != 0.25 {
			t.Errorf("echo %d: expected 80Hz/0.25, got %v/%v", i, n.Freq, n.Amp)
		}
	}

	buf, err := Render(sessions, revenue, params(model.ModePerDay, 1, false))
	if err != nil {
		t.Fatal(err)
	}
	left := buf.Channel(model.ChannelLeft)
	right := buf.Channel(model.ChannelRight)
	assertFinite(t, "left", left)
	assertFinite(t, "right", right)

	spd := 800
	for day := 1; day < 30; day++ {
		for k := 0; k < spd; k++ {
			if left[day*spd+k] != left[k] {
				t.Fatalf("traffic note %d differs from note 0 at sample %d", day, k)
			}
		}
	}
	for k := 0; k < spd; k++ {
		if right[k] != 0 {
			t.Fatalf("slot 0 of the echo channel must be silent, got %v at %d", right[k], k)
		}
	}
	for day := 2; day < 30; day++ {
		for k := 0; k < spd; k++ {
			if right[day*spd+k] != right[spd+k] {
				t.Fatalf("echo in slot %d differs from slot 1 at sample %d", day, k)
			}
		}
	}
	if right[spd+100] == 0 {
		t.Error("expected an echo note in slot 1")
	}
}

func TestRender_ConstantContinuousStaysFinite(t *testing.T) {
	sessions := constSessions(30, 1000)
	revenue := constRevenue(30, 50)
	buf, err := Render(sessions, revenue, params(model.ModeContinuous, 1, false))
	if err != nil {
		t.Fatal(err)
	}
	assertFinite(t, "left", buf.Channel(model.ChannelLeft))
	assertFinite(t, "right", buf.Channel(model.ChannelRight))

	tb := NewTimeBase(testRate, testDuration, 30)
	traffic, echo, err := NewContinuous().Trajectories(toFloat(sessions), revenue, tb)
	if err != nil {
		t.Fatal(err)
	}
	for i := range traffic.Freq {
		if !approx(traffic.Freq[i], 80, 1) || !approx(echo.Freq[i], 80, 1) {
			t.Fatalf("sample %d: expected base frequency, got %v / %v", i, traffic.Freq[i], echo.Freq[i])
		}
	}
}

func TestContinuous_OutlierDoesNotPinPitch(t *testing.T) {
	sessions := constRevenue(30, 1000)
	sessions[15] = 10000
	revenue := make([]float64, 30)
	for i := range revenue {
		revenue[i] = sessions[i] * 0.05
	}
	tb := NewTimeBase(testRate, testDuration, 30)
	traffic, _, err := NewContinuous().Trajectories(sessions, revenue, tb)
	if err != nil {
		t.Fatal(err)
	}

	maxHz := DefaultPitch.MaxFrequency()
	grid := tb.DayGrid()
	spikeTop := 0.0
	for i, day := range grid {
		if math.Abs(day-15) >= 2 {
			if traffic.Freq[i] >= 0.7*maxHz {
				t.Fatalf("sample %d (day %.2f): %v Hz pinned near the top", i, day, traffic.Freq[i])
			}
		}
		if math.Abs(day-15) < 0.5 {
			spikeTop = math.Max(spikeTop, traffic.Freq[i])
		}
	}
	if spikeTop < 0.9*maxHz {
		t.Errorf("spike should reach the top of the range, got %v Hz", spikeTop)
	}
}

func TestRender_TicksOnlyTouchDayBoundaries(t *testing.T) {
	sessions, revenue := trafficFixture()
	tb := NewTimeBase(testRate, testDuration, 30)
	click := DayTick.Length(testRate)

	inWindow := make([]bool, tb.TotalSamples)
	for day := 0; day < 30; day++ {
		onset := tb.DayOnset(day)
		for k := 0; k < click && onset+k < len(inWindow); k++ {
			inWindow[onset+k] = true
		}
	}

	for _, mode := range []model.Mode{model.ModeContinuous, model.ModePerDay} {
		on, err := Render(sessions, revenue, params(mode, 1, true))
		if err != nil {
			t.Fatal(err)
		}
		off, err := Render(sessions, revenue, params(mode, 1, false))
		if err != nil {
			t.Fatal(err)
		}
		audible := 0
		for i := range on.Frames {
			for ch := 0; ch < 2; ch++ {
				diff := math.Abs(on.Frames[i][ch] - off.Frames[i][ch])
				if !inWindow[i] && diff > 1e-12 {
					t.Fatalf("%s: sample %d ch %d changed by %v outside a tick window", mode, i, ch, diff)
				}
				if inWindow[i] && diff > 1e-3 {
					audible++
				}
			}
		}
		if audible < 30 {
			t.Errorf("%s: expected ticks to be audible at day boundaries, %d samples differ", mode, audible)
		}
	}
}

func TestRender_TwoDays(t *testing.T) {
	p := params(model.ModeContinuous, 1, true)
	buf, err := Render([]int{100, 900}, []float64{5, 20}, p)
	if err != nil {
		t.Fatalf("two days should render: %v", err)
	}
	if buf.Len() != 24000 {
		t.Fatalf("expected 24000 frames, got %d", buf.Len())
	}
}

func TestRender_ValidationErrors(t *testing.T) {
	good := params(model.ModePerDay, 1, false)
	tests := []struct {
		name     string
		sessions []int
		revenue  []float64
		p        model.RenderParameters
		want     error
	}{
		{"length mismatch", []int{1, 2, 3}, []float64{1, 2}, good, ErrLengthMismatch},
		{"one day", []int{1}, []float64{1}, good, ErrTooFewDays},
		{"empty", nil, nil, good, ErrTooFewDays},
		{"negative sessions", []int{1, -2}, []float64{1, 2}, good, ErrInvalidInput},
		{"nan revenue", []int{1, 2}, []float64{1, math.NaN()}, good, ErrInvalidInput},
		{"inf revenue", []int{1, 2}, []float64{math.Inf(1), 2}, good, ErrInvalidInput},
		{"zero sample rate", []int{1, 2}, []float64{1, 2}, model.RenderParameters{Mode: model.ModePerDay, DurationSeconds: 1}, ErrInvalidParameters},
		{"zero duration", []int{1, 2}, []float64{1, 2}, model.RenderParameters{Mode: model.ModePerDay, SampleRate: 8000}, ErrInvalidParameters},
		{"negative lag", []int{1, 2}, []float64{1, 2}, params(model.ModePerDay, -1, false), ErrInvalidParameters},
		{"unknown mode", []int{1, 2}, []float64{1, 2}, params("loop", 1, false), ErrInvalidParameters},
	}
	for _, tt := range tests {
		buf, err := Render(tt.sessions, tt.revenue, tt.p)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
		if buf != nil {
			t.Errorf("%s: expected no buffer on error", tt.name)
		}
	}
}

func toFloat(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = float64(v)
	}
	return out
}

func TestPerDayNotes_HugeLagOmitsEveryEcho(t *testing.T) {
	tb := NewTimeBase(testRate, testDuration, 4)
	sessions := []float64{100, 200, 300, 400}
	revenue := []float64{10, 20, 30, 40}
	for _, lag := range []int{3, 4, math.MaxInt - 1, math.MaxInt} {
		traffic, echo := NewPerDay().Notes(sessions, revenue, tb, lag)
		if len(traffic) != 4 {
			t.Errorf("lag %d: expected 4 traffic notes, got %d", lag, len(traffic))
		}
		want := max(0, 4-lag)
		if len(echo) != want {
			t.Errorf("lag %d: expected %d echo notes, got %d", lag, want, len(echo))
		}
		for _, n := range echo {
			if n.Slot < 0 || n.Slot >= tb.Days || n.Onset < 0 {
				t.Errorf("lag %d: echo placed outside the clip: %+v", lag, n)
			}
		}
	}
}
