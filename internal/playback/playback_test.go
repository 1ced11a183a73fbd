package playback

import (
	"context"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"SalesEcho/internal/model"
)

func TestCursor_Position(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCursor(start, 18, 30, 2)

	tests := []struct {
		name     string
		offset   time.Duration
		wantDay  int
		wantEcho int
	}{
		{"before start", -time.Second, 0, 0},
		{"start", 0, 0, 0},
		{"lag floor", 1200 * time.Millisecond, 1, 0},
		{"middle", 9 * time.Second, 14, 12},
		{"end", 18 * time.Second, 29, 27},
		{"after end", 40 * time.Second, 29, 27},
	}
	for _, tt := range tests {
		day, echo := c.Position(start.Add(tt.offset))
		if day != tt.wantDay || echo != tt.wantEcho {
			t.Errorf("%s: got (%d, %d), want (%d, %d)", tt.name, day, echo, tt.wantDay, tt.wantEcho)
		}
	}
	if c.Done(start.Add(17 * time.Second)) {
		t.Error("clip should still be playing at 17s")
	}
	if !c.Done(start.Add(18 * time.Second)) {
		t.Error("clip should be done at 18s")
	}
}

func TestFollow_ReachesLastDay(t *testing.T) {
	c := NewCursor(time.Now(), 0.05, 5, 1)
	var days []int
	var lastEcho int
	Follow(context.Background(), c, 2*time.Millisecond, func(day, echo int) {
		days = append(days, day)
		lastEcho = echo
	})
	if len(days) == 0 || days[len(days)-1] != 4 {
		t.Fatalf("expected to finish on day 4, got %v", days)
	}
	if lastEcho != 3 {
		t.Errorf("expected final echo day 3, got %d", lastEcho)
	}
	for i := 1; i < len(days); i++ {
		if days[i] <= days[i-1] {
			t.Errorf("days should increase strictly, got %v", days)
		}
	}
}

func TestFollow_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewCursor(time.Now(), 60, 30, 1)
	calls := 0
	Follow(ctx, c, time.Millisecond, func(int, int) { calls++ })
	if calls != 1 {
		t.Errorf("expected only the initial position, got %d calls", calls)
	}
}

func TestFloat32LE(t *testing.T) {
	buf := model.NewAudioBuffer(2, 8000, 0.00025)
	buf.Frames[0] = [2]float64{0.5, -0.25}
	buf.Frames[1] = [2]float64{1, 0}
	raw := Float32LE(buf)
	if len(raw) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(raw))
	}
	want := []float32{0.5, -0.25, 1, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		if got != w {
			t.Errorf("sample %d: expected %v, got %v", i, w, got)
		}
	}
}

func TestSoloBuffer(t *testing.T) {
	buf := model.NewAudioBuffer(1, 8000, 0.000125)
	buf.Frames[0] = [2]float64{0.3, 0.6}

	if f := SoloBuffer(buf, "traffic").Frames[0]; f != [2]float64{0.3, 0} {
		t.Errorf("traffic solo: got %v", f)
	}
	if f := SoloBuffer(buf, "revenue").Frames[0]; f != [2]float64{0, 0.6} {
		t.Errorf("revenue solo: got %v", f)
	}
	if SoloBuffer(buf, "both") != buf {
		t.Error("both should return the input buffer unchanged")
	}
}

func TestNewCommandPlayer(t *testing.T) {
	p, err := NewCommandPlayer("aplay -q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Command != "aplay" || len(p.Args) != 1 || p.Args[0] != "-q" {
		t.Errorf("unexpected parse %+v", p)
	}
	if _, err := NewCommandPlayer("   "); err == nil {
		t.Error("expected error for empty command")
	}
}

func TestCommandPlayer_RunsCommand(t *testing.T) {
	// The script fails unless the WAV already exists and is non-empty.
	p := &CommandPlayer{Command: "sh", Args: []string{"-c", `test -s "$0"`}, TempDir: t.TempDir()}
	buf := model.NewAudioBuffer(80, 8000, 0.01)

	before := time.Now()
	var starts []time.Time
	if err := p.Play(context.Background(), buf, func(start time.Time) { starts = append(starts, start) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := time.Now()
	if len(starts) != 1 {
		t.Fatalf("expected one start report, got %d", len(starts))
	}
	if starts[0].Before(before) || starts[0].After(after) {
		t.Errorf("start %v outside the Play call [%v, %v]", starts[0], before, after)
	}

	p = &CommandPlayer{Command: "false", TempDir: t.TempDir()}
	if err := p.Play(context.Background(), buf, nil); err == nil {
		t.Error("expected error from failing command")
	}
}

func TestCommandPlayer_NoStartWhenCommandMissing(t *testing.T) {
	p := &CommandPlayer{Command: "salesecho-no-such-player", TempDir: t.TempDir()}
	started := false
	err := p.Play(context.Background(), model.NewAudioBuffer(8, 8000, 0.001), func(time.Time) { started = true })
	if err == nil {
		t.Fatal("expected error for a missing command")
	}
	if started {
		t.Error("start must not be reported when the player never ran")
	}
}
