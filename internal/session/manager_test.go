package session

import (
	"path/filepath"
	"testing"

	"SalesEcho/internal/model"
)

var defaults = Defaults{Mode: model.ModeContinuous, Ticks: true, LagDays: 1}

func TestNewManager_Defaults(t *testing.T) {
	m, err := NewManager("", defaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := m.GetState()
	if s.Mode != model.ModeContinuous || !s.Ticks || s.LagDays != 1 || s.Solo != SoloBoth {
		t.Errorf("unexpected initial state %+v", s)
	}
}

func TestManager_TogglesAndParams(t *testing.T) {
	m, _ := NewManager("", defaults)
	if err := m.SetMode(model.ModePerDay); err != nil {
		t.Fatal(err)
	}
	if err := m.SetTicks(false); err != nil {
		t.Fatal(err)
	}
	if err := m.SetLag(3); err != nil {
		t.Fatal(err)
	}

	p := m.Params(48000, 18)
	want := model.RenderParameters{LagDays: 3, Mode: model.ModePerDay, TicksEnabled: false, SampleRate: 48000, DurationSeconds: 18}
	if p != want {
		t.Errorf("Params = %+v, want %+v", p, want)
	}

	// Params is a snapshot: later toggles do not reach it.
	m.SetLag(5)
	if p.LagDays != 3 {
		t.Error("params must not change after later toggles")
	}
}

func TestManager_RejectsInvalid(t *testing.T) {
	m, _ := NewManager("", defaults)
	if err := m.SetMode("stereo"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if err := m.SetLag(-1); err == nil {
		t.Error("expected error for negative lag")
	}
	if err := m.SetLag(MaxLagDays + 1); err == nil {
		t.Error("expected error for excessive lag")
	}
	if err := m.SetSolo("drums"); err == nil {
		t.Error("expected error for unknown solo")
	}
	if s := m.GetState(); s.LagDays != 1 || s.Mode != model.ModeContinuous || s.Solo != SoloBoth {
		t.Errorf("rejected updates must not change state, got %+v", s)
	}
}

func TestManager_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	m, err := NewManager(path, defaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.SetMode(model.ModePerDay)
	m.SetSolo(SoloRevenue)
	m.RecordRender()
	m.RecordRender()

	reloaded, err := NewManager(path, defaults)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	s := reloaded.GetState()
	if s.Mode != model.ModePerDay || s.Solo != SoloRevenue || s.Renders != 2 {
		t.Errorf("state not restored: %+v", s)
	}
	if s.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be stamped on save")
	}
}
