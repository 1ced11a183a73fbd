// Package session owns the listener toggles between renders. The engine
// never sees this state; each render gets a fresh RenderParameters.
package session

import (
	"fmt"
	"log"
	"sync"

	"SalesEcho/internal/model"
)

// Solo settings accepted by SetSolo.
const (
	SoloBoth    = "both"
	SoloTraffic = "traffic"
	SoloRevenue = "revenue"
)

// MaxLagDays bounds /lag so a typo cannot push the echo far past the clip.
const MaxLagDays = 30

// Defaults seeds a fresh state.
type Defaults struct {
	Mode    model.Mode
	Ticks   bool
	LagDays int
}

// Manager guards session state with a mutex and persists every change.
type Manager struct {
	mu       sync.Mutex
	state    *model.SessionState
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
// An empty filePath keeps state in memory only.
func NewManager(filePath string, defaults Defaults) (*Manager, error) {
	state := &model.SessionState{}
	if filePath != "" {
		loaded, err := LoadState(filePath)
		if err != nil {
			return nil, fmt.Errorf("load session state: %w", err)
		}
		state = loaded
	}

	// Initialize if fresh state
	if state.Mode == "" {
		state.Mode = defaults.Mode
		state.Ticks = defaults.Ticks
		state.LagDays = defaults.LagDays
	}
	if state.Solo == "" {
		state.Solo = SoloBoth
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// GetState returns a copy of the current session state.
func (m *Manager) GetState() model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

// SetMode switches between continuous and per-day rendering.
func (m *Manager) SetMode(mode model.Mode) error {
	if mode != model.ModeContinuous && mode != model.ModePerDay {
		return fmt.Errorf("unknown mode %q", mode)
	}
	return m.update(func(s *model.SessionState) { s.Mode = mode })
}

// SetTicks enables or disables the day ticks.
func (m *Manager) SetTicks(on bool) error {
	return m.update(func(s *model.SessionState) { s.Ticks = on })
}

// SetLag sets the revenue lag in days.
func (m *Manager) SetLag(days int) error {
	if days < 0 || days > MaxLagDays {
		return fmt.Errorf("lag must be between 0 and %d days, got %d", MaxLagDays, days)
	}
	return m.update(func(s *model.SessionState) { s.LagDays = days })
}

// SetSolo selects which channels are played back.
func (m *Manager) SetSolo(solo string) error {
	switch solo {
	case SoloBoth, SoloTraffic, SoloRevenue:
	default:
		return fmt.Errorf("unknown solo %q (want both, traffic or revenue)", solo)
	}
	return m.update(func(s *model.SessionState) { s.Solo = solo })
}

// RecordRender bumps the render counter.
func (m *Manager) RecordRender() {
	if err := m.update(func(s *model.SessionState) { s.Renders++ }); err != nil {
		log.Printf("[ERROR] failed to save session state after render: %v", err)
	}
}

// Params builds an immutable render configuration from the current toggles.
func (m *Manager) Params(sampleRate int, durationSeconds float64) model.RenderParameters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.RenderParameters{
		LagDays:         m.state.LagDays,
		Mode:            m.state.Mode,
		TicksEnabled:    m.state.Ticks,
		SampleRate:      sampleRate,
		DurationSeconds: durationSeconds,
	}
}

func (m *Manager) update(fn func(s *model.SessionState)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.state)
	return m.save()
}

func (m *Manager) save() error {
	if m.filePath == "" {
		return nil
	}
	if err := SaveState(m.filePath, m.state); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	return nil
}
