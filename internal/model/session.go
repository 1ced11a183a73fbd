package model

import "time"

// SessionState is the listener-side toggle state owned by the bot, never by the engine.
type SessionState struct {
	Mode      Mode      `json:"mode"`
	Ticks     bool      `json:"ticks"`
	LagDays   int       `json:"lag_days"`
	Solo      string    `json:"solo"` // "both", "traffic" or "revenue"
	Renders   int       `json:"renders"`
	UpdatedAt time.Time `json:"updated_at"`
}
