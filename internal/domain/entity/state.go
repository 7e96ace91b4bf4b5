package entity

import (
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain/window"
)

// SystemState is the persisted bot configuration.
type SystemState struct {
	Enabled bool
	// BroadcastTarget is the destination for reminders; empty means none configured yet.
	BroadcastTarget string
	Schedule        window.Schedule
	UpdatedAt       time.Time
}

// Clone returns a copy that does not share the schedule slice.
func (s SystemState) Clone() SystemState {
	out := s
	out.Schedule = append(window.Schedule(nil), s.Schedule...)
	return out
}
