package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
)

type stateRepo struct {
	db dbConn
}

func newStateRepo(db dbConn) contract.StateRepo {
	return &stateRepo{db: db}
}

// Get returns the stored state, or nil when none has been saved yet
func (r *stateRepo) Get() (*entity.SystemState, error) {
	state := &entity.SystemState{}
	query := `
		SELECT enabled, broadcast_target, time_windows, updated_at
		FROM system_state
		WHERE id = 1
	`

	var windowsJSON string
	err := r.db.QueryRow(query).Scan(
		&state.Enabled,
		&state.BroadcastTarget,
		&windowsJSON,
		&state.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get system state: %w", err)
	}

	// Convert JSON to schedule
	var windows []string
	if err := json.Unmarshal([]byte(windowsJSON), &windows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal time windows: %w", err)
	}

	state.Schedule, err = window.NewSchedule(windows)
	if err != nil {
		return nil, fmt.Errorf("stored time windows are invalid: %w", err)
	}

	return state, nil
}

func (r *stateRepo) Save(state *entity.SystemState) error {
	query := `
		INSERT INTO system_state (id, enabled, broadcast_target, time_windows, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			enabled = excluded.enabled,
			broadcast_target = excluded.broadcast_target,
			time_windows = excluded.time_windows,
			updated_at = excluded.updated_at
	`

	// Convert schedule to JSON for storage
	windowsJSON, err := json.Marshal(state.Schedule.Strings())
	if err != nil {
		return fmt.Errorf("failed to marshal time windows: %w", err)
	}

	state.UpdatedAt = time.Now().UTC()
	_, err = r.db.Exec(query,
		state.Enabled,
		state.BroadcastTarget,
		string(windowsJSON),
		state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save system state: %w", err)
	}

	return nil
}
