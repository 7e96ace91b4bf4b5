package service

import (
	"context"
	"fmt"
	"log"

	"github.com/diegoclair/attendance-bot/internal/domain"
	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/report"
	slackcmd "github.com/diegoclair/attendance-bot/internal/domain/slack"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
)

// Execute runs one control directive and returns the reply text.
// A rejected directive returns an error and leaves every piece of state unchanged.
func (s *attendanceService) Execute(ctx context.Context, cmd *slackcmd.Command) (string, error) {
	if cmd == nil {
		return slackcmd.GetHelpText(), nil
	}

	var (
		reply string
		err   error
	)

	switch cmd.Type {
	case slackcmd.CmdEnable:
		reply = s.enable()
	case slackcmd.CmdDisable:
		reply = s.disable(ctx)
	case slackcmd.CmdStatus:
		reply, err = s.status()
	case slackcmd.CmdSetSchedule:
		reply, err = s.setSchedule(cmd.Args)
	case slackcmd.CmdReport:
		reply, err = s.report()
	case slackcmd.CmdAbsent:
		reply, err = s.absent()
	case slackcmd.CmdRoster:
		reply = report.FormatRoster(s.Roster())
	case slackcmd.CmdHelp:
		reply = slackcmd.GetHelpText()
	default:
		err = fmt.Errorf("%w: %s", domain.ErrUnknownCommand, cmd.Type)
	}

	if err != nil {
		log.Printf("[WARN] %s: command %s rejected: %v", domain.ErrorKind(err), cmd.Type, err)
		return "", err
	}
	return reply, nil
}

func (s *attendanceService) enable() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Enabled = true
	s.persistState()
	log.Println("[INFO] Reporting enabled")
	return "✅ Reporting enabled\nMembers can now report their status"
}

func (s *attendanceService) disable(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Enabled = false
	if !s.opts.ClearOnDisable {
		s.persistState()
		log.Println("[INFO] Reporting disabled")
		return "⏸️ Reporting disabled\nNew reports will be rejected"
	}

	state := s.state.Clone()
	err := s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		if err := tx.Attendance().Clear(); err != nil {
			return err
		}
		return tx.State().Save(&state)
	})
	if err != nil {
		// The records stay on both sides; at least the disabled flag must survive a restart.
		logFailure("clear ledger on disable", fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err))
		s.persistState()
		return "⏸️ Reporting disabled\nNew reports will be rejected, but the records could not be cleared"
	}
	s.ledger.Clear()
	s.state.UpdatedAt = state.UpdatedAt
	log.Println("[INFO] Reporting disabled and ledger cleared")
	return "⏸️ Reporting disabled\nNew reports will be rejected and all records were cleared"
}

func (s *attendanceService) status() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, err := s.currentBucket()
	if err != nil {
		return "", err
	}

	running := "⏸️ disabled"
	if s.state.Enabled {
		running = "✅ enabled"
	}
	destination := s.state.BroadcastTarget
	if destination == "" {
		destination = "not set"
	}

	return fmt.Sprintf("📊 *System status*\n\n"+
		"State: %s\n"+
		"Current window: %s %s\n"+
		"Windows: %s\n"+
		"Members: %d\n"+
		"Broadcast channel: %s",
		running, bucket.Date, bucket.Window, s.state.Schedule, len(s.roster), destination), nil
}

func (s *attendanceService) setSchedule(tokens []string) (string, error) {
	schedule, err := window.NewSchedule(tokens)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.state.Schedule = schedule
	s.persistState()
	s.mu.Unlock()

	if s.reminder != nil {
		s.reminder.Reschedule()
	}

	log.Printf("[INFO] Windows updated to %s", schedule)
	return fmt.Sprintf("✅ Windows updated\nNew windows: %s", schedule), nil
}

func (s *attendanceService) report() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.buildReport()
	if err != nil {
		return "", err
	}
	return report.FormatReport(r), nil
}

func (s *attendanceService) absent() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, err := s.currentBucket()
	if err != nil {
		return "", err
	}
	missing := report.Absent(s.roster, s.ledger.QueryByBucket(bucket.Date, bucket.Window))
	return report.FormatAbsent(bucket, missing), nil
}
