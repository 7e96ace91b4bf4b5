package contract

import (
	"context"

	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/diegoclair/attendance-bot/internal/domain/report"
	slackcmd "github.com/diegoclair/attendance-bot/internal/domain/slack"
)

type AttendanceService interface {
	// HandleMessage routes a chat message to the command interpreter or the report path
	// and returns the reply text; an empty reply means nothing should be sent.
	HandleMessage(ctx context.Context, msg entity.Inbound) string
	Execute(ctx context.Context, cmd *slackcmd.Command) (string, error)
	RememberDestination(destination string)

	Records() []entity.AttendanceEntry
	Roster() []entity.Member
	State() entity.SystemState
	TodayRecords() (string, []entity.AttendanceEntry)
	BucketReport(date, window string) report.Report
}
