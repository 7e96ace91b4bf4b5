package slack

import (
	"fmt"
	"strings"

	"github.com/diegoclair/attendance-bot/internal/domain"
)

type CommandType string

const (
	CmdEnable      CommandType = "enable"
	CmdDisable     CommandType = "disable"
	CmdStatus      CommandType = "status"
	CmdSetSchedule CommandType = "set-schedule"
	CmdReport      CommandType = "report"
	CmdAbsent      CommandType = "absent"
	CmdRoster      CommandType = "roster"
	CmdHelp        CommandType = "help"
)

// CommandTypes lists every directive the interpreter must handle.
var CommandTypes = []CommandType{
	CmdEnable, CmdDisable, CmdStatus, CmdSetSchedule, CmdReport, CmdAbsent, CmdRoster, CmdHelp,
}

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// ParseCommand reads the leading token of text, case-insensitive, with an optional leading "/".
func ParseCommand(text string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return &Command{Type: CmdHelp}, nil
	}

	cmd := &Command{
		Raw: text,
	}

	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	switch name {
	case "start", "enable", "on":
		cmd.Type = CmdEnable
	case "end", "disable", "off", "stop":
		cmd.Type = CmdDisable
	case "status":
		cmd.Type = CmdStatus
	case "settime", "schedule", "set-schedule":
		cmd.Type = CmdSetSchedule
		if len(parts) > 1 {
			cmd.Args = parts[1:]
		}
	case "report":
		cmd.Type = CmdReport
	case "missing", "absent":
		cmd.Type = CmdAbsent
	case "roster", "list", "ls":
		cmd.Type = CmdRoster
	case "help", "":
		cmd.Type = CmdHelp
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, parts[0])
	}

	return cmd, nil
}

func GetHelpText() string {
	return `*Available Commands:*

*Reporting:*
• ` + "`<member id> <status>`" + ` - Report your status for the current window (ex: 33069 at home)

*Control:*
• ` + "`/attendance start`" + ` - Enable reporting
• ` + "`/attendance end`" + ` - Disable reporting
• ` + "`/attendance status`" + ` - Show system status
• ` + "`/attendance settime HH:MM HH:MM`" + ` - Set the reporting windows (ex: 09:00 16:00 21:00)

*Queries:*
• ` + "`/attendance report`" + ` - Summary for the current window
• ` + "`/attendance missing`" + ` - Members who have not reported
• ` + "`/attendance roster`" + ` - List all members
• ` + "`/attendance help`" + ` - Show this help`
}
