package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidSchedule is returned for an empty or malformed window set.
	ErrInvalidSchedule = errors.New("invalid schedule")
	// ErrUnknownMember is returned when a report names an id missing from the roster.
	ErrUnknownMember = errors.New("unknown member")
	// ErrMalformedReport is returned when free text does not match "<memberId> <status>".
	ErrMalformedReport = errors.New("malformed report")
	// ErrSystemDisabled is returned when a report arrives while reporting is switched off.
	ErrSystemDisabled = errors.New("system disabled")
	// ErrUnknownCommand is returned for an unrecognized control directive.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNotificationFailure wraps outbound send failures.
	ErrNotificationFailure = errors.New("notification failure")
	// ErrPersistenceFailure wraps load/save failures of the backing store.
	ErrPersistenceFailure = errors.New("persistence failure")
)

// ErrorKind maps sentinel errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrInvalidSchedule):
		return "invalid_schedule"
	case errors.Is(err, ErrUnknownMember):
		return "unknown_member"
	case errors.Is(err, ErrMalformedReport):
		return "malformed_report"
	case errors.Is(err, ErrSystemDisabled):
		return "system_disabled"
	case errors.Is(err, ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, ErrNotificationFailure):
		return "notification_failure"
	case errors.Is(err, ErrPersistenceFailure):
		return "persistence_failure"
	}
	return "unexpected"
}

// UserMessage turns a rejection into the text shown back to the chat user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	detail := detailOf(err)
	switch {
	case errors.Is(err, ErrInvalidSchedule):
		if detail == "" {
			return "Invalid schedule. Use HH:MM (24-hour format). Example: `/attendance settime 09:00 16:00 21:00`"
		}
		return "Invalid time format: " + detail + "\nUse HH:MM (24-hour format). Example: 09:00"
	case errors.Is(err, ErrUnknownMember):
		return "Member " + detail + " is not in the roster"
	case errors.Is(err, ErrMalformedReport):
		return "Invalid format\nPlease send: <member id> <status>\nExample: 33069 at home"
	case errors.Is(err, ErrSystemDisabled):
		return "⏸️ Reporting is currently disabled\nUse `/attendance start` to enable it"
	case errors.Is(err, ErrUnknownCommand):
		return "Unknown command, use `/attendance help` to see the available commands"
	}
	return "Something went wrong, please try again"
}

// detailOf returns the text after the sentinel prefix of a wrapped error.
func detailOf(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return strings.TrimSpace(msg[i+2:])
	}
	return ""
}
