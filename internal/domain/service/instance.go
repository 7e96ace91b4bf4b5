package service

import (
	"github.com/diegoclair/attendance-bot/internal/domain/contract"
)

type Instance struct {
	Attendance *attendanceService
	Reminder   *reminder
}

func NewInstance(dm contract.DataManager, notifier contract.Notifier, opts Options) *Instance {
	attendanceService := newAttendance(dm, notifier, opts)
	reminder := newReminder(attendanceService, notifier)
	attendanceService.reminder = reminder

	return &Instance{
		Attendance: attendanceService,
		Reminder:   reminder,
	}
}
