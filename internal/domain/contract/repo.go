package contract

import (
	"context"

	"github.com/diegoclair/attendance-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Member() MemberRepo
	Attendance() AttendanceRepo
	State() StateRepo
}

// MemberRepo defines the contract for the roster store
type MemberRepo interface {
	Create(member *entity.Member) error
	GetAll() ([]*entity.Member, error)
	Count() (int, error)
}

// AttendanceRepo defines the contract for the ledger store
type AttendanceRepo interface {
	Upsert(entry *entity.AttendanceEntry) error
	GetAll() ([]*entity.AttendanceEntry, error)
	GetByDate(date string) ([]*entity.AttendanceEntry, error)
	Clear() error
}

// StateRepo defines the contract for the system state store
type StateRepo interface {
	Get() (*entity.SystemState, error)
	Save(state *entity.SystemState) error
}
