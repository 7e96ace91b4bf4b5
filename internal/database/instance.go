package database

import (
	"context"
	"fmt"

	"github.com/diegoclair/attendance-bot/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db             *DB
	memberRepo     contract.MemberRepo
	attendanceRepo contract.AttendanceRepo
	stateRepo      contract.StateRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.memberRepo = newMemberRepo(i.db.conn)
	i.attendanceRepo = newAttendanceRepo(i.db.conn)
	i.stateRepo = newStateRepo(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		memberRepo:     newMemberRepo(db),
		attendanceRepo: newAttendanceRepo(db),
		stateRepo:      newStateRepo(db),
	}
}

// Member returns the roster repository
func (i *instance) Member() contract.MemberRepo {
	return i.memberRepo
}

// Attendance returns the ledger repository
func (i *instance) Attendance() contract.AttendanceRepo {
	return i.attendanceRepo
}

// State returns the system state repository
func (i *instance) State() contract.StateRepo {
	return i.stateRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
