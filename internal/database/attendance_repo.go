package database

import (
	"fmt"

	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/entity"
)

type attendanceRepo struct {
	db dbConn
}

func newAttendanceRepo(db dbConn) contract.AttendanceRepo {
	return &attendanceRepo{db: db}
}

// Upsert stores the entry, replacing the row with the same (date, window, member)
func (r *attendanceRepo) Upsert(entry *entity.AttendanceEntry) error {
	query := `
		INSERT INTO attendance_entries (id, entry_date, time_window, member_id, status, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (entry_date, time_window, member_id) DO UPDATE SET
			id = excluded.id,
			status = excluded.status,
			submitted_at = excluded.submitted_at
	`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.Date,
		entry.Window,
		entry.MemberID,
		entry.Status,
		entry.SubmittedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance entry: %w", err)
	}

	return nil
}

func (r *attendanceRepo) GetAll() ([]*entity.AttendanceEntry, error) {
	query := `
		SELECT id, entry_date, time_window, member_id, status, submitted_at
		FROM attendance_entries
		ORDER BY submitted_at ASC, rowid ASC
	`

	return r.query(query)
}

func (r *attendanceRepo) GetByDate(date string) ([]*entity.AttendanceEntry, error) {
	query := `
		SELECT id, entry_date, time_window, member_id, status, submitted_at
		FROM attendance_entries
		WHERE entry_date = ?
		ORDER BY submitted_at ASC, rowid ASC
	`

	return r.query(query, date)
}

func (r *attendanceRepo) Clear() error {
	_, err := r.db.Exec(`DELETE FROM attendance_entries`)
	if err != nil {
		return fmt.Errorf("failed to clear attendance entries: %w", err)
	}
	return nil
}

func (r *attendanceRepo) query(query string, args ...interface{}) ([]*entity.AttendanceEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AttendanceEntry
	for rows.Next() {
		entry := &entity.AttendanceEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.Date,
			&entry.Window,
			&entry.MemberID,
			&entry.Status,
			&entry.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance entries: %w", err)
	}

	return entries, nil
}
