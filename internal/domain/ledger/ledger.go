// Package ledger keeps the attendance entries of the running process.
//
// The ledger has no locking of its own; callers serialize Upsert and Clear.
package ledger

import (
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/google/uuid"
)

// Ledger is an insertion ordered list of entries, unique per AttendanceKey.
type Ledger struct {
	entries []entity.AttendanceEntry
}

// New builds a ledger from previously stored entries. When two entries share a
// key the later one in the slice wins.
func New(entries []entity.AttendanceEntry) *Ledger {
	l := &Ledger{}
	for _, e := range entries {
		l.put(e)
	}
	return l
}

// Upsert stores a report for (date, window, memberID), replacing any prior entry
// for the same key. The replacement moves to the end of the ledger.
func (l *Ledger) Upsert(memberID, status, window, date string, at time.Time) entity.AttendanceEntry {
	entry := entity.AttendanceEntry{
		ID:          uuid.NewString(),
		Date:        date,
		Window:      window,
		MemberID:    memberID,
		Status:      status,
		SubmittedAt: at,
	}
	l.put(entry)
	return entry
}

func (l *Ledger) put(entry entity.AttendanceEntry) {
	key := entry.Key()
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.Key() != key {
			kept = append(kept, e)
		}
	}
	l.entries = append(kept, entry)
}

// QueryByBucket returns the entries of one (date, window) bucket.
func (l *Ledger) QueryByBucket(date, window string) []entity.AttendanceEntry {
	var out []entity.AttendanceEntry
	for _, e := range l.entries {
		if e.Date == date && e.Window == window {
			out = append(out, e)
		}
	}
	return out
}

// ByDate returns every entry recorded against the calendar date.
func (l *Ledger) ByDate(date string) []entity.AttendanceEntry {
	var out []entity.AttendanceEntry
	for _, e := range l.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns a copy of all entries in ledger order.
func (l *Ledger) Entries() []entity.AttendanceEntry {
	return append([]entity.AttendanceEntry(nil), l.entries...)
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// Clear removes every entry.
func (l *Ledger) Clear() {
	l.entries = nil
}
