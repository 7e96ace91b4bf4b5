// Package report reconciles ledger entries of one bucket against the roster.
// Nothing here mutates its inputs.
package report

import (
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
)

// Row is the line of one roster member in a report.
type Row struct {
	Member        entity.Member `json:"member"`
	Present       bool          `json:"present"`
	Status        string        `json:"status,omitempty"`
	SubmittedAt   *time.Time    `json:"submittedAt,omitempty"`
	LastSubmitter bool          `json:"lastSubmitter,omitempty"`
}

// Report is the structured view of one bucket.
type Report struct {
	Bucket       window.Bucket `json:"bucket"`
	PresentCount int           `json:"presentCount"`
	AbsentCount  int           `json:"absentCount"`
	// Submissions counts bucket entries, including ids no longer on the roster.
	Submissions   int     `json:"submissions"`
	LastSubmitter *string `json:"lastSubmitter,omitempty"`
	Rows          []Row   `json:"rows"`
}

func indexByMember(entries []entity.AttendanceEntry) map[string]entity.AttendanceEntry {
	byMember := make(map[string]entity.AttendanceEntry, len(entries))
	for _, e := range entries {
		byMember[e.MemberID] = e
	}
	return byMember
}

// Present returns the roster members that have an entry, in roster order.
func Present(roster []entity.Member, entries []entity.AttendanceEntry) []entity.Member {
	byMember := indexByMember(entries)
	out := make([]entity.Member, 0, len(entries))
	for _, m := range roster {
		if _, ok := byMember[m.ID]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Absent returns the roster members without an entry, in roster order.
func Absent(roster []entity.Member, entries []entity.AttendanceEntry) []entity.Member {
	byMember := indexByMember(entries)
	out := make([]entity.Member, 0, len(roster))
	for _, m := range roster {
		if _, ok := byMember[m.ID]; !ok {
			out = append(out, m)
		}
	}
	return out
}

// LastSubmitter returns the entry with the latest SubmittedAt. On a tie the
// entry seen first wins.
func LastSubmitter(entries []entity.AttendanceEntry) (entity.AttendanceEntry, bool) {
	if len(entries) == 0 {
		return entity.AttendanceEntry{}, false
	}
	last := entries[0]
	for _, e := range entries[1:] {
		if e.SubmittedAt.After(last.SubmittedAt) {
			last = e
		}
	}
	return last, true
}

// Build assembles the report of bucket from the roster and the bucket's entries.
func Build(bucket window.Bucket, roster []entity.Member, entries []entity.AttendanceEntry) Report {
	r := Report{
		Bucket:      bucket,
		Submissions: len(entries),
		Rows:        make([]Row, 0, len(roster)),
	}

	var lastID string
	if len(entries) > 0 {
		if last, ok := LastSubmitter(entries); ok {
			lastID = last.MemberID
			r.LastSubmitter = &lastID
		}
	}

	byMember := indexByMember(entries)
	for _, m := range roster {
		row := Row{Member: m}
		if e, ok := byMember[m.ID]; ok {
			submittedAt := e.SubmittedAt
			row.Present = true
			row.Status = e.Status
			row.SubmittedAt = &submittedAt
			row.LastSubmitter = m.ID == lastID
			r.PresentCount++
		} else {
			r.AbsentCount++
		}
		r.Rows = append(r.Rows, row)
	}

	return r
}

// AbsentIDs returns the member ids of the report's absent rows.
func (r Report) AbsentIDs() []string {
	var ids []string
	for _, row := range r.Rows {
		if !row.Present {
			ids = append(ids, row.Member.ID)
		}
	}
	return ids
}
