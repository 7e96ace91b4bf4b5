package report

import (
	"fmt"
	"strings"

	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
)

// FormatReport renders the report text sent to chat.
func FormatReport(r Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 *%s %s window*\n", r.Bucket.Date, r.Bucket.Window))

	if r.Submissions == 0 {
		b.WriteString("Nobody has reported yet")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Reported: %d | Missing: %d\n", r.PresentCount, r.AbsentCount))
	if len(r.Rows) > 0 {
		b.WriteString("\n")
	}
	for _, row := range r.Rows {
		if !row.Present {
			b.WriteString(fmt.Sprintf("%s %s - ⚠️ not reported\n", row.Member.ID, row.Member.DisplayName))
			continue
		}
		line := fmt.Sprintf("%s %s - %s", row.Member.ID, row.Member.DisplayName, row.Status)
		if row.LastSubmitter {
			line += " 🆕"
		}
		b.WriteString(line + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatAbsent renders the list of members that have not reported.
func FormatAbsent(bucket window.Bucket, absent []entity.Member) string {
	if len(absent) == 0 {
		return "🎉 Everyone has reported!"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚠️ *Missing for %s %s: %d*\n\n", bucket.Date, bucket.Window, len(absent)))
	for _, m := range absent {
		b.WriteString(fmt.Sprintf("%s %s\n", m.ID, m.DisplayName))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRoster renders the member list.
func FormatRoster(roster []entity.Member) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 *Roster (%d members)*\n\n", len(roster)))
	for _, m := range roster {
		b.WriteString(fmt.Sprintf("%s - %s\n", m.ID, m.DisplayName))
	}
	return strings.TrimRight(b.String(), "\n")
}
