package entity

import "time"

// AttendanceKey identifies at most one ledger entry.
type AttendanceKey struct {
	Date     string
	Window   string
	MemberID string
}

// AttendanceEntry is one status report stored in the ledger.
type AttendanceEntry struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Window      string    `json:"window"`
	MemberID    string    `json:"memberId"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (e AttendanceEntry) Key() AttendanceKey {
	return AttendanceKey{Date: e.Date, Window: e.Window, MemberID: e.MemberID}
}

// Inbound is a chat message delivered by the transport.
type Inbound struct {
	SenderID       string
	ConversationID string
	// Group is true when the message came from a shared conversation that can receive broadcasts.
	Group bool
	Text  string
}
