package domain

import "time"

// DefaultWindows is the schedule a fresh installation starts with
var DefaultWindows = []string{"09:00", "16:00", "21:00"}

// DefaultTimeZone is the civil zone every bucket is computed in unless configured otherwise
const DefaultTimeZone = "Asia/Taipei"

// DefaultReminderLead is how long before each window boundary the reminder fires
const DefaultReminderLead = 5 * time.Minute

// DateLayout is the canonical calendar date format used for buckets
const DateLayout = "2006-01-02"

// Default roster range used when no roster file is provided
const (
	DefaultRosterFirstID = 33069
	DefaultRosterLastID  = 33085
)

// DefaultMemberNamePrefix prefixes the numeric id for generated member names
const DefaultMemberNamePrefix = "學員"
