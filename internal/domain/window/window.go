package window

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain"
)

var boundaryPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Boundary is a time of day without a date component.
type Boundary struct {
	Hour   int
	Minute int
}

// ParseBoundary validates an HH:MM token and returns its canonical boundary.
// Single digit hours such as "9:30" are accepted and canonicalized to "09:30".
func ParseBoundary(value string) (Boundary, error) {
	value = strings.TrimSpace(value)
	if !boundaryPattern.MatchString(value) {
		return Boundary{}, fmt.Errorf("%w: %s", domain.ErrInvalidSchedule, value)
	}

	parts := strings.SplitN(value, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])

	return Boundary{Hour: hour, Minute: minute}, nil
}

// String returns the canonical zero padded HH:MM form.
func (b Boundary) String() string {
	return fmt.Sprintf("%02d:%02d", b.Hour, b.Minute)
}

// Minutes returns the number of minutes since midnight.
func (b Boundary) Minutes() int {
	return b.Hour*60 + b.Minute
}

// On returns the instant of the boundary on the civil date y-m-d in loc.
func (b Boundary) On(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, b.Hour, b.Minute, 0, 0, loc)
}

// Schedule is a set of boundaries, unique on canonical form and sorted ascending.
type Schedule []Boundary

// NewSchedule validates every token and builds a sorted schedule.
// Any invalid token rejects the whole set; the error lists all offending tokens.
func NewSchedule(tokens []string) (Schedule, error) {
	if len(tokens) == 0 {
		return nil, domain.ErrInvalidSchedule
	}

	var invalid []string
	seen := make(map[string]bool, len(tokens))
	schedule := make(Schedule, 0, len(tokens))

	for _, token := range tokens {
		b, err := ParseBoundary(token)
		if err != nil {
			invalid = append(invalid, token)
			continue
		}
		if seen[b.String()] {
			continue
		}
		seen[b.String()] = true
		schedule = append(schedule, b)
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSchedule, strings.Join(invalid, ", "))
	}

	sort.Slice(schedule, func(i, j int) bool {
		return schedule[i].Minutes() < schedule[j].Minutes()
	})

	return schedule, nil
}

// MustSchedule is NewSchedule for values known to be valid, such as defaults.
func MustSchedule(tokens ...string) Schedule {
	s, err := NewSchedule(tokens)
	if err != nil {
		panic(err)
	}
	return s
}

// Strings returns the canonical HH:MM form of every boundary in order.
func (s Schedule) Strings() []string {
	out := make([]string, len(s))
	for i, b := range s {
		out[i] = b.String()
	}
	return out
}

func (s Schedule) String() string {
	return strings.Join(s.Strings(), ", ")
}

// Contains reports whether b is one of the schedule boundaries.
func (s Schedule) Contains(b Boundary) bool {
	for _, candidate := range s {
		if candidate == b {
			return true
		}
	}
	return false
}
