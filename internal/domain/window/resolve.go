package window

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain"
)

// Policy selects which window an instant is attributed to.
type Policy string

const (
	// Prospective attributes an instant to the next window about to start.
	// After the last window of the day the bucket is the first window of the next day.
	Prospective Policy = "prospective"
	// Retrospective attributes an instant to the window that started most recently.
	// Before the first window of the day the bucket is the last window of the previous day.
	Retrospective Policy = "retrospective"
)

// ParsePolicy reads a policy name, case-insensitive.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case Prospective:
		return Prospective, nil
	case Retrospective:
		return Retrospective, nil
	}
	return "", fmt.Errorf("unknown bucket policy %q (use %q or %q)", value, Prospective, Retrospective)
}

// Bucket identifies one reporting period.
type Bucket struct {
	Date   string `json:"date"`
	Window string `json:"window"`
}

func (b Bucket) String() string {
	return b.Date + " " + b.Window
}

// Resolve maps t to the bucket it belongs to. All date arithmetic happens in loc,
// independent of the host zone.
func (s Schedule) Resolve(t time.Time, loc *time.Location, policy Policy) (Bucket, error) {
	if len(s) == 0 {
		return Bucket{}, domain.ErrInvalidSchedule
	}
	if loc == nil {
		loc = time.UTC
	}

	local := t.In(loc)
	current := local.Hour()*60 + local.Minute()

	// first boundary strictly after the current minute of day
	next := sort.Search(len(s), func(i int) bool {
		return s[i].Minutes() > current
	})

	switch policy {
	case Retrospective:
		if next == 0 {
			return Bucket{Date: civilDate(local, -1), Window: s[len(s)-1].String()}, nil
		}
		return Bucket{Date: civilDate(local, 0), Window: s[next-1].String()}, nil
	case Prospective:
		if next == len(s) {
			return Bucket{Date: civilDate(local, 1), Window: s[0].String()}, nil
		}
		return Bucket{Date: civilDate(local, 0), Window: s[next].String()}, nil
	}

	return Bucket{}, fmt.Errorf("unknown bucket policy %q", policy)
}

// NextFire returns the earliest instant strictly after `after` that lies `lead`
// before one of the schedule boundaries, together with that boundary.
// Boundaries earlier than lead past midnight fire on the previous civil day.
func (s Schedule) NextFire(after time.Time, loc *time.Location, lead time.Duration) (time.Time, Boundary, error) {
	if len(s) == 0 {
		return time.Time{}, Boundary{}, domain.ErrInvalidSchedule
	}
	if loc == nil {
		loc = time.UTC
	}

	local := after.In(loc)
	var (
		best     time.Time
		boundary Boundary
	)

	// lead is below a day, so today, tomorrow and the day after cover every wrap
	for offset := 0; offset <= 2; offset++ {
		for _, b := range s {
			fire := b.On(local.Year(), local.Month(), local.Day()+offset, loc).Add(-lead)
			if !fire.After(after) {
				continue
			}
			if best.IsZero() || fire.Before(best) {
				best = fire
				boundary = b
			}
		}
		if !best.IsZero() {
			break
		}
	}

	return best, boundary, nil
}

// Today returns the civil date of t in loc.
func Today(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return civilDate(t.In(loc), 0)
}

// civilDate formats the calendar date offset by days from local, using noon to stay clear of DST edges.
func civilDate(local time.Time, days int) string {
	noon := time.Date(local.Year(), local.Month(), local.Day()+days, 12, 0, 0, 0, local.Location())
	return noon.Format(domain.DateLayout)
}
