package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain"
	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/diegoclair/attendance-bot/internal/domain/ledger"
	"github.com/diegoclair/attendance-bot/internal/domain/report"
	slackcmd "github.com/diegoclair/attendance-bot/internal/domain/slack"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
)

// reportPattern is the free text grammar "<memberId> <status>".
var reportPattern = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// Options configures the attendance service.
type Options struct {
	Location        *time.Location
	Policy          window.Policy
	ReminderLead    time.Duration
	RejectMalformed bool
	ClearOnDisable  bool
	// DefaultDestination seeds the broadcast target when none is stored.
	DefaultDestination string
	// DefaultRoster is used when the stored roster is empty or cannot be read.
	DefaultRoster []entity.Member
	Now           func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Policy == "" {
		o.Policy = window.Prospective
	}
	// A zero lead fires on the boundary itself, which already resolves to the next window.
	if o.ReminderLead <= 0 {
		o.ReminderLead = domain.DefaultReminderLead
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// attendanceService owns SystemState, the roster and the ledger.
// Every read and write of them happens under mu.
type attendanceService struct {
	dm       contract.DataManager
	notifier contract.Notifier
	opts     Options

	mu      sync.Mutex
	state   entity.SystemState
	roster  []entity.Member
	members map[string]entity.Member
	ledger  *ledger.Ledger

	reminder interface{ Reschedule() }
}

func newAttendance(dm contract.DataManager, notifier contract.Notifier, opts Options) *attendanceService {
	s := &attendanceService{
		dm:       dm,
		notifier: notifier,
		opts:     opts.withDefaults(),
		ledger:   ledger.New(nil),
	}
	s.state = s.defaultState()
	s.setRoster(s.opts.DefaultRoster)
	return s
}

func (s *attendanceService) defaultState() entity.SystemState {
	return entity.SystemState{
		Enabled:         true,
		BroadcastTarget: s.opts.DefaultDestination,
		Schedule:        window.MustSchedule(domain.DefaultWindows...),
	}
}

func (s *attendanceService) setRoster(members []entity.Member) {
	s.roster = append([]entity.Member(nil), members...)
	s.members = make(map[string]entity.Member, len(members))
	for _, m := range members {
		s.members[m.ID] = m
	}
}

// Load reads roster, state and ledger from the store.
// Each part that fails to load is replaced by its in-memory default.
func (s *attendanceService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, err := s.dm.Member().GetAll()
	switch {
	case err != nil:
		logFailure("load roster", fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err))
	case len(members) > 0:
		roster := make([]entity.Member, 0, len(members))
		for _, m := range members {
			roster = append(roster, *m)
		}
		s.setRoster(roster)
	}

	state, err := s.dm.State().Get()
	switch {
	case err != nil:
		logFailure("load system state", fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err))
		s.state = s.defaultState()
	case state == nil:
		s.state = s.defaultState()
		s.persistState()
	default:
		s.state = state.Clone()
		if s.state.BroadcastTarget == "" && s.opts.DefaultDestination != "" {
			s.state.BroadcastTarget = s.opts.DefaultDestination
			s.persistState()
		}
	}

	entries, err := s.dm.Attendance().GetAll()
	if err != nil {
		logFailure("load ledger", fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err))
		entries = nil
	}
	loaded := make([]entity.AttendanceEntry, 0, len(entries))
	for _, e := range entries {
		loaded = append(loaded, *e)
	}
	s.ledger = ledger.New(loaded)

	log.Printf("[INFO] Loaded %d members, %d ledger entries, windows %s, enabled=%t",
		len(s.roster), s.ledger.Len(), s.state.Schedule, s.state.Enabled)
}

// HandleMessage routes one chat message. "/" prefixed text goes to the command
// interpreter, anything else to the report path.
func (s *attendanceService) HandleMessage(ctx context.Context, msg entity.Inbound) string {
	if msg.Group && msg.ConversationID != "" {
		s.RememberDestination(msg.ConversationID)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return ""
	}

	if strings.HasPrefix(text, "/") {
		cmd, err := slackcmd.ParseCommand(text)
		if err != nil {
			log.Printf("[WARN] %s: %v", domain.ErrorKind(err), err)
			return domain.UserMessage(err)
		}
		reply, err := s.Execute(ctx, cmd)
		if err != nil {
			return domain.UserMessage(err)
		}
		return reply
	}

	// Silent mode ignores chatter before any other check, including the disabled one.
	if !s.opts.RejectMalformed && !reportPattern.MatchString(text) {
		return ""
	}

	reply, err := s.SubmitReport(ctx, entity.Inbound{
		SenderID:       msg.SenderID,
		ConversationID: msg.ConversationID,
		Group:          msg.Group,
		Text:           text,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMalformedReport) && !s.opts.RejectMalformed {
			return ""
		}
		return domain.UserMessage(err)
	}
	return reply
}

// SubmitReport stores "<memberId> <status>" against the current bucket.
// Rejections leave the ledger unchanged.
func (s *attendanceService) SubmitReport(ctx context.Context, msg entity.Inbound) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Enabled {
		return "", domain.ErrSystemDisabled
	}

	match := reportPattern.FindStringSubmatch(strings.TrimSpace(msg.Text))
	if match == nil {
		log.Printf("[DEBUG] Ignoring text from %s that is not a report", msg.SenderID)
		return "", domain.ErrMalformedReport
	}
	memberID, status := match[1], strings.TrimSpace(match[2])

	member, ok := s.members[memberID]
	if !ok {
		log.Printf("[WARN] Report for unknown member %s from %s", memberID, msg.SenderID)
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownMember, memberID)
	}

	now := s.opts.Now()
	bucket, err := s.state.Schedule.Resolve(now, s.opts.Location, s.opts.Policy)
	if err != nil {
		return "", err
	}

	entry := s.ledger.Upsert(memberID, status, bucket.Window, bucket.Date, now)
	s.persistEntry(entry)

	log.Printf("[INFO] Member %s reported %q for %s", memberID, status, bucket)
	return fmt.Sprintf("✅ %s(%s) %s\nRecorded for %s %s window", member.DisplayName, member.ID, status, bucket.Date, bucket.Window), nil
}

// RememberDestination records the conversation reminders are broadcast to.
func (s *attendanceService) RememberDestination(destination string) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.BroadcastTarget == destination {
		return
	}
	s.state.BroadcastTarget = destination
	s.persistState()
	log.Printf("[INFO] Broadcast destination set to %s", destination)
}

// Records returns every ledger entry.
func (s *attendanceService) Records() []entity.AttendanceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Entries()
}

func (s *attendanceService) Roster() []entity.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Member(nil), s.roster...)
}

func (s *attendanceService) State() entity.SystemState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// TodayRecords returns today's civil date and the entries recorded against it.
func (s *attendanceService) TodayRecords() (string, []entity.AttendanceEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := window.Today(s.opts.Now(), s.opts.Location)
	return today, s.ledger.ByDate(today)
}

// BucketReport builds the report of an arbitrary bucket.
func (s *attendanceService) BucketReport(date, windowName string) report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := window.Bucket{Date: date, Window: windowName}
	return report.Build(bucket, s.roster, s.ledger.QueryByBucket(date, windowName))
}

// currentBucket resolves the bucket of now. Callers hold mu.
func (s *attendanceService) currentBucket() (window.Bucket, error) {
	return s.state.Schedule.Resolve(s.opts.Now(), s.opts.Location, s.opts.Policy)
}

// buildReport computes the report of the current bucket. Callers hold mu.
func (s *attendanceService) buildReport() (report.Report, error) {
	bucket, err := s.currentBucket()
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(bucket, s.roster, s.ledger.QueryByBucket(bucket.Date, bucket.Window)), nil
}

// persistState saves the state. Callers hold mu; failures are logged only.
func (s *attendanceService) persistState() {
	state := s.state.Clone()
	if err := s.dm.State().Save(&state); err != nil {
		logFailure("persist system state", fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err))
		return
	}
	s.state.UpdatedAt = state.UpdatedAt
}

// persistEntry saves one ledger entry. Callers hold mu; failures are logged only.
func (s *attendanceService) persistEntry(entry entity.AttendanceEntry) {
	if err := s.dm.Attendance().Upsert(&entry); err != nil {
		logFailure("persist attendance entry", fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err))
	}
}

func logFailure(action string, err error) {
	log.Printf("[ERROR] %s: failed to %s: %v", domain.ErrorKind(err), action, err)
}
