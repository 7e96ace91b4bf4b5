package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/report"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
)

// idleWait is how long the loop sleeps when no fire time can be computed.
const idleWait = time.Hour

// reminder fires one broadcast per window, lead before its boundary, every civil day.
type reminder struct {
	svc      *attendanceService
	notifier contract.Notifier
	now      func() time.Time

	rescheduled chan struct{}
	stopChan    chan struct{}
	done        chan struct{}

	mu       sync.Mutex
	running  bool
	lastFire time.Time
}

func newReminder(svc *attendanceService, notifier contract.Notifier) *reminder {
	return &reminder{
		svc:         svc,
		notifier:    notifier,
		now:         svc.opts.Now,
		rescheduled: make(chan struct{}, 1),
	}
}

func (r *reminder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.running = true
	r.stopChan = make(chan struct{})
	r.done = make(chan struct{})
	log.Println("[INFO] Reminder scheduler starting...")
	go r.mainLoop(r.stopChan, r.done)
}

// Stop ends the main loop and waits for an in-flight broadcast to finish.
func (r *reminder) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	log.Println("[INFO] Reminder scheduler stopping...")
	close(r.stopChan)
	r.running = false
	done := r.done
	r.mu.Unlock()

	<-done
}

// Reschedule makes the loop drop its pending timer and re-derive it from the live schedule.
func (r *reminder) Reschedule() {
	select {
	case r.rescheduled <- struct{}{}:
	default:
		// a reschedule is already pending
	}
}

func (r *reminder) mainLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		fireAt, boundary, err := r.nextReminder()
		if err != nil {
			log.Printf("[ERROR] Cannot compute next reminder: %v", err)
			timer := time.NewTimer(idleWait)
			select {
			case <-timer.C:
				continue
			case <-r.rescheduled:
				timer.Stop()
				continue
			case <-stop:
				timer.Stop()
				return
			}
		}

		wait := fireAt.Sub(r.now())
		if wait < 0 {
			wait = 0
		}
		log.Printf("[DEBUG] Next reminder at %s for window %s", fireAt.Format(time.RFC3339), boundary)

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			r.mu.Lock()
			r.lastFire = fireAt
			r.mu.Unlock()
			r.fire(context.Background(), boundary)

		case <-r.rescheduled:
			timer.Stop()
			log.Println("[INFO] Windows changed, recalculating reminders...")

		case <-stop:
			timer.Stop()
			return
		}
	}
}

// nextReminder returns the next fire time strictly after both now and the previous fire.
func (r *reminder) nextReminder() (time.Time, window.Boundary, error) {
	r.mu.Lock()
	after := r.now()
	if r.lastFire.After(after) {
		after = r.lastFire
	}
	r.mu.Unlock()

	schedule, loc, lead := r.svc.reminderSchedule()
	return schedule.NextFire(after, loc, lead)
}

// fire broadcasts the report of the current bucket and then its absent list.
// The trigger is dropped when its boundary is no longer configured.
func (r *reminder) fire(ctx context.Context, boundary window.Boundary) {
	destination, messages, ok := r.svc.reminderSnapshot(boundary)
	if !ok {
		return
	}

	for _, text := range messages {
		if err := r.notifier.Send(ctx, destination, text); err != nil {
			logFailure("send reminder", err)
		}
	}
	log.Printf("[INFO] Reminder for window %s sent to %s", boundary, destination)
}

func (s *attendanceService) reminderSchedule() (window.Schedule, *time.Location, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(window.Schedule(nil), s.state.Schedule...), s.opts.Location, s.opts.ReminderLead
}

// reminderSnapshot copies out everything a reminder for boundary sends, so the
// outbound calls happen without holding mu.
func (s *attendanceService) reminderSnapshot(boundary window.Boundary) (string, []string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Schedule.Contains(boundary) {
		log.Printf("[DEBUG] Dropping stale reminder for removed window %s", boundary)
		return "", nil, false
	}
	if !s.state.Enabled {
		log.Printf("[INFO] Reporting disabled, skipping reminder for window %s", boundary)
		return "", nil, false
	}
	if s.state.BroadcastTarget == "" {
		log.Printf("[WARN] No broadcast destination, skipping reminder for window %s", boundary)
		return "", nil, false
	}

	r, err := s.buildReport()
	if err != nil {
		logFailure("build reminder report", fmt.Errorf("window %s: %w", boundary, err))
		return "", nil, false
	}

	messages := []string{report.FormatReport(r)}
	if absent := report.Absent(s.roster, s.ledger.QueryByBucket(r.Bucket.Date, r.Bucket.Window)); len(absent) > 0 {
		messages = append(messages, report.FormatAbsent(r.Bucket, absent))
	}
	return s.state.BroadcastTarget, messages, true
}
