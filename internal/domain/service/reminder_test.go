package service

import (
	"context"
	"errors"
	"testing"
	"time"

	slackcmd "github.com/diegoclair/attendance-bot/internal/domain/slack"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
	"github.com/diegoclair/attendance-bot/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReminder(t *testing.T, clock *testfixtures.Clock, windows ...string) (allMocks, *attendanceService, *reminder) {
	t.Helper()

	m, _ := newServiceTestMock(t)
	instance := NewInstance(m.mockDataManager, m.mockNotifier, testOptions(clock))
	instance.Attendance.state.Schedule = window.MustSchedule(windows...)
	instance.Attendance.state.BroadcastTarget = "C123456789"
	return m, instance.Attendance, instance.Reminder
}

func Test_reminder_nextReminder(t *testing.T) {
	tests := []struct {
		name         string
		now          [2]int
		lastFire     *[2]int
		windows      []string
		wantFire     [2]int
		wantDay      int
		wantBoundary string
	}{
		{name: "Should fire five minutes before the next window", now: [2]int{8, 0}, windows: []string{"09:00", "16:00", "21:00"}, wantFire: [2]int{8, 55}, wantBoundary: "09:00"},
		{name: "Should skip a fire time already reached", now: [2]int{8, 55}, windows: []string{"09:00", "16:00"}, wantFire: [2]int{15, 55}, wantBoundary: "16:00"},
		{name: "Should roll to tomorrow after the last window", now: [2]int{22, 0}, windows: []string{"09:00", "21:00"}, wantFire: [2]int{8, 55}, wantDay: 1, wantBoundary: "09:00"},
		{name: "Should fire the day before for windows right after midnight", now: [2]int{22, 0}, windows: []string{"00:03"}, wantFire: [2]int{23, 58}, wantBoundary: "00:03"},
		{name: "Should not refire the previous trigger", now: [2]int{8, 54}, lastFire: &[2]int{8, 55}, windows: []string{"09:00"}, wantFire: [2]int{8, 55}, wantDay: 1, wantBoundary: "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := testfixtures.NewClock(time.Time{})
			_, _, r := newTestReminder(t, clock, tt.windows...)
			clock.Set(at(clock, tt.now[0], tt.now[1]))
			if tt.lastFire != nil {
				r.lastFire = at(clock, tt.lastFire[0], tt.lastFire[1])
			}

			fireAt, boundary, err := r.nextReminder()

			require.NoError(t, err)
			want := at(clock, tt.wantFire[0], tt.wantFire[1]).AddDate(0, 0, tt.wantDay)
			assert.True(t, want.Equal(fireAt), "want %s, got %s", want, fireAt)
			assert.Equal(t, tt.wantBoundary, boundary.String())
		})
	}
}

func Test_reminder_fire(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(s *attendanceService)
		buildMock func(mocks allMocks)
	}{
		{
			name: "Should broadcast the report and the absent list",
			setup: func(s *attendanceService) {
				s.ledger.Upsert("33069", "在家", "09:00", "2024-01-01", testfixtures.ReferenceTime())
			},
			buildMock: func(mocks allMocks) {
				gomock.InOrder(
					mocks.mockNotifier.EXPECT().Send(gomock.Any(), "C123456789", gomock.Any()).
						DoAndReturn(func(ctx context.Context, destination, text string) error {
							require.Contains(t, text, "Reported: 1 | Missing: 1")
							return nil
						}).Times(1),
					mocks.mockNotifier.EXPECT().Send(gomock.Any(), "C123456789", gomock.Any()).
						DoAndReturn(func(ctx context.Context, destination, text string) error {
							require.Contains(t, text, "33070 學員33070")
							require.NotContains(t, text, "33069")
							return nil
						}).Times(1),
				)
			},
		},
		{
			name: "Should send only the report when everyone reported",
			setup: func(s *attendanceService) {
				s.ledger.Upsert("33069", "a", "09:00", "2024-01-01", testfixtures.ReferenceTime())
				s.ledger.Upsert("33070", "b", "09:00", "2024-01-01", testfixtures.ReferenceTime())
			},
			buildMock: func(mocks allMocks) {
				mocks.mockNotifier.EXPECT().Send(gomock.Any(), "C123456789", gomock.Any()).Return(nil).Times(1)
			},
		},
		{
			name: "Should keep sending after a failed broadcast",
			buildMock: func(mocks allMocks) {
				mocks.mockNotifier.EXPECT().Send(gomock.Any(), "C123456789", gomock.Any()).
					Return(errors.New("channel_not_found")).Times(2)
			},
		},
		{
			name: "Should do nothing while disabled",
			setup: func(s *attendanceService) {
				s.state.Enabled = false
			},
		},
		{
			name: "Should do nothing without a destination",
			setup: func(s *attendanceService) {
				s.state.BroadcastTarget = ""
			},
		},
		{
			name: "Should drop a trigger for a removed window",
			setup: func(s *attendanceService) {
				s.state.Schedule = window.MustSchedule("10:00")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := testfixtures.NewClock(time.Time{})
			m, s, r := newTestReminder(t, clock, "09:00", "16:00", "21:00")
			clock.Set(at(clock, 8, 55))

			if tt.setup != nil {
				tt.setup(s)
			}
			if tt.buildMock != nil {
				tt.buildMock(m)
			}

			r.fire(context.Background(), window.Boundary{Hour: 9})
		})
	}
}

func Test_reminder_ScheduleChangeReplacesTriggers(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	m, s, r := newTestReminder(t, clock, "09:00")
	ctx := context.Background()

	fireAt, boundary, err := r.nextReminder()
	require.NoError(t, err)
	require.True(t, fireAt.Equal(at(clock, 8, 55)))

	m.mockStateRepo.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
	_, err = s.Execute(ctx, &slackcmd.Command{Type: slackcmd.CmdSetSchedule, Args: []string{"10:00"}})
	require.NoError(t, err)
	assert.Len(t, r.rescheduled, 1)

	// the timer armed for 09:00 goes off, nothing is sent
	clock.Set(fireAt)
	r.lastFire = fireAt
	r.fire(ctx, boundary)

	fireAt, boundary, err = r.nextReminder()
	require.NoError(t, err)
	assert.True(t, fireAt.Equal(at(clock, 9, 55)))
	assert.Equal(t, "10:00", boundary.String())

	clock.Set(fireAt)
	m.mockNotifier.EXPECT().Send(gomock.Any(), "C123456789", gomock.Any()).
		DoAndReturn(func(ctx context.Context, destination, text string) error {
			require.Contains(t, text, "2024-01-01 10:00")
			return nil
		}).Times(2)
	r.fire(ctx, boundary)
}

func Test_reminder_ZeroLeadUsesDefault(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	m, _ := newServiceTestMock(t)
	opts := testOptions(clock)
	opts.ReminderLead = 0
	instance := NewInstance(m.mockDataManager, m.mockNotifier, opts)
	s, r := instance.Attendance, instance.Reminder
	s.state.Schedule = window.MustSchedule("09:00", "16:00")
	s.state.BroadcastTarget = "C123456789"
	s.ledger.Upsert("33069", "在家", "09:00", "2024-01-01", testfixtures.ReferenceTime())

	fireAt, boundary, err := r.nextReminder()
	require.NoError(t, err)
	require.True(t, fireAt.Equal(at(clock, 8, 55)), "got %s", fireAt)
	require.Equal(t, "09:00", boundary.String())

	clock.Set(fireAt)
	gomock.InOrder(
		m.mockNotifier.EXPECT().Send(gomock.Any(), "C123456789", gomock.Any()).
			DoAndReturn(func(ctx context.Context, destination, text string) error {
				assert.Contains(t, text, "2024-01-01 09:00")
				assert.Contains(t, text, "Reported: 1 | Missing: 1")
				return nil
			}).Times(1),
		m.mockNotifier.EXPECT().Send(gomock.Any(), "C123456789", gomock.Any()).
			DoAndReturn(func(ctx context.Context, destination, text string) error {
				assert.Contains(t, text, "33070")
				assert.NotContains(t, text, "33069")
				return nil
			}).Times(1),
	)
	r.fire(context.Background(), boundary)
}

func Test_reminder_mainLoop(t *testing.T) {
	t.Run("Should fire when the timer expires", func(t *testing.T) {
		clock := testfixtures.NewClock(time.Time{})
		m, _, r := newTestReminder(t, clock, "09:00")
		clock.Set(at(clock, 8, 55).Add(-50 * time.Millisecond))

		sent := make(chan string, 2)
		m.mockNotifier.EXPECT().Send(gomock.Any(), "C123456789", gomock.Any()).
			DoAndReturn(func(ctx context.Context, destination, text string) error {
				sent <- text
				return nil
			}).Times(2)

		r.Start()
		defer r.Stop()

		for i := 0; i < 2; i++ {
			select {
			case text := <-sent:
				assert.Contains(t, text, "2024-01-01 09:00")
			case <-time.After(5 * time.Second):
				t.Fatal("reminder did not fire")
			}
		}
	})

	t.Run("Should rearm after a schedule change", func(t *testing.T) {
		clock := testfixtures.NewClock(time.Time{})
		m, s, r := newTestReminder(t, clock, "09:00")

		sent := make(chan string, 2)
		m.mockStateRepo.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
		m.mockNotifier.EXPECT().Send(gomock.Any(), "C123456789", gomock.Any()).
			DoAndReturn(func(ctx context.Context, destination, text string) error {
				sent <- text
				return nil
			}).Times(2)

		r.Start()
		defer r.Stop()

		// the 08:55 timer is 55 minutes away; the new window is due in 50ms
		clock.Set(at(clock, 9, 55).Add(-50 * time.Millisecond))
		_, err := s.Execute(context.Background(), &slackcmd.Command{Type: slackcmd.CmdSetSchedule, Args: []string{"10:00"}})
		require.NoError(t, err)

		select {
		case text := <-sent:
			assert.Contains(t, text, "2024-01-01 10:00")
		case <-time.After(5 * time.Second):
			t.Fatal("reminder did not fire after reschedule")
		}
		<-sent
	})

	t.Run("Should stop idempotently", func(t *testing.T) {
		clock := testfixtures.NewClock(time.Time{})
		_, _, r := newTestReminder(t, clock, "09:00")

		r.Start()
		r.Start()
		r.Stop()
		r.Stop()
	})
}

func Test_reminderSnapshot_CopiesState(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	_, s, _ := newTestReminder(t, clock, "09:00")

	destination, messages, ok := s.reminderSnapshot(window.Boundary{Hour: 9})

	require.True(t, ok)
	assert.Equal(t, "C123456789", destination)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "Nobody has reported yet")
	assert.Contains(t, messages[1], "Missing for 2024-01-01 09:00: 2")

}
