package service

import (
	"context"
	"testing"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain"
	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
	"github.com/diegoclair/attendance-bot/internal/testfixtures"
	"github.com/diegoclair/attendance-bot/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testRoster = []entity.Member{
	{ID: "33069", DisplayName: "學員33069"},
	{ID: "33070", DisplayName: "學員33070"},
}

type allMocks struct {
	mockDataManager    *mocks.MockDataManager
	mockMemberRepo     *mocks.MockMemberRepo
	mockAttendanceRepo *mocks.MockAttendanceRepo
	mockStateRepo      *mocks.MockStateRepo
	mockNotifier       *mocks.MockNotifier
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	memberRepo := mocks.NewMockMemberRepo(ctrl)
	dm.EXPECT().Member().Return(memberRepo).AnyTimes()

	attendanceRepo := mocks.NewMockAttendanceRepo(ctrl)
	dm.EXPECT().Attendance().Return(attendanceRepo).AnyTimes()

	stateRepo := mocks.NewMockStateRepo(ctrl)
	dm.EXPECT().State().Return(stateRepo).AnyTimes()

	notifier := mocks.NewMockNotifier(ctrl)

	m = allMocks{
		mockDataManager:    dm,
		mockMemberRepo:     memberRepo,
		mockAttendanceRepo: attendanceRepo,
		mockStateRepo:      stateRepo,
		mockNotifier:       notifier,
	}

	// validate service creation
	instance := NewInstance(dm, notifier, Options{})
	require.NotNil(t, instance.Attendance)
	require.NotNil(t, instance.Reminder)

	return
}

func testOptions(clock *testfixtures.Clock) Options {
	return Options{
		Location:        testfixtures.Taipei,
		Policy:          window.Prospective,
		ReminderLead:    domain.DefaultReminderLead,
		RejectMalformed: true,
		DefaultRoster:   testRoster,
		Now:             clock.NowFunc(),
	}
}

// newTestService builds a service with the test roster and the default state, without touching the store.
func newTestService(m allMocks, opts Options) *attendanceService {
	return NewInstance(m.mockDataManager, m.mockNotifier, opts).Attendance
}

// expectTransaction runs WithTransaction callbacks against the same mocked DataManager.
func expectTransaction(m allMocks) *gomock.Call {
	return m.mockDataManager.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(contract.DataManager) error) error {
			return fn(m.mockDataManager)
		})
}

func at(clock *testfixtures.Clock, hour, minute int) time.Time {
	now := clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, testfixtures.Taipei)
}
