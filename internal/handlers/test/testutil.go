package test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/diegoclair/attendance-bot/internal/handlers"
	"github.com/diegoclair/attendance-bot/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// SigningSecret signs every request built by this package
const SigningSecret = "test-signing-secret"

type ServiceMocks struct {
	AttendanceServiceMock *mocks.MockAttendanceService
	NotifierMock          *mocks.MockNotifier
}

func GetHandlerTest(t *testing.T) (m ServiceMocks, handler *handlers.SlackHandler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = ServiceMocks{
		AttendanceServiceMock: mocks.NewMockAttendanceService(ctrl),
		NotifierMock:          mocks.NewMockNotifier(ctrl),
	}

	handler = handlers.New(m.AttendanceServiceMock, m.NotifierMock, SigningSecret)

	return
}

// GetRouterTest returns the full router backed by the same mocks.
func GetRouterTest(t *testing.T) (m ServiceMocks, router http.Handler, handler *handlers.SlackHandler) {
	t.Helper()

	m, handler, _ = GetHandlerTest(t)
	router = handlers.NewRouter(handler, handlers.NewAPI(m.AttendanceServiceMock))

	return
}

// CreateSlackRequest creates a properly signed Slack slash command request
func CreateSlackRequest(t *testing.T, command, text, channelID, channelName, userID, teamID string) *http.Request {
	t.Helper()

	// Create form data matching Slack's slash command format
	form := url.Values{
		"token":        {"test-token"},
		"team_id":      {teamID},
		"team_domain":  {"test-team"},
		"channel_id":   {channelID},
		"channel_name": {channelName},
		"user_id":      {userID},
		"user_name":    {"test-user"},
		"command":      {command},
		"text":         {text},
		"response_url": {"https://hooks.slack.com/commands/test"},
		"trigger_id":   {"test-trigger-id"},
	}

	req := newSignedRequest(t, "/slack/commands", form.Encode())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

// CreateEventRequest creates a properly signed Events API request carrying payload
func CreateEventRequest(t *testing.T, payload string) *http.Request {
	t.Helper()

	req := newSignedRequest(t, "/slack/events", payload)
	req.Header.Set("Content-Type", "application/json")

	return req
}

// MessageEventPayload builds an event_callback envelope around a message event
func MessageEventPayload(channelID, channelType, userID, text string) string {
	return fmt.Sprintf(`{
		"token": "test-token",
		"team_id": "T123456789",
		"api_app_id": "A123456789",
		"type": "event_callback",
		"event_id": "Ev123",
		"event_time": 1704067200,
		"event": {
			"type": "message",
			"channel": %q,
			"channel_type": %q,
			"user": %q,
			"text": %q,
			"ts": "1704067200.000100",
			"event_ts": "1704067200.000100"
		}
	}`, channelID, channelType, userID, text)
}

func newSignedRequest(t *testing.T, path, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	require.NoError(t, err)

	// Generate Slack signature
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", generateSlackSignature(SigningSecret, timestamp, body))

	return req
}

func generateSlackSignature(signingSecret, timestamp, body string) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	signature := hex.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("v0=%s", signature)
}

func CreateTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
