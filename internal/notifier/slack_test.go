package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *slack.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return slack.New("xoxb-test", slack.OptionAPIURL(srv.URL+"/"))
}

func TestSlack_Send(t *testing.T) {
	t.Run("should post the text to the destination", func(t *testing.T) {
		var gotChannel, gotText, gotPath string
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotPath = r.URL.Path
			gotChannel = r.FormValue("channel")
			gotText = r.FormValue("text")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"ok":true,"channel":"C123456789","ts":"1700000000.000100"}`)
		})

		err := NewSlack(client, time.Second).Send(context.Background(), "C123456789", "📊 report")

		require.NoError(t, err)
		assert.Equal(t, "/chat.postMessage", gotPath)
		assert.Equal(t, "C123456789", gotChannel)
		assert.Equal(t, "📊 report", gotText)
	})

	t.Run("should wrap api errors", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"ok":false,"error":"channel_not_found"}`)
		})

		err := NewSlack(client, time.Second).Send(context.Background(), "C000", "hello")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotificationFailure))
		assert.Contains(t, err.Error(), "channel_not_found")
	})

	t.Run("should reject an empty destination without calling slack", func(t *testing.T) {
		called := false
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		err := NewSlack(client, 0).Send(context.Background(), "  ", "hello")

		assert.ErrorIs(t, err, domain.ErrNotificationFailure)
		assert.False(t, called)
	})
}
