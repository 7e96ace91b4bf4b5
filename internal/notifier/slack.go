package notifier

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain"
	"github.com/slack-go/slack"
)

// DefaultTimeout bounds a single outbound post.
const DefaultTimeout = 10 * time.Second

// Poster is the part of *slack.Client the notifier needs
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack delivers broadcasts and replies as bot messages.
type Slack struct {
	client  Poster
	timeout time.Duration
}

func NewSlack(client Poster, timeout time.Duration) *Slack {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Slack{client: client, timeout: timeout}
}

// Send posts text to the channel or conversation id in destination.
// Every failure wraps domain.ErrNotificationFailure.
func (n *Slack) Send(ctx context.Context, destination, text string) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return fmt.Errorf("%w: no destination", domain.ErrNotificationFailure)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	_, _, err := n.client.PostMessageContext(ctx,
		destination,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(false),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to send Slack message to %s: %v", domain.ErrNotificationFailure, destination, err)
	}

	log.Printf("[DEBUG] Message sent to %s", destination)
	return nil
}
