package contract

import "context"

// Notifier delivers text to a chat destination.
// A returned error means the message was not delivered; callers log it and move on.
type Notifier interface {
	Send(ctx context.Context, destination, text string) error
}
