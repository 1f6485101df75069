// Package slack provides a notifier.Notifier that posts events to a Slack incoming webhook.
package slack

import (
	"context"
	"ctwatch/pkg/domain"
	"ctwatch/pkg/notifier"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

// DefaultTimeout bounds one webhook call.
const DefaultTimeout = 10 * time.Second

// Options configure a Notifier.
type Options struct {
	// WebhookURL is the incoming webhook URL.
	WebhookURL string
	// Timeout bounds each request.
	Timeout time.Duration
}

// Notifier posts events to one Slack webhook.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

// Ensure Notifier implements notifier.Notifier.
var _ notifier.Notifier = (*Notifier)(nil)

// New validates opts and constructs a Notifier.
func New(opts Options) (*Notifier, error) {
	if opts.WebhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Notifier{
		webhookURL: opts.WebhookURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}, nil
}

// Notify implements notifier.Notifier.
func (n *Notifier) Notify(ctx context.Context, event domain.Event) error {
	msg := &slack.WebhookMessage{
		Text: notifier.Text(event),
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
		return fmt.Errorf("could not post slack webhook: %w", err)
	}

	return nil
}
