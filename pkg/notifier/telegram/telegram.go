// Package telegram provides a notifier.Notifier that posts events to a Telegram chat
// through the Bot API sendMessage method.
package telegram

import (
	"context"
	"ctwatch/pkg/domain"
	"ctwatch/pkg/notifier"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	// DefaultBaseURL is the public Bot API endpoint.
	DefaultBaseURL = "https://api.telegram.org"
	// DefaultTimeout bounds one sendMessage call.
	DefaultTimeout = 10 * time.Second
	// MaxMessageLength is the Bot API limit for a single message text.
	MaxMessageLength = 4096
)

// Options configure a Notifier.
type Options struct {
	// Token is the bot token issued by BotFather.
	Token string
	// ChatID is the chat (or user) that receives notifications.
	ChatID string
	// BaseURL overrides the Bot API endpoint.
	BaseURL string
	// Timeout bounds each request.
	Timeout time.Duration
}

// Notifier sends events to one Telegram chat. It is safe for concurrent use.
// It only calls sendMessage and never polls for updates.
type Notifier struct {
	options Options
	bot     *bot.Bot
}

// Ensure Notifier implements notifier.Notifier.
var _ notifier.Notifier = (*Notifier)(nil)

// New validates opts and constructs a Notifier. No request is made until the first Notify.
func New(opts Options) (*Notifier, error) {
	if opts.Token == "" || opts.ChatID == "" {
		return nil, errors.New("telegram token and chat id are required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	b, err := bot.New(opts.Token,
		bot.WithSkipGetMe(),
		bot.WithServerURL(opts.BaseURL),
		bot.WithHTTPClient(opts.Timeout, &http.Client{Timeout: opts.Timeout}))
	if err != nil {
		return nil, fmt.Errorf("could not create telegram bot: %s", redact(err, opts.Token))
	}

	return &Notifier{options: opts, bot: b}, nil
}

// Notify implements notifier.Notifier. Messages above the Bot API length limit are
// sent as several consecutive messages.
func (n *Notifier) Notify(ctx context.Context, event domain.Event) error {
	for _, chunk := range notifier.Split(notifier.Text(event), MaxMessageLength) {
		if err := n.send(ctx, chunk); err != nil {
			return err
		}
	}

	return nil
}

func (n *Notifier) send(ctx context.Context, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:             n.options.ChatID,
		Text:               text,
		ParseMode:          models.ParseModeMarkdownV1,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
	})
	if err != nil {
		return fmt.Errorf("could not send telegram message: %s", redact(err, n.options.Token))
	}

	return nil
}

// redact returns the text of err with the bot token removed. Transport errors quote
// the request URL, which embeds the token.
func redact(err error, token string) string {
	return strings.ReplaceAll(err.Error(), token, "<token>")
}
