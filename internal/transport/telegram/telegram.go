// Package telegram is the long-polling alternative to the WhatsApp transport.
// Chat identifiers are used as sender identifiers, as decimal strings.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/remindbot/internal/bot"
)

const pollTimeout = 60 // seconds

// MessageHandler consumes inbound text messages.
type MessageHandler interface {
	Handle(ctx context.Context, in bot.Inbound)
}

// Telegram polls for updates and sends messages through the Bot API.
type Telegram struct {
	api    *tgbotapi.BotAPI // long polling
	sender *tgbotapi.BotAPI // outbound messages, bounded by the send timeout
	log    *zap.Logger
}

// New authorizes against the Bot API. An empty endpoint selects the public API.
// Polling gets a client that outlives the poll timeout; sends get their own
// client limited to sendTimeout.
func New(token, endpoint string, sendTimeout time.Duration, log *zap.Logger) (*Telegram, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := &http.Client{Timeout: pollTimeout*time.Second + sendTimeout}

	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	sender := *api
	sender.Client = &http.Client{Timeout: sendTimeout}

	log.Info("telegram authorized", zap.String("account", api.Self.UserName))
	return &Telegram{api: api, sender: &sender, log: log}, nil
}

// Run hands every text message to h, one at a time, until ctx is cancelled.
func (t *Telegram) Run(ctx context.Context, h MessageHandler) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	updates := t.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if in, ok := toInbound(update); ok {
				h.Handle(context.WithoutCancel(ctx), in)
			}
		}
	}
}

// Send delivers text to a chat. The Bot API client takes no context, so the send
// client's timeout bounds the request and ctx is checked before it starts.
func (t *Telegram) Send(ctx context.Context, to, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	chatID, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: invalid chat id %q: %w", to, err)
	}
	if _, err := t.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	return nil
}

func toInbound(update tgbotapi.Update) (bot.Inbound, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || strings.TrimSpace(msg.Text) == "" {
		return bot.Inbound{}, false
	}

	name := msg.Chat.FirstName
	if msg.From != nil && msg.From.FirstName != "" {
		name = msg.From.FirstName
	}
	text := msg.Text
	// "/start" opens every Telegram chat; onboarding ignores the first message anyway
	if msg.IsCommand() && msg.Command() == "help" {
		text = "help"
	}
	return bot.Inbound{
		SenderID:    strconv.FormatInt(msg.Chat.ID, 10),
		DisplayName: name,
		Text:        text,
	}, true
}
