// Package bot is the conversation orchestrator: it routes every inbound message
// through onboarding or task handling and sends the reply.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/remindbot/internal/ai"
	"github.com/example/remindbot/internal/onboarding"
	"github.com/example/remindbot/internal/reminders"
	"github.com/example/remindbot/internal/store"
	"github.com/example/remindbot/internal/timeresolver"
	"github.com/example/remindbot/pkg/models"
)

// Inbound is one text message received from a transport.
type Inbound struct {
	SenderID    string
	DisplayName string
	Text        string
}

// Interpreter reads the intent of a message. It must always return a usable Intent.
type Interpreter interface {
	Interpret(ctx context.Context, text string, p models.Personality) ai.Intent
}

// Sender delivers plain text to a transport destination.
type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// Bot handles inbound messages
type Bot struct {
	users       store.UserRepository
	reminders   *reminders.Manager
	onboarding  *onboarding.Machine
	interpreter Interpreter
	resolver    *timeresolver.Resolver
	sender      Sender
	config      *BotConfig
	log         *zap.Logger
	now         func() time.Time
}

// Deps bundles the collaborators of a Bot.
type Deps struct {
	Users       store.UserRepository
	Reminders   *reminders.Manager
	Onboarding  *onboarding.Machine
	Interpreter Interpreter
	Resolver    *timeresolver.Resolver
	Sender      Sender
	Config      *BotConfig
	Logger      *zap.Logger
}

// New creates a new bot instance
func New(d Deps) *Bot {
	if d.Config == nil {
		d.Config = DefaultConfig()
	}
	return &Bot{
		users:       d.Users,
		reminders:   d.Reminders,
		onboarding:  d.Onboarding,
		interpreter: d.Interpreter,
		resolver:    d.Resolver,
		sender:      d.Sender,
		config:      d.Config,
		log:         d.Logger,
		now:         time.Now,
	}
}

// Handle processes one message to completion and sends the reply. Internal
// failures, panics included, are logged and answered with an apology.
func (b *Bot) Handle(ctx context.Context, in Inbound) {
	log := b.log.With(zap.String("sender", in.SenderID))
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while handling message", zap.Any("panic", r), zap.Stack("stack"))
			b.send(ctx, log, in.SenderID, apologyText)
		}
	}()

	reply, err := b.respond(ctx, in)
	if err != nil {
		log.Error("failed to handle message", zap.Error(err))
		reply = apologyText
	}
	b.send(ctx, log, in.SenderID, reply)
}

func (b *Bot) send(ctx context.Context, log *zap.Logger, to, text string) {
	if text == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, b.config.SendTimeout)
	defer cancel()
	if err := b.sender.Send(ctx, to, text); err != nil {
		log.Error("failed to send reply", zap.Error(err))
	}
}

func (b *Bot) respond(ctx context.Context, in Inbound) (string, error) {
	u, isNew, err := b.loadUser(ctx, in)
	if err != nil {
		return "", err
	}

	if !u.Onboarded() {
		return b.onboard(ctx, u, isNew, in.Text)
	}
	return b.handleMessage(ctx, u, in.Text)
}

func (b *Bot) loadUser(ctx context.Context, in Inbound) (*models.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, b.config.StoreTimeout)
	defer cancel()

	u, err := b.users.GetUser(ctx, in.SenderID)
	switch {
	case err == nil:
		return u, false, nil
	case errors.Is(err, store.ErrNotFound):
		now := b.now().UTC()
		return &models.User{
			ID:          in.SenderID,
			DisplayName: in.DisplayName,
			Stage:       models.StageWelcome,
			CreatedAt:   now,
			UpdatedAt:   now,
		}, true, nil
	default:
		return nil, false, fmt.Errorf("load user: %w", err)
	}
}

func (b *Bot) onboard(ctx context.Context, u *models.User, isNew bool, text string) (string, error) {
	reply, err := b.onboarding.Step(ctx, u, text)
	if err != nil {
		return "", err
	}
	u.UpdatedAt = b.now().UTC()

	ctx, cancel := context.WithTimeout(ctx, b.config.StoreTimeout)
	defer cancel()
	if isNew {
		err = b.users.CreateUser(ctx, u)
	} else {
		err = b.users.UpdateUser(ctx, u)
	}
	if err != nil {
		return "", fmt.Errorf("save user: %w", err)
	}
	return reply, nil
}
