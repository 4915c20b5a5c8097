package bot

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/example/remindbot/internal/ai"
	"github.com/example/remindbot/internal/reminders"
	"github.com/example/remindbot/pkg/models"
)

// handleMessage routes a message from an onboarded user
func (b *Bot) handleMessage(ctx context.Context, u *models.User, text string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case lower == "help":
		return helpText(u.Tone(), u.Name()), nil
	case strings.Contains(lower, "list") || strings.Contains(lower, "my reminders"):
		return b.handleList(ctx, u)
	}

	intent := b.interpreter.Interpret(ctx, text, u.Tone())
	b.log.Debug("interpreted message", zap.String("sender", u.ID), zap.Stringer("intent", intent))

	switch {
	case intent.IsRecurring:
		return recurringText(u.Tone(), intent), nil
	case intent.HasTime && !intent.NeedsTimeConfirmation:
		return b.handleTask(ctx, u, text, intent)
	case intent.IsTask:
		return clarifyText(u.Tone(), intent), nil
	default:
		return chatText(u.Tone(), intent), nil
	}
}

func (b *Bot) handleList(ctx context.Context, u *models.User) (string, error) {
	list, err := b.reminders.ListUpcoming(ctx, u.ID)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return emptyListText(u.Tone()), nil
	}
	return listText(list), nil
}

// handleTask resolves the time in the raw message and schedules the reminder.
func (b *Bot) handleTask(ctx context.Context, u *models.User, text string, intent ai.Intent) (string, error) {
	resolved := b.resolver.Resolve(text, u.Offset())
	if resolved == nil {
		return unresolvedText(u.Tone(), taskOf(intent, text)), nil
	}

	r, err := b.reminders.Create(ctx, u, resolved.Task, resolved.UTC, resolved.Display)
	if errors.Is(err, reminders.ErrTimePassed) {
		return pastTimeText(u.Tone(), taskOf(intent, text)), nil
	}
	if err != nil {
		return "", err
	}

	b.log.Info("reminder created",
		zap.String("sender", u.ID), zap.String("reminder", r.ID), zap.Time("scheduled_at", r.ScheduledAt))
	return confirmText(u.Tone(), resolved.Label, r.Task, r.LocalDisplay), nil
}

func taskOf(intent ai.Intent, text string) string {
	if intent.Task != "" {
		return intent.Task
	}
	return strings.TrimSpace(text)
}
