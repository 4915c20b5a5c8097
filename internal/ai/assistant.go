package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/remindbot/pkg/models"
)

// Assistant runs the reminder queries against a completion service, each bounded
// by a timeout. Failures are logged and answered with the query's fallback.
type Assistant struct {
	client  Completer
	timeout time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// NewAssistant returns an Assistant. A nil client makes every query fall back.
func NewAssistant(client Completer, timeout time.Duration, log *zap.Logger) *Assistant {
	return &Assistant{client: client, timeout: timeout, now: time.Now, log: log}
}

// Configured reports whether a completion client is present.
func (a *Assistant) Configured() bool {
	return a.client != nil
}

// Interpret classifies a message. It always returns a usable Intent.
func (a *Assistant) Interpret(ctx context.Context, text string, p models.Personality) Intent {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	intent, err := Ask(ctx, a.client, intentQuery, IntentRequest{Text: text, Personality: p})
	if err != nil {
		a.log.Warn("intent interpretation failed, using fallback", zap.Error(err))
	}
	return intent
}

// InferTimezone guesses the user's UTC offset from free text. There is no fallback;
// callers should re-prompt on error.
func (a *Assistant) InferTimezone(ctx context.Context, text string) (Timezone, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	tz, err := Ask(ctx, a.client, timezoneQuery, TimezoneRequest{Text: text, Now: a.now().UTC()})
	if err != nil {
		a.log.Warn("timezone inference failed", zap.Error(err))
	}
	return tz, err
}

// ExtractName pulls a preferred name out of a reply, falling back to the reply itself.
func (a *Assistant) ExtractName(ctx context.Context, text string) Name {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	name, err := Ask(ctx, a.client, nameQuery, text)
	if err != nil {
		a.log.Warn("name extraction failed, using raw text", zap.Error(err))
	}
	return name
}
