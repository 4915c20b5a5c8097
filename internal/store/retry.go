package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Opener opens one connection attempt to a backend.
type Opener func(ctx context.Context) (Store, error)

// Connect calls open up to attempts times, sleeping backoff between failures.
func Connect(ctx context.Context, attempts int, backoff time.Duration, log *zap.Logger, open Opener) (Store, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		s, err := open(ctx)
		if err == nil {
			return s, nil
		}
		lastErr = err
		log.Warn("store connect failed",
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("store unavailable after %d attempts: %w", attempts, lastErr)
}
