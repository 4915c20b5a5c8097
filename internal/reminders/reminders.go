// Package reminders owns the reminder lifecycle: creation in the future only,
// listing what is still pending, and idempotent completion.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/remindbot/internal/store"
	"github.com/example/remindbot/pkg/models"
)

// ErrTimePassed is returned by Create when the scheduled instant is not in the future.
var ErrTimePassed = errors.New("scheduled time already passed")

// Manager applies lifecycle rules on top of a ReminderRepository.
type Manager struct {
	repo    store.ReminderRepository
	timeout time.Duration
	now     func() time.Time
}

// NewManager returns a Manager whose store calls are bounded by timeout.
func NewManager(repo store.ReminderRepository, timeout time.Duration) *Manager {
	return &Manager{repo: repo, timeout: timeout, now: time.Now}
}

// WithClock replaces the manager's notion of now.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Create stores a new incomplete reminder for u. scheduledUTC must be strictly after now.
func (m *Manager) Create(ctx context.Context, u *models.User, task string, scheduledUTC time.Time, localDisplay string) (*models.Reminder, error) {
	now := m.now().UTC()
	if !scheduledUTC.After(now) {
		return nil, ErrTimePassed
	}

	r := &models.Reminder{
		ID:           uuid.NewString(),
		UserID:       u.ID,
		UserName:     u.DisplayName,
		Task:         task,
		ScheduledAt:  scheduledUTC.UTC(),
		LocalDisplay: localDisplay,
		CreatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if err := m.repo.CreateReminder(ctx, r); err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	return r, nil
}

// ListUpcoming returns userID's incomplete reminders scheduled in the future, soonest first.
func (m *Manager) ListUpcoming(ctx context.Context, userID string) ([]models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	list, err := m.repo.ListPending(ctx, userID, m.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list upcoming reminders: %w", err)
	}
	return list, nil
}

// Due returns every incomplete reminder whose time has come.
func (m *Manager) Due(ctx context.Context) ([]models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	list, err := m.repo.ListDue(ctx, m.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	return list, nil
}

// Complete marks a reminder done. Completing an already completed reminder is a no-op.
func (m *Manager) Complete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if _, err := m.repo.MarkComplete(ctx, id); err != nil {
		return fmt.Errorf("complete reminder %s: %w", id, err)
	}
	return nil
}
