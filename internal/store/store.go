// Package store defines the persistence contracts shared by every storage backend.
//
// Two independent collections are kept: users keyed by the transport's sender
// identifier, and reminders that reference their owner by that identifier. No
// backend enforces a relation between the two; writes are single-record and
// atomic, which is all the engine relies on.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/example/remindbot/pkg/models"
)

// ErrNotFound is returned when a lookup by identifier matches no record.
var ErrNotFound = errors.New("record not found")

// UserRepository persists users.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
}

// ReminderRepository persists reminders.
type ReminderRepository interface {
	CreateReminder(ctx context.Context, r *models.Reminder) error
	// ListPending returns incomplete reminders of userID scheduled strictly after the given instant,
	// ordered by scheduled time ascending.
	ListPending(ctx context.Context, userID string, after time.Time) ([]models.Reminder, error)
	// ListDue returns every incomplete reminder scheduled at or before now, ordered by scheduled time.
	ListDue(ctx context.Context, now time.Time) ([]models.Reminder, error)
	// MarkComplete flips the completion flag if it is not set yet and reports whether it changed.
	MarkComplete(ctx context.Context, id string) (bool, error)
	// ListAll returns the full reminder history ordered by creation time.
	ListAll(ctx context.Context) ([]models.Reminder, error)
}

// Store bundles both repositories with lifecycle hooks.
type Store interface {
	UserRepository
	ReminderRepository
	Ping(ctx context.Context) error
	Close() error
}
