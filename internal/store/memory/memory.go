// Package memory is an in-process Store used by tests and by degraded mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/remindbot/internal/store"
	"github.com/example/remindbot/pkg/models"
)

// Store keeps users and reminders in maps guarded by a mutex.
type Store struct {
	mu        sync.RWMutex
	users     map[string]models.User
	reminders map[string]models.Reminder
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:     make(map[string]models.User),
		reminders: make(map[string]models.Reminder),
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Store) CreateReminder(_ context.Context, r *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders[r.ID] = *r
	return nil
}

func (s *Store) ListPending(_ context.Context, userID string, after time.Time) ([]models.Reminder, error) {
	return s.filter(func(r models.Reminder) bool {
		return r.UserID == userID && !r.Completed && r.ScheduledAt.After(after)
	}, byScheduled), nil
}

func (s *Store) ListDue(_ context.Context, now time.Time) ([]models.Reminder, error) {
	return s.filter(func(r models.Reminder) bool {
		return !r.Completed && !r.ScheduledAt.After(now)
	}, byScheduled), nil
}

func (s *Store) MarkComplete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	if !ok || r.Completed {
		return false, nil
	}
	r.Completed = true
	s.reminders[id] = r
	return true, nil
}

func (s *Store) ListAll(_ context.Context) ([]models.Reminder, error) {
	return s.filter(func(models.Reminder) bool { return true }, byCreated), nil
}

// Reminder returns a copy of a stored reminder; it exists for assertions in tests.
func (s *Store) Reminder(id string) (models.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reminders[id]
	return r, ok
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) filter(keep func(models.Reminder) bool, less func(a, b models.Reminder) bool) []models.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Reminder
	for _, r := range s.reminders {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byScheduled(a, b models.Reminder) bool {
	if a.ScheduledAt.Equal(b.ScheduledAt) {
		return a.ID < b.ID
	}
	return a.ScheduledAt.Before(b.ScheduledAt)
}

func byCreated(a, b models.Reminder) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID < b.ID
	}
	return a.CreatedAt.Before(b.CreatedAt)
}
