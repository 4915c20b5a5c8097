package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/remindbot/internal/store"
	"github.com/example/remindbot/pkg/models"
)

func TestStore_UserRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	u := &models.User{ID: "u1", DisplayName: "Sam", Stage: models.StageWelcome}
	require.NoError(t, s.CreateUser(ctx, u))

	u.Stage = models.StageName
	require.NoError(t, s.UpdateUser(ctx, u))

	got, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.StageName, got.Stage)

	assert.ErrorIs(t, s.UpdateUser(ctx, &models.User{ID: "ghost"}), store.ErrNotFound)
}

func TestStore_ReminderQueries(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	for _, r := range []models.Reminder{
		{ID: "late", UserID: "u1", ScheduledAt: now.Add(2 * time.Hour)},
		{ID: "soon", UserID: "u1", ScheduledAt: now.Add(time.Hour)},
		{ID: "due", UserID: "u1", ScheduledAt: now.Add(-time.Minute)},
		{ID: "other", UserID: "u2", ScheduledAt: now.Add(time.Hour)},
		{ID: "done", UserID: "u1", ScheduledAt: now.Add(-time.Hour), Completed: true},
	} {
		r := r
		require.NoError(t, s.CreateReminder(ctx, &r))
	}

	pending, err := s.ListPending(ctx, "u1", now)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "soon", pending[0].ID)
	assert.Equal(t, "late", pending[1].ID)

	due, err := s.ListDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "due", due[0].ID)

	changed, err := s.MarkComplete(ctx, "due")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.MarkComplete(ctx, "due")
	require.NoError(t, err)
	assert.False(t, changed)
}
