package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/remindbot/internal/reminders"
	"github.com/example/remindbot/internal/store/memory"
	"github.com/example/remindbot/pkg/models"
)

type sent struct{ to, text string }

type fakeSender struct {
	mu   sync.Mutex
	sent []sent
	fail map[string]bool
}

func (f *fakeSender) Send(_ context.Context, to, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[to] {
		return errors.New("transport down")
	}
	f.sent = append(f.sent, sent{to, text})
	return nil
}

var now = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func setup(t *testing.T, sender *fakeSender) (*Scheduler, *memory.Store) {
	t.Helper()
	st := memory.New()
	mgr := reminders.NewManager(st, time.Second).WithClock(func() time.Time { return now })
	s := New(Options{
		Reminders:    mgr,
		Users:        st,
		Sender:       sender,
		SendTimeout:  time.Second,
		StoreTimeout: time.Second,
		Logger:       zap.NewNop(),
	})
	return s, st
}

func seed(t *testing.T, st *memory.Store, r models.Reminder) {
	t.Helper()
	require.NoError(t, st.CreateReminder(context.Background(), &r))
}

func TestRunOnce_DeliversDueAndCompletes(t *testing.T) {
	sender := &fakeSender{}
	s, st := setup(t, sender)
	ctx := context.Background()

	sam := "Sam"
	require.NoError(t, st.CreateUser(ctx, &models.User{ID: "u1", DisplayName: "Samantha", PreferredName: &sam}))
	seed(t, st, models.Reminder{ID: "r1", UserID: "u1", Task: "call mom", ScheduledAt: now})
	seed(t, st, models.Reminder{ID: "r2", UserID: "ghost", Task: "take vitamin", ScheduledAt: now.Add(-time.Hour)})
	seed(t, st, models.Reminder{ID: "r3", UserID: "u1", Task: "future", ScheduledAt: now.Add(time.Minute)})

	n, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "ghost", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].text, "Hey there!")
	assert.Contains(t, sender.sent[0].text, "💊")
	assert.Equal(t, "u1", sender.sent[1].to)
	assert.Contains(t, sender.sent[1].text, "Hey Sam!")
	assert.Contains(t, sender.sent[1].text, "call mom")

	for id, want := range map[string]bool{"r1": true, "r2": true, "r3": false} {
		r, _ := st.Reminder(id)
		assert.Equal(t, want, r.Completed, id)
	}

	// nothing left to send
	n, err = s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, sender.sent, 2)
}

func TestRunOnce_FailureIsIsolatedAndRetried(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{"bad": true}}
	s, st := setup(t, sender)

	seed(t, st, models.Reminder{ID: "r1", UserID: "bad", Task: "a", ScheduledAt: now.Add(-2 * time.Minute)})
	seed(t, st, models.Reminder{ID: "r2", UserID: "good", Task: "b", ScheduledAt: now.Add(-time.Minute)})

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	failed, _ := st.Reminder("r1")
	assert.False(t, failed.Completed)
	ok, _ := st.Reminder("r2")
	assert.True(t, ok.Completed)

	sender.mu.Lock()
	sender.fail = nil
	sender.mu.Unlock()

	n, err = s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	failed, _ = st.Reminder("r1")
	assert.True(t, failed.Completed)
}

func TestStartStop(t *testing.T) {
	sender := &fakeSender{}
	s, st := setup(t, sender)
	s.interval = time.Second
	seed(t, st, models.Reminder{ID: "r1", UserID: "u1", Task: "x", ScheduledAt: now})

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		r, _ := st.Reminder("r1")
		return r.Completed
	}, 3*time.Second, 20*time.Millisecond)
}

func TestDeliveryText(t *testing.T) {
	assert.Equal(t, "👨‍👩‍👧 Hey Sam! Time to connect with your loved ones:\n\n👉 call mom", DeliveryText("Sam", "call mom"))
}
