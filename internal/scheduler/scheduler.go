package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/remindbot/internal/classify"
	"github.com/example/remindbot/internal/reminders"
	"github.com/example/remindbot/internal/store"
	"github.com/example/remindbot/pkg/models"
)

// DefaultInterval is the dispatch cadence.
const DefaultInterval = time.Minute

// fallbackName greets owners whose user record is missing.
const fallbackName = "there"

// Sender delivers plain text to a transport destination.
type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// Scheduler delivers due reminders on a fixed cadence
type Scheduler struct {
	scheduler    *gocron.Scheduler
	interval     time.Duration
	reminders    *reminders.Manager
	users        store.UserRepository
	sender       Sender
	sendTimeout  time.Duration
	storeTimeout time.Duration
	log          *zap.Logger
}

// Options bundles the dependencies of a Scheduler.
type Options struct {
	Interval     time.Duration
	Reminders    *reminders.Manager
	Users        store.UserRepository
	Sender       Sender
	SendTimeout  time.Duration
	StoreTimeout time.Duration
	Logger       *zap.Logger
}

// New creates a new scheduler instance
func New(o Options) *Scheduler {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	return &Scheduler{
		scheduler:    gocron.NewScheduler(time.UTC),
		interval:     o.Interval,
		reminders:    o.Reminders,
		users:        o.Users,
		sender:       o.Sender,
		sendTimeout:  o.SendTimeout,
		storeTimeout: o.StoreTimeout,
		log:          o.Logger,
	}
}

// Start schedules the dispatch job and runs it in the background.
// A tick that is still running when the next one is due is not overlapped.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.tick); err != nil {
		return fmt.Errorf("schedule dispatch job: %w", err)
	}
	s.scheduler.StartAsync()
	s.log.Info("dispatch loop started", zap.Duration("interval", s.interval))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) tick() {
	if _, err := s.RunOnce(context.Background()); err != nil {
		s.log.Error("dispatch tick failed", zap.Error(err))
	}
}

// RunOnce delivers every due reminder and returns how many were delivered.
// A failure for one reminder is logged and does not stop the rest; that reminder
// stays pending and is retried on the next run.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	due, err := s.reminders.Due(ctx)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, r := range due {
		if err := s.deliver(ctx, r); err != nil {
			s.log.Error("reminder delivery failed",
				zap.String("reminder", r.ID), zap.String("user", r.UserID), zap.Error(err))
			continue
		}
		delivered++
	}
	if len(due) > 0 {
		s.log.Info("dispatch run finished", zap.Int("due", len(due)), zap.Int("delivered", delivered))
	}
	return delivered, nil
}

func (s *Scheduler) deliver(ctx context.Context, r models.Reminder) error {
	text := DeliveryText(s.ownerName(ctx, r.UserID), r.Task)

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	err := s.sender.Send(sendCtx, r.UserID, text)
	cancel()
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	// a failure here means the reminder may be delivered again next run
	if err := s.reminders.Complete(ctx, r.ID); err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) ownerName(ctx context.Context, userID string) string {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("owner lookup failed", zap.String("user", userID), zap.Error(err))
		}
		return fallbackName
	}
	if name := u.Name(); name != "" {
		return name
	}
	return fallbackName
}

// DeliveryText formats the message sent when a reminder fires.
func DeliveryText(name, task string) string {
	l := classify.Classify(task)
	return fmt.Sprintf("%s Hey %s! %s:\n\n👉 %s", l.Emoji, name, l.Delivery, task)
}
