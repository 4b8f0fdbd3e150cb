package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
)

// UserLister provides the users eligible for daily prompts.
type UserLister interface {
	ListScheduled(ctx context.Context) ([]*entities.User, error)
}

// Notifier delivers the daily prompt to a chat.
type Notifier interface {
	SendDailyPrompt(chatID int64)
}

// Scheduler fires the daily "ready to practice?" prompt. It ticks once a
// minute and notifies every user whose configured time, in their own
// timezone, matches the current wall clock to the minute.
type Scheduler struct {
	users    UserLister
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewScheduler(users UserLister, notifier Notifier, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		users:    users,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the minute tick loop until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New()

	_, err := c.AddFunc("* * * * *", func() {
		s.tick(ctx)
	})
	if err != nil {
		return err
	}

	c.Start()
	s.logger.Info("notification scheduler started")

	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()

	s.logger.Info("notification scheduler stopped")
	return nil
}

// tick checks every scheduled user against the current minute. A failure for
// one user never blocks the rest.
func (s *Scheduler) tick(ctx context.Context) {
	users, err := s.users.ListScheduled(ctx)
	if err != nil {
		s.logger.Error("list scheduled users", zap.Error(err))
		return
	}

	now := s.now()

	for _, user := range users {
		if user.ScheduleTime == nil {
			continue
		}

		loc, err := entities.ParseTimezoneLocation(user.Timezone)
		if err != nil {
			s.logger.Warn("unresolvable timezone",
				zap.Int64("chat_id", user.ChatID),
				zap.String("timezone", user.Timezone),
			)
			continue
		}

		local := now.In(loc)
		if local.Hour() == user.ScheduleTime.Hour && local.Minute() == user.ScheduleTime.Minute {
			s.logger.Info("sending daily prompt",
				zap.Int64("chat_id", user.ChatID),
				zap.String("time", user.ScheduleTime.String()),
			)
			s.notifier.SendDailyPrompt(user.ChatID)
		}
	}
}
