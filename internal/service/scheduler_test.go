package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
)

type fakeUserLister struct {
	users []*entities.User
	err   error
}

func (f *fakeUserLister) ListScheduled(context.Context) ([]*entities.User, error) {
	return f.users, f.err
}

type recordingNotifier struct {
	notified []int64
}

func (r *recordingNotifier) SendDailyPrompt(chatID int64) {
	r.notified = append(r.notified, chatID)
}

func scheduledUser(chatID int64, hour, minute int, tz string) *entities.User {
	return &entities.User{
		ChatID:            chatID,
		ScheduleTime:      &entities.DayTime{Hour: hour, Minute: minute},
		Timezone:          tz,
		RegistrationState: entities.StateCompleted,
	}
}

func newTestScheduler(users []*entities.User, notifier Notifier, now time.Time) *Scheduler {
	s := NewScheduler(&fakeUserLister{users: users}, notifier, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestScheduler_TickFiresOnExactMinute(t *testing.T) {
	user := scheduledUser(42, 9, 5, "UTC")

	tests := []struct {
		name     string
		now      time.Time
		expected []int64
	}{
		{
			name:     "exact match fires once",
			now:      time.Date(2026, time.March, 10, 9, 5, 30, 0, time.UTC),
			expected: []int64{42},
		},
		{
			name:     "one minute early",
			now:      time.Date(2026, time.March, 10, 9, 4, 59, 0, time.UTC),
			expected: nil,
		},
		{
			name:     "one minute late",
			now:      time.Date(2026, time.March, 10, 9, 6, 0, 0, time.UTC),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			s := newTestScheduler([]*entities.User{user}, notifier, tt.now)

			s.tick(context.Background())

			assert.Equal(t, tt.expected, notifier.notified)
		})
	}
}

func TestScheduler_TickHonorsUserTimezone(t *testing.T) {
	// 09:00 in Moscow is 06:00 UTC.
	user := scheduledUser(7, 9, 0, "Europe/Moscow")
	notifier := &recordingNotifier{}

	now := time.Date(2026, time.March, 10, 6, 0, 0, 0, time.UTC)
	s := newTestScheduler([]*entities.User{user}, notifier, now)

	s.tick(context.Background())

	assert.Equal(t, []int64{7}, notifier.notified)
}

func TestScheduler_BadTimezoneDoesNotBlockOthers(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 5, 0, 0, time.UTC)

	users := []*entities.User{
		scheduledUser(1, 9, 5, "не пояс"),
		scheduledUser(2, 9, 5, "UTC"),
	}

	notifier := &recordingNotifier{}
	s := newTestScheduler(users, notifier, now)

	s.tick(context.Background())

	assert.Equal(t, []int64{2}, notifier.notified)
}

func TestScheduler_ListFailureFiresNothing(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewScheduler(&fakeUserLister{err: errors.New("db down")}, notifier, zap.NewNop())

	s.tick(context.Background())

	assert.Empty(t, notifier.notified)
}

func TestScheduler_SkipsUsersWithoutScheduleTime(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 5, 0, 0, time.UTC)

	user := &entities.User{ChatID: 3, Timezone: "UTC", RegistrationState: entities.StateCompleted}
	notifier := &recordingNotifier{}
	s := newTestScheduler([]*entities.User{user}, notifier, now)

	s.tick(context.Background())

	assert.Empty(t, notifier.notified)
}
