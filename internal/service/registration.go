package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
)

var (
	ErrInvalidTimeFormat     = errors.New("invalid schedule time format")
	ErrInvalidQuestionsCount = errors.New("invalid questions count")
)

// SettingsState is the transient sub-state used while a completed user edits
// a setting via free-text input.
type SettingsState int

const (
	SettingsNone SettingsState = iota
	SettingsAwaitingCount
	SettingsAwaitingTime
)

// UserRepository is the user storage contract the registration machine needs.
type UserRepository interface {
	GetByChatID(ctx context.Context, chatID int64) (*entities.User, error)
	Save(ctx context.Context, user *entities.User) error
}

// RegistrationService drives a chat through onboarding:
// start -> schedule_time -> timezone -> completed. It also owns the transient
// settings sub-state for completed users.
type RegistrationService struct {
	users  UserRepository
	logger *zap.Logger

	mu            sync.Mutex
	settingsState map[int64]SettingsState
}

func NewRegistrationService(users UserRepository, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		users:         users,
		logger:        logger,
		settingsState: make(map[int64]SettingsState),
	}
}

// GetUser returns the user record for a chat, or ErrUserNotFound from the
// repository when none exists.
func (s *RegistrationService) GetUser(ctx context.Context, chatID int64) (*entities.User, error) {
	return s.users.GetByChatID(ctx, chatID)
}

// StartRegistration creates (or resets) the user record for a chat, capturing
// the Telegram profile fields, and moves it straight to the schedule_time
// step.
func (s *RegistrationService) StartRegistration(ctx context.Context, chatID int64, firstName, lastName, username string) (*entities.User, error) {
	user := entities.NewUser(chatID, firstName, lastName, username)
	user.RegistrationState = entities.StateScheduleTime

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("start registration: %w", err)
	}

	return user, nil
}

// UpdateScheduleTime parses an "HH:MM" string and advances the user to the
// timezone step. A parse failure leaves the record untouched.
func (s *RegistrationService) UpdateScheduleTime(ctx context.Context, chatID int64, timeStr string) (*entities.User, error) {
	dt, err := entities.ParseDayTime(timeStr)
	if err != nil {
		s.logger.Warn("invalid schedule time",
			zap.Int64("chat_id", chatID),
			zap.String("input", timeStr),
		)
		return nil, ErrInvalidTimeFormat
	}

	return s.updateUser(ctx, chatID, func(u *entities.User) {
		u.ScheduleTime = &dt
		u.RegistrationState = entities.StateTimezone
	})
}

// UpdateTimezone stores the timezone string as-is and completes registration.
// Validation is deliberately lenient: an unresolvable zone surfaces later as
// a scheduling-time error, not a registration rejection.
func (s *RegistrationService) UpdateTimezone(ctx context.Context, chatID int64, timezone string) (*entities.User, error) {
	return s.updateUser(ctx, chatID, func(u *entities.User) {
		u.Timezone = timezone
		u.QuestionsPerSession = entities.DefaultQuestionsPerSession
		u.RegistrationState = entities.StateCompleted
	})
}

// ChangeScheduleTime updates the daily prompt time for a completed user
// without touching the registration state.
func (s *RegistrationService) ChangeScheduleTime(ctx context.Context, chatID int64, timeStr string) (*entities.User, error) {
	dt, err := entities.ParseDayTime(timeStr)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	return s.updateUser(ctx, chatID, func(u *entities.User) {
		u.ScheduleTime = &dt
	})
}

// UpdateQuestionsPerSession parses and bounds-checks a new per-session
// question count.
func (s *RegistrationService) UpdateQuestionsPerSession(ctx context.Context, chatID int64, countStr string) (*entities.User, error) {
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return nil, ErrInvalidQuestionsCount
	}
	if count < entities.MinQuestionsPerSession || count > entities.MaxQuestionsPerSession {
		return nil, ErrInvalidQuestionsCount
	}

	user, err := s.updateUser(ctx, chatID, func(u *entities.User) {
		u.QuestionsPerSession = count
	})
	if err != nil {
		return nil, err
	}

	s.ClearSettingsState(chatID)
	return user, nil
}

// DisableNotifications clears the schedule time so the daily prompt stops.
func (s *RegistrationService) DisableNotifications(ctx context.Context, chatID int64) (*entities.User, error) {
	return s.updateUser(ctx, chatID, func(u *entities.User) {
		u.ScheduleTime = nil
	})
}

// BeginSettingsInput marks the chat as awaiting a free-text settings value.
func (s *RegistrationService) BeginSettingsInput(chatID int64, state SettingsState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settingsState[chatID] = state
}

// InSettingsState reports whether the chat is in the given settings sub-state.
func (s *RegistrationService) InSettingsState(chatID int64, state SettingsState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settingsState[chatID] == state
}

// ClearSettingsState removes any settings sub-state for the chat.
func (s *RegistrationService) ClearSettingsState(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.settingsState, chatID)
}

func (s *RegistrationService) updateUser(ctx context.Context, chatID int64, mutate func(*entities.User)) (*entities.User, error) {
	user, err := s.users.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	mutate(user)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
