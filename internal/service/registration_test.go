package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-prep-bot/internal/infra/postgres/repository"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByChatID(ctx context.Context, chatID int64) (*entities.User, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Save(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// memoryUserRepository keeps users in a map for flow tests.
type memoryUserRepository struct {
	users map[int64]*entities.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[int64]*entities.User)}
}

func (m *memoryUserRepository) GetByChatID(_ context.Context, chatID int64) (*entities.User, error) {
	u, ok := m.users[chatID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUserRepository) Save(_ context.Context, user *entities.User) error {
	copied := *user
	m.users[user.ChatID] = &copied
	return nil
}

func TestRegistrationService_FullFlow(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := NewRegistrationService(repo, zap.NewNop())
	ctx := context.Background()

	user, err := svc.StartRegistration(ctx, 42, "Иван", "Петров", "ivan")
	require.NoError(t, err)
	assert.Equal(t, entities.StateScheduleTime, user.RegistrationState)
	assert.Equal(t, entities.DefaultTimezone, user.Timezone)

	user, err = svc.UpdateScheduleTime(ctx, 42, "14:00")
	require.NoError(t, err)
	assert.Equal(t, entities.StateTimezone, user.RegistrationState)
	require.NotNil(t, user.ScheduleTime)
	assert.Equal(t, "14:00", user.ScheduleTime.String())

	user, err = svc.UpdateTimezone(ctx, 42, "Europe/Moscow")
	require.NoError(t, err)
	assert.True(t, user.IsCompleted())
	assert.Equal(t, "Europe/Moscow", user.Timezone)
	assert.Equal(t, entities.DefaultQuestionsPerSession, user.QuestionsPerSession)

	// Round trip through the store keeps everything.
	stored, err := svc.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.True(t, stored.IsCompleted())
	assert.Equal(t, "14:00", stored.ScheduleTime.String())
}

func TestRegistrationService_InvalidTimeDoesNotMutate(t *testing.T) {
	repo := new(mockUserRepository)
	svc := NewRegistrationService(repo, zap.NewNop())

	// The repository must not be touched at all on a parse failure.
	_, err := svc.UpdateScheduleTime(context.Background(), 42, "25:99")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	repo.AssertNotCalled(t, "GetByChatID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegistrationService_QuestionsCountBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
		expected  int
	}{
		{name: "lower bound", input: "1", expected: 1},
		{name: "upper bound", input: "50", expected: 50},
		{name: "middle", input: "25", expected: 25},
		{name: "zero", input: "0", expectErr: true},
		{name: "too large", input: "51", expectErr: true},
		{name: "negative", input: "-5", expectErr: true},
		{name: "not a number", input: "десять", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryUserRepository()
			svc := NewRegistrationService(repo, zap.NewNop())
			ctx := context.Background()

			_, err := svc.StartRegistration(ctx, 1, "a", "b", "c")
			require.NoError(t, err)
			_, err = svc.UpdateScheduleTime(ctx, 1, "09:00")
			require.NoError(t, err)
			_, err = svc.UpdateTimezone(ctx, 1, "UTC")
			require.NoError(t, err)

			user, err := svc.UpdateQuestionsPerSession(ctx, 1, tt.input)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidQuestionsCount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, user.QuestionsPerSession)
		})
	}
}

func TestRegistrationService_DisableNotifications(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := NewRegistrationService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.StartRegistration(ctx, 1, "a", "", "")
	require.NoError(t, err)
	_, err = svc.UpdateScheduleTime(ctx, 1, "08:30")
	require.NoError(t, err)
	_, err = svc.UpdateTimezone(ctx, 1, "UTC")
	require.NoError(t, err)

	user, err := svc.DisableNotifications(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, user.ScheduleTime)
	assert.True(t, user.IsCompleted())
}

func TestRegistrationService_SettingsState(t *testing.T) {
	svc := NewRegistrationService(newMemoryUserRepository(), zap.NewNop())

	assert.False(t, svc.InSettingsState(1, SettingsAwaitingCount))

	svc.BeginSettingsInput(1, SettingsAwaitingCount)
	assert.True(t, svc.InSettingsState(1, SettingsAwaitingCount))
	assert.False(t, svc.InSettingsState(1, SettingsAwaitingTime))
	// Another chat is unaffected.
	assert.False(t, svc.InSettingsState(2, SettingsAwaitingCount))

	svc.ClearSettingsState(1)
	assert.False(t, svc.InSettingsState(1, SettingsAwaitingCount))
}
