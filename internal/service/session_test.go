package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
)

type mockQuestionBank struct {
	mock.Mock
}

func (m *mockQuestionBank) Sample(ctx context.Context, n int) ([]entities.Question, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Question), args.Error(1)
}

func sampleQuestions(n int) []entities.Question {
	qs := make([]entities.Question, n)
	for i := range qs {
		qs[i] = entities.Question{ID: int64(i + 1), Text: "q", IsActive: true}
	}
	return qs
}

func TestSessionCache_StartNoQuestions(t *testing.T) {
	bank := new(mockQuestionBank)
	bank.On("Sample", mock.Anything, 20).Return([]entities.Question{}, nil)

	cache := NewSessionCache(bank, zap.NewNop())

	_, err := cache.Start(context.Background(), 1, 20)
	assert.ErrorIs(t, err, ErrNoQuestionsAvailable)
	assert.False(t, cache.Active(1))
	bank.AssertExpectations(t)
}

func TestSessionCache_StartOverwritesExisting(t *testing.T) {
	bank := new(mockQuestionBank)
	bank.On("Sample", mock.Anything, 3).Return(sampleQuestions(3), nil)

	cache := NewSessionCache(bank, zap.NewNop())

	first, err := cache.Start(context.Background(), 1, 3)
	require.NoError(t, err)

	cache.RecordScore(1, 8)

	second, err := cache.Start(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Equal(t, 0, cache.ScoredCount(1))
}

func TestSessionCache_FullRun(t *testing.T) {
	bank := new(mockQuestionBank)
	bank.On("Sample", mock.Anything, 3).Return(sampleQuestions(3), nil)

	cache := NewSessionCache(bank, zap.NewNop())

	_, err := cache.Start(context.Background(), 1, 3)
	require.NoError(t, err)

	// Question 1: free-text answer scoring 7.
	require.True(t, cache.TryBeginEvaluation(1))
	assert.True(t, cache.RecordScore(1, 7))
	cache.FinishEvaluation(1)
	assert.False(t, cache.IsLast(1))
	assert.True(t, cache.HasNext(1))
	cache.Advance(1)

	// Question 2: reveal, score forced to 0.
	assert.True(t, cache.RecordScore(1, 0))
	cache.Advance(1)

	// Question 3: answer scoring 9, now the last one.
	assert.True(t, cache.IsLast(1))
	require.True(t, cache.TryBeginEvaluation(1))
	assert.True(t, cache.RecordScore(1, 9))
	cache.FinishEvaluation(1)
	assert.False(t, cache.HasNext(1))

	assert.InDelta(t, 5.33, cache.AverageScore(1), 0.01)
	assert.Equal(t, 3, cache.ScoredCount(1))

	cache.Clear(1)
	assert.False(t, cache.Active(1))
	assert.Equal(t, 0.0, cache.AverageScore(1))
}

func TestSessionCache_TryBeginEvaluation(t *testing.T) {
	bank := new(mockQuestionBank)
	bank.On("Sample", mock.Anything, 2).Return(sampleQuestions(2), nil)

	cache := NewSessionCache(bank, zap.NewNop())

	// No session yet.
	assert.False(t, cache.TryBeginEvaluation(1))

	_, err := cache.Start(context.Background(), 1, 2)
	require.NoError(t, err)

	// Only one evaluation may run per chat.
	assert.True(t, cache.TryBeginEvaluation(1))
	assert.False(t, cache.TryBeginEvaluation(1))

	cache.RecordScore(1, 5)
	cache.FinishEvaluation(1)

	// Current question is already resolved.
	assert.False(t, cache.TryBeginEvaluation(1))

	cache.Advance(1)
	assert.True(t, cache.TryBeginEvaluation(1))
}

func TestSessionCache_CurrentResolved(t *testing.T) {
	bank := new(mockQuestionBank)
	bank.On("Sample", mock.Anything, 2).Return(sampleQuestions(2), nil)

	cache := NewSessionCache(bank, zap.NewNop())

	// No session.
	assert.False(t, cache.CurrentResolved(1))

	_, err := cache.Start(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.False(t, cache.CurrentResolved(1))

	cache.RecordScore(1, 6)
	assert.True(t, cache.CurrentResolved(1))

	cache.Advance(1)
	assert.False(t, cache.CurrentResolved(1))

	cache.RecordScore(1, 4)
	cache.Advance(1)
	// Exhausted cursor is never "resolved".
	assert.False(t, cache.CurrentResolved(1))
}

func TestSessionCache_ScoreClamped(t *testing.T) {
	bank := new(mockQuestionBank)
	bank.On("Sample", mock.Anything, 1).Return(sampleQuestions(1), nil)

	cache := NewSessionCache(bank, zap.NewNop())

	_, err := cache.Start(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.True(t, cache.RecordScore(1, 42))
	assert.Equal(t, float64(entities.MaxScore), cache.AverageScore(1))
}

func TestSessionCache_NoSessionQueries(t *testing.T) {
	cache := NewSessionCache(new(mockQuestionBank), zap.NewNop())

	assert.Nil(t, cache.Current(1))
	assert.Nil(t, cache.Advance(1))
	assert.False(t, cache.HasNext(1))
	assert.False(t, cache.IsLast(1))
	assert.False(t, cache.RecordScore(1, 5))

	number, total := cache.CurrentNumber(1)
	assert.Equal(t, 0, number)
	assert.Equal(t, 0, total)
}
