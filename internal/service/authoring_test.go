package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
)

type fakeQuestionStore struct {
	stored []*entities.Question
	err    error
}

func (f *fakeQuestionStore) Store(_ context.Context, q *entities.Question) error {
	if f.err != nil {
		return f.err
	}
	q.ID = int64(len(f.stored) + 1)
	f.stored = append(f.stored, q)
	return nil
}

type fakeClassifier struct {
	technical bool
	err       error
}

func (f *fakeClassifier) IsTechnicalTopic(context.Context, string) (bool, error) {
	return f.technical, f.err
}

func TestAuthoringService_FullFlow(t *testing.T) {
	store := &fakeQuestionStore{}
	svc := NewAuthoringService(store, &fakeClassifier{technical: true}, zap.NewNop())
	ctx := context.Background()

	svc.Begin(1)
	assert.True(t, svc.Active(1))

	accepted, err := svc.SubmitText(ctx, 1, "Что такое канал в Go?")
	require.NoError(t, err)
	assert.True(t, accepted)

	step, ok := svc.Step(1)
	require.True(t, ok)
	assert.Equal(t, AuthoringAwaitingCategory, step)

	assert.True(t, svc.SubmitCategory(1, "Go"))

	q, err := svc.Commit(ctx, 1, entities.DifficultyMiddle)
	require.NoError(t, err)
	assert.Equal(t, "Что такое канал в Go?", q.Text)
	assert.Equal(t, "Go", q.Category)
	assert.Equal(t, entities.DifficultyMiddle, q.Difficulty)
	assert.True(t, q.IsActive)
	assert.NotZero(t, q.ID)

	// The draft is gone after commit.
	assert.False(t, svc.Active(1))
}

func TestAuthoringService_RejectsNonTechnicalText(t *testing.T) {
	svc := NewAuthoringService(&fakeQuestionStore{}, &fakeClassifier{technical: false}, zap.NewNop())

	svc.Begin(1)

	accepted, err := svc.SubmitText(context.Background(), 1, "Как дела?")
	require.NoError(t, err)
	assert.False(t, accepted)

	// Still at the text step, ready for another try.
	step, ok := svc.Step(1)
	require.True(t, ok)
	assert.Equal(t, AuthoringAwaitingText, step)
}

func TestAuthoringService_ClassifierFailureAcceptsText(t *testing.T) {
	svc := NewAuthoringService(&fakeQuestionStore{}, &fakeClassifier{err: errors.New("llm down")}, zap.NewNop())

	svc.Begin(1)

	accepted, err := svc.SubmitText(context.Background(), 1, "Что такое mutex?")
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestAuthoringService_CommitFailureDestroysDraft(t *testing.T) {
	store := &fakeQuestionStore{err: errors.New("db down")}
	svc := NewAuthoringService(store, &fakeClassifier{technical: true}, zap.NewNop())
	ctx := context.Background()

	svc.Begin(1)
	_, err := svc.SubmitText(ctx, 1, "Что такое индекс?")
	require.NoError(t, err)
	require.True(t, svc.SubmitCategory(1, "БД"))

	_, err = svc.Commit(ctx, 1, entities.DifficultyJunior)
	assert.Error(t, err)
	// Even a failed commit tears the draft down.
	assert.False(t, svc.Active(1))
}

func TestAuthoringService_EmptyInputRejected(t *testing.T) {
	svc := NewAuthoringService(&fakeQuestionStore{}, &fakeClassifier{technical: true}, zap.NewNop())
	ctx := context.Background()

	svc.Begin(1)

	accepted, err := svc.SubmitText(ctx, 1, "   ")
	require.NoError(t, err)
	assert.False(t, accepted)

	_, err = svc.SubmitText(ctx, 1, "Что такое слайс?")
	require.NoError(t, err)

	assert.False(t, svc.SubmitCategory(1, ""))
	assert.True(t, svc.SubmitCategory(1, "Go"))
}

func TestAuthoringService_Abort(t *testing.T) {
	svc := NewAuthoringService(&fakeQuestionStore{}, &fakeClassifier{technical: true}, zap.NewNop())

	svc.Begin(1)
	svc.Abort(1)
	assert.False(t, svc.Active(1))

	_, err := svc.Commit(context.Background(), 1, entities.DifficultySenior)
	assert.Error(t, err)
}

func TestAuthoringService_BeginOverwrites(t *testing.T) {
	svc := NewAuthoringService(&fakeQuestionStore{}, &fakeClassifier{technical: true}, zap.NewNop())
	ctx := context.Background()

	svc.Begin(1)
	_, err := svc.SubmitText(ctx, 1, "Первый вопрос?")
	require.NoError(t, err)

	// Restarting resets to the text step.
	svc.Begin(1)
	step, ok := svc.Step(1)
	require.True(t, ok)
	assert.Equal(t, AuthoringAwaitingText, step)
}
