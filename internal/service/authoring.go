package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
)

// AuthoringStep marks how far a chat has progressed through adding a question.
type AuthoringStep int

const (
	AuthoringAwaitingText AuthoringStep = iota
	AuthoringAwaitingCategory
	AuthoringAwaitingDifficulty
)

// AuthoringSession is the in-progress draft of a user-submitted question.
type AuthoringSession struct {
	Step       AuthoringStep
	Text       string
	Category   string
	Difficulty entities.Difficulty
}

// QuestionStore persists finished drafts.
type QuestionStore interface {
	Store(ctx context.Context, q *entities.Question) error
}

// TopicClassifier decides whether submitted text looks like a technical
// interview question.
type TopicClassifier interface {
	IsTechnicalTopic(ctx context.Context, text string) (bool, error)
}

// AuthoringService walks a chat through the add-question flow:
// text -> category -> difficulty -> commit. One draft per chat; starting a
// new one discards the old.
type AuthoringService struct {
	store      QuestionStore
	classifier TopicClassifier
	logger     *zap.Logger

	mu     sync.Mutex
	drafts map[int64]*AuthoringSession
}

func NewAuthoringService(store QuestionStore, classifier TopicClassifier, logger *zap.Logger) *AuthoringService {
	return &AuthoringService{
		store:      store,
		classifier: classifier,
		logger:     logger,
		drafts:     make(map[int64]*AuthoringSession),
	}
}

// Begin opens a fresh draft for the chat, awaiting the question text.
func (s *AuthoringService) Begin(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[chatID] = &AuthoringSession{Step: AuthoringAwaitingText}
}

// Active reports whether the chat has a draft in progress.
func (s *AuthoringService) Active(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drafts[chatID]
	return ok
}

// Step returns the current step of the chat's draft. The second result is
// false when no draft exists.
func (s *AuthoringService) Step(chatID int64) (AuthoringStep, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[chatID]
	if !ok {
		return 0, false
	}
	return d.Step, true
}

// SubmitText records the question text and asks the classifier whether it
// looks technical. A classifier failure is treated as acceptance so that the
// flow never blocks on the LLM. It returns whether the text was accepted.
func (s *AuthoringService) SubmitText(ctx context.Context, chatID int64, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}

	technical, err := s.classifier.IsTechnicalTopic(ctx, text)
	if err != nil {
		s.logger.Warn("topic classification failed, accepting text",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		technical = true
	}
	if !technical {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[chatID]
	if !ok || d.Step != AuthoringAwaitingText {
		return false, nil
	}

	d.Text = text
	d.Step = AuthoringAwaitingCategory
	return true, nil
}

// SubmitCategory records the category and advances to the difficulty step.
func (s *AuthoringService) SubmitCategory(chatID int64, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[chatID]
	if !ok || d.Step != AuthoringAwaitingCategory {
		return false
	}

	d.Category = category
	d.Step = AuthoringAwaitingDifficulty
	return true
}

// Commit sets the difficulty, persists the question and destroys the draft.
// The draft is destroyed even when persistence fails, so the user starts
// over rather than getting stuck.
func (s *AuthoringService) Commit(ctx context.Context, chatID int64, difficulty entities.Difficulty) (*entities.Question, error) {
	s.mu.Lock()
	d, ok := s.drafts[chatID]
	delete(s.drafts, chatID)
	s.mu.Unlock()

	if !ok || d.Step != AuthoringAwaitingDifficulty {
		return nil, fmt.Errorf("no draft ready for commit")
	}

	q := entities.NewQuestion(d.Text, d.Category, difficulty)

	if err := s.store.Store(ctx, q); err != nil {
		return nil, fmt.Errorf("store question: %w", err)
	}

	s.logger.Info("question added",
		zap.Int64("chat_id", chatID),
		zap.Int64("question_id", q.ID),
		zap.String("category", q.Category),
		zap.String("difficulty", string(q.Difficulty)),
	)

	return q, nil
}

// Abort discards the chat's draft, if any.
func (s *AuthoringService) Abort(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, chatID)
}
