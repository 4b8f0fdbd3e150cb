package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
)

var ErrNoQuestionsAvailable = errors.New("no questions available")

// QuestionBank supplies random active questions for a session.
type QuestionBank interface {
	Sample(ctx context.Context, n int) ([]entities.Question, error)
}

// SessionCache holds per-chat interview sessions in memory. All operations
// are atomic per chat; sessions are ephemeral and a restart simply drops
// them. Starting a session for a chat that already has one overwrites it.
type SessionCache struct {
	bank   QuestionBank
	logger *zap.Logger

	mu         sync.Mutex
	sessions   map[int64]*entities.InterviewSession
	evaluating map[int64]struct{}
}

func NewSessionCache(bank QuestionBank, logger *zap.Logger) *SessionCache {
	return &SessionCache{
		bank:       bank,
		logger:     logger,
		sessions:   make(map[int64]*entities.InterviewSession),
		evaluating: make(map[int64]struct{}),
	}
}

// Start samples up to desiredCount active questions and creates a fresh
// session for the chat. An empty sample yields ErrNoQuestionsAvailable and
// no session.
func (c *SessionCache) Start(ctx context.Context, chatID int64, desiredCount int) (*entities.InterviewSession, error) {
	questions, err := c.bank.Sample(ctx, desiredCount)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	session := entities.NewInterviewSession(chatID, questions)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[chatID] = session
	delete(c.evaluating, chatID)

	c.logger.Info("session started",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", session.SessionID),
		zap.Int("questions", session.Total()),
	)

	return session, nil
}

// Active reports whether the chat has a session.
func (c *SessionCache) Active(chatID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.sessions[chatID]
	return ok
}

// Current returns the question at the cursor, or nil when there is no
// session or it is exhausted.
func (c *SessionCache) Current(chatID int64) *entities.Question {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	if !ok {
		return nil
	}
	return s.Current()
}

// Advance moves the cursor forward and returns the new current question, nil
// when exhausted. Calling it at the boundary is safe.
func (c *SessionCache) Advance(chatID int64) *entities.Question {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	if !ok {
		return nil
	}
	return s.Advance()
}

// HasNext reports whether a question remains after the current one.
func (c *SessionCache) HasNext(chatID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	return ok && s.HasNext()
}

// IsLast reports whether the cursor sits on the final question.
func (c *SessionCache) IsLast(chatID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	return ok && s.IsLast()
}

// CurrentNumber returns the one-based number of the current question and the
// session total, both 0 when no session exists.
func (c *SessionCache) CurrentNumber(chatID int64) (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	if !ok {
		return 0, 0
	}
	return s.CurrentIndex() + 1, s.Total()
}

// CurrentResolved reports whether the question at the cursor already has a
// score. It is false with no session or past the end of the list.
func (c *SessionCache) CurrentResolved(chatID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	if !ok {
		return false
	}
	return len(s.Scores()) > s.CurrentIndex()
}

// RecordScore appends a score for the current question. It reports false when
// the position was already resolved, so a double submission cannot
// double-append. The cursor is not advanced.
func (c *SessionCache) RecordScore(chatID int64, score int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	if !ok {
		return false
	}
	return s.AddScore(entities.ClampScore(score))
}

// AverageScore returns the mean of recorded scores, 0.0 with no session or
// no scores.
func (c *SessionCache) AverageScore(chatID int64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	if !ok {
		return 0.0
	}
	return s.AverageScore()
}

// ScoredCount returns how many questions have been resolved so far.
func (c *SessionCache) ScoredCount(chatID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	if !ok {
		return 0
	}
	return len(s.Scores())
}

// Clear discards the chat's session state unconditionally.
func (c *SessionCache) Clear(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.sessions, chatID)
	delete(c.evaluating, chatID)
}

// TryBeginEvaluation acquires the per-chat evaluation slot when the current
// question is still unresolved. It returns false with no session, with an
// exhausted cursor, when the current question already has a score, or when
// an evaluation is already in flight. At most one evaluation runs per chat.
func (c *SessionCache) TryBeginEvaluation(chatID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[chatID]
	if !ok || s.Current() == nil {
		return false
	}
	if len(s.Scores()) > s.CurrentIndex() {
		return false
	}
	if _, busy := c.evaluating[chatID]; busy {
		return false
	}

	c.evaluating[chatID] = struct{}{}
	return true
}

// FinishEvaluation releases the per-chat evaluation slot.
func (c *SessionCache) FinishEvaluation(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.evaluating, chatID)
}
