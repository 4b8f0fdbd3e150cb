package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/service"
)

// startSession samples a fresh batch of questions and sends the first one.
func (h *Handler) startSession(ctx context.Context, chatID int64, questionsCount int) {
	_, err := h.sessions.Start(ctx, chatID, questionsCount)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestionsAvailable) {
			h.sendError(chatID, msgNoQuestions)
			return
		}
		h.logger.Error("failed to start session",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgSessionUnavailable)
		return
	}

	h.sendCurrentQuestion(chatID)
}

// sendCurrentQuestion renders the question at the cursor with its action
// keyboard.
func (h *Handler) sendCurrentQuestion(chatID int64) {
	q := h.sessions.Current(chatID)
	if q == nil {
		h.finalizeSession(chatID)
		return
	}

	number, total := h.sessions.CurrentNumber(chatID)

	msg := newMessage(chatID, formatQuestion(q, number, total))
	msg.ReplyMarkup = questionKeyboard()
	h.send(msg)
}

// evaluateAnswer grades a free-text answer. The evaluation slot for the chat
// is already held by the caller; it is released when grading finishes.
func (h *Handler) evaluateAnswer(ctx context.Context, chatID int64, answer string) {
	defer h.sessions.FinishEvaluation(chatID)

	q := h.sessions.Current(chatID)
	if q == nil {
		return
	}

	h.send(newPlainMessage(chatID, msgEvaluating))

	eval := h.evaluator.Evaluate(ctx, q.Text, answer)

	if !h.sessions.RecordScore(chatID, eval.Score) {
		h.logger.Warn("score not recorded",
			zap.Int64("chat_id", chatID),
			zap.Int("score", eval.Score),
		)
		return
	}

	h.send(newMessage(chatID, formatEvaluation(eval)))
	h.afterResolved(chatID)
}

// showAnswer reveals the reference answer for the current question, which
// resolves it with a zero score.
func (h *Handler) showAnswer(ctx context.Context, chatID int64) {
	q := h.sessions.Current(chatID)
	if q == nil {
		h.showMainMenu(chatID)
		return
	}

	answer, err := h.evaluator.Answer(ctx, q.Text)
	if err != nil {
		h.logger.Error("failed to get reference answer",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgAnswerUnavailable)
		return
	}

	if !h.sessions.RecordScore(chatID, 0) {
		return
	}

	h.send(newMessage(chatID, formatReferenceAnswer(answer)))
	h.afterResolved(chatID)
}

// afterResolved either offers the next question or finalizes an exhausted
// session.
func (h *Handler) afterResolved(chatID int64) {
	if h.sessions.HasNext(chatID) {
		h.sendContinueOptions(chatID)
		return
	}
	h.finalizeSession(chatID)
}

func (h *Handler) sendContinueOptions(chatID int64) {
	msg := newPlainMessage(chatID, "Продолжим?")
	msg.ReplyMarkup = continueKeyboard()
	h.send(msg)
}

// nextQuestion advances the cursor; with nothing left the session finalizes
// with its summary. A stray "next" while the current question is still
// unresolved is ignored, so a double tap cannot skip a question.
func (h *Handler) nextQuestion(chatID int64) {
	if !h.sessions.Active(chatID) {
		h.showMainMenu(chatID)
		return
	}

	if h.sessions.Current(chatID) == nil {
		h.finalizeSession(chatID)
		return
	}

	if !h.sessions.CurrentResolved(chatID) {
		return
	}

	if q := h.sessions.Advance(chatID); q == nil {
		h.finalizeSession(chatID)
		return
	}
	h.sendCurrentQuestion(chatID)
}

// finalizeSession sends the average-score summary and clears the session.
func (h *Handler) finalizeSession(chatID int64) {
	if !h.sessions.Active(chatID) {
		return
	}

	answered := h.sessions.ScoredCount(chatID)
	average := h.sessions.AverageScore(chatID)

	h.logger.Info("session finished",
		zap.Int64("chat_id", chatID),
		zap.Int("answered", answered),
		zap.Float64("average", average),
	)

	h.sessions.Clear(chatID)
	h.send(newMessage(chatID, formatSessionSummary(answered, average)))
}

// stopSession ends the session early, summary included.
func (h *Handler) stopSession(chatID int64) {
	if !h.sessions.Active(chatID) {
		h.showMainMenu(chatID)
		return
	}
	h.finalizeSession(chatID)
}
