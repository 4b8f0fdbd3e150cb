package telegram

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-prep-bot/internal/service"
)

func (h *Handler) beginAuthoring(chatID int64) {
	h.authoring.Begin(chatID)
	h.send(newPlainMessage(chatID, msgAskQuestionText))
}

// handleAuthoringText routes free text into the add-question draft by its
// current step.
func (h *Handler) handleAuthoringText(ctx context.Context, chatID int64, text string) {
	step, ok := h.authoring.Step(chatID)
	if !ok {
		h.showMainMenu(chatID)
		return
	}

	switch step {
	case service.AuthoringAwaitingText:
		if strings.TrimSpace(text) == "" {
			h.sendError(chatID, msgEmptyQuestionText)
			return
		}
		accepted, err := h.authoring.SubmitText(ctx, chatID, text)
		if err != nil {
			h.logger.Error("failed to submit question text",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return
		}
		if !accepted {
			h.sendError(chatID, msgNotTechnical)
			return
		}
		h.send(newPlainMessage(chatID, msgAskCategory))

	case service.AuthoringAwaitingCategory:
		if !h.authoring.SubmitCategory(chatID, text) {
			h.sendError(chatID, msgAskCategory)
			return
		}
		msg := newPlainMessage(chatID, msgAskDifficulty)
		msg.ReplyMarkup = difficultyKeyboard()
		h.send(msg)

	case service.AuthoringAwaitingDifficulty:
		// Difficulty arrives via buttons only.
		msg := newPlainMessage(chatID, msgAskDifficulty)
		msg.ReplyMarkup = difficultyKeyboard()
		h.send(msg)
	}
}

// handleDifficultyCallback commits the draft with the chosen difficulty.
func (h *Handler) handleDifficultyCallback(ctx context.Context, chatID int64, payload string) {
	difficulty, err := entities.ParseDifficulty(payload)
	if err != nil {
		h.logger.Warn("unknown difficulty payload",
			zap.Int64("chat_id", chatID),
			zap.String("payload", payload),
		)
		return
	}

	q, err := h.authoring.Commit(ctx, chatID, difficulty)
	if err != nil {
		h.logger.Error("failed to commit question",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgQuestionSaveError)
		return
	}

	h.logger.Info("user question saved",
		zap.Int64("chat_id", chatID),
		zap.Int64("question_id", q.ID),
	)
	h.send(newPlainMessage(chatID, msgQuestionSaved))
}
