package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleCallback dispatches a button press by its decoded action. Unknown
// payloads are silently ignored.
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}

	switch cd.Action {
	case actionSession:
		if len(cd.Params) == 0 {
			return
		}
		h.handleSessionCallback(ctx, chatID, cd.Params[0])

	case actionDaily:
		if len(cd.Params) == 0 {
			return
		}
		h.handleDailyCallback(ctx, chatID, cd.Params[0])

	case actionDifficulty:
		if len(cd.Params) == 0 {
			return
		}
		h.handleDifficultyCallback(ctx, chatID, cd.Params[0])

	case actionSettings:
		if len(cd.Params) == 0 {
			return
		}
		h.handleSettingsCallback(ctx, chatID, cd.Params[0])

	case actionAdd:
		h.beginAuthoring(chatID)

	case actionMenu:
		h.registration.ClearSettingsState(chatID)
		h.showMainMenu(chatID)
	}
}

func (h *Handler) handleSessionCallback(ctx context.Context, chatID int64, subAction string) {
	switch subAction {
	case sessionReply:
		if h.sessions.Current(chatID) == nil {
			h.showMainMenu(chatID)
			return
		}
		h.send(newPlainMessage(chatID, msgWriteYourAnswer))

	case sessionShowAnswer:
		h.showAnswer(ctx, chatID)

	case sessionNext:
		h.nextQuestion(chatID)

	case sessionStop:
		h.stopSession(chatID)
	}
}

func (h *Handler) handleDailyCallback(ctx context.Context, chatID int64, choice string) {
	switch choice {
	case dailyYes:
		user, ok := h.completedUser(ctx, chatID)
		if !ok {
			return
		}
		h.startSession(ctx, chatID, user.QuestionsPerSession)

	case dailyNo:
		h.send(newPlainMessage(chatID, msgDailyDeclined))
	}
}
