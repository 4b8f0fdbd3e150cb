package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	// A command always wins over any sub-flow in progress.
	h.authoring.Abort(chatID)
	h.registration.ClearSettingsState(chatID)

	switch message.Command() {
	case "start":
		h.handleStartCommand(ctx, message)
		return
	}

	user, ok := h.completedUser(ctx, chatID)
	if !ok {
		return
	}

	switch message.Command() {
	case "session":
		h.startSession(ctx, chatID, user.QuestionsPerSession)

	case "add_question":
		h.beginAuthoring(chatID)

	case "settings":
		h.showSettings(chatID, user)

	case "stop":
		h.stopSession(chatID)

	default:
		h.sendError(chatID, msgUnknownCommand)
	}
}

func (h *Handler) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	from := message.From

	var firstName, lastName, username string
	if from != nil {
		firstName = from.FirstName
		lastName = from.LastName
		username = from.UserName
	}

	user, err := h.registration.StartRegistration(ctx, chatID, firstName, lastName, username)
	if err != nil {
		h.logger.Error("failed to start registration",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	h.sessions.Clear(chatID)

	h.send(newMessage(chatID, welcomeMarkdownV2(user.FirstName)))
	h.send(newPlainMessage(chatID, msgAskScheduleTime))
}
