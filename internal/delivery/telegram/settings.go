package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-prep-bot/internal/service"
)

func (h *Handler) showSettings(chatID int64, user *entities.User) {
	msg := newMessage(chatID, formatSettings(user))
	msg.ReplyMarkup = settingsKeyboard()
	h.send(msg)
}

// handleSettingsTimeInput applies a new daily prompt time typed by the user.
func (h *Handler) handleSettingsTimeInput(ctx context.Context, chatID int64, text string) {
	user, err := h.registration.ChangeScheduleTime(ctx, chatID, text)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeFormat) {
			h.sendError(chatID, msgInvalidTime)
			return
		}
		h.logger.Error("failed to change schedule time",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgSettingsUnavailable)
		return
	}

	h.registration.ClearSettingsState(chatID)
	h.showSettings(chatID, user)
}

// handleSettingsCountInput applies a new questions-per-session value.
func (h *Handler) handleSettingsCountInput(ctx context.Context, chatID int64, text string) {
	user, err := h.registration.UpdateQuestionsPerSession(ctx, chatID, text)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuestionsCount) {
			h.sendError(chatID, msgInvalidCount)
			return
		}
		h.logger.Error("failed to update questions count",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgSettingsUnavailable)
		return
	}

	h.showSettings(chatID, user)
}

func (h *Handler) handleSettingsCallback(ctx context.Context, chatID int64, subAction string) {
	switch subAction {
	case settingsMenu:
		user, ok := h.completedUser(ctx, chatID)
		if !ok {
			return
		}
		h.showSettings(chatID, user)

	case settingsTime:
		h.registration.BeginSettingsInput(chatID, service.SettingsAwaitingTime)
		h.send(newPlainMessage(chatID, msgAskNewScheduleTime))

	case settingsCount:
		h.registration.BeginSettingsInput(chatID, service.SettingsAwaitingCount)
		h.send(newPlainMessage(chatID, msgAskQuestionsCount))

	case settingsDisable:
		_, err := h.registration.DisableNotifications(ctx, chatID)
		if err != nil {
			h.logger.Error("failed to disable notifications",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgSettingsUnavailable)
			return
		}
		h.send(newPlainMessage(chatID, msgNotificationsOff))
	}
}
