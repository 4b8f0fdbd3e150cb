package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-prep-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/interview-prep-bot/internal/service"
)

// completedUser loads the user record and reports whether registration is
// finished, messaging the chat when it is not.
func (h *Handler) completedUser(ctx context.Context, chatID int64) (*entities.User, bool) {
	user, err := h.registration.GetUser(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.sendError(chatID, msgNotRegistered)
			return nil, false
		}
		h.logger.Error("failed to look up user",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil, false
	}
	if !user.IsCompleted() {
		h.sendError(chatID, msgNotRegistered)
		return nil, false
	}
	return user, true
}

// handleRegistrationText advances an unfinished registration with the user's
// free-text input. Without a record, or from the initial state, only /start
// moves things forward, so any other text re-prompts for it. A storage
// failure is not a missing registration and gets the generic error instead.
func (h *Handler) handleRegistrationText(ctx context.Context, chatID int64, user *entities.User, lookupErr error, text string) {
	if lookupErr != nil {
		if errors.Is(lookupErr, repository.ErrUserNotFound) {
			h.sendError(chatID, msgNotRegistered)
			return
		}
		h.logger.Error("failed to look up user",
			zap.Int64("chat_id", chatID),
			zap.Error(lookupErr),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	switch user.RegistrationState {
	case entities.StateScheduleTime:
		updated, err := h.registration.UpdateScheduleTime(ctx, chatID, text)
		if err != nil {
			if errors.Is(err, service.ErrInvalidTimeFormat) {
				h.sendError(chatID, msgInvalidTime)
				return
			}
			h.logger.Error("failed to update schedule time",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return
		}

		h.logger.Info("schedule time set",
			zap.Int64("chat_id", chatID),
			zap.String("time", updated.ScheduleTime.String()),
		)
		h.send(newPlainMessage(chatID, msgAskTimezone))

	case entities.StateTimezone:
		updated, err := h.registration.UpdateTimezone(ctx, chatID, text)
		if err != nil {
			h.logger.Error("failed to update timezone",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return
		}

		h.logger.Info("registration completed",
			zap.Int64("chat_id", chatID),
			zap.String("timezone", updated.Timezone),
		)
		h.send(newMessage(chatID, formatRegistrationDone(updated)))

	default:
		h.sendError(chatID, msgNotRegistered)
	}
}
