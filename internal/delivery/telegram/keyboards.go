package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// questionKeyboard offers actions for the current session question.
func questionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ответить", buildSessionCallback(sessionReply)),
			tgbotapi.NewInlineKeyboardButtonData("Показать ответ", buildSessionCallback(sessionShowAnswer)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Завершить сессию", buildSessionCallback(sessionStop)),
		),
	)
}

// continueKeyboard is shown after a question is resolved and more remain.
func continueKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Следующий вопрос", buildSessionCallback(sessionNext)),
			tgbotapi.NewInlineKeyboardButtonData("Завершить", buildSessionCallback(sessionStop)),
		),
	)
}

// dailyPromptKeyboard is attached to the scheduled daily prompt.
func dailyPromptKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Да, начнём", buildDailyCallback(dailyYes)),
			tgbotapi.NewInlineKeyboardButtonData("Не сегодня", buildDailyCallback(dailyNo)),
		),
	)
}

// difficultyKeyboard offers the three difficulty levels for a new question.
func difficultyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Junior", buildDifficultyCallback("junior")),
			tgbotapi.NewInlineKeyboardButtonData("Middle", buildDifficultyCallback("middle")),
			tgbotapi.NewInlineKeyboardButtonData("Senior", buildDifficultyCallback("senior")),
		),
	)
}

// mainMenuKeyboard is the idle-state menu.
func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Начать сессию", buildDailyCallback(dailyYes)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Добавить вопрос", buildAddQuestionCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Настройки", buildSettingsCallback(settingsMenu)),
		),
	)
}

// settingsKeyboard lists the editable settings.
func settingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Время напоминания", buildSettingsCallback(settingsTime)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Вопросов за сессию", buildSettingsCallback(settingsCount)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Отключить напоминания", buildSettingsCallback(settingsDisable)),
			tgbotapi.NewInlineKeyboardButtonData("Назад", buildMenuCallback()),
		),
	)
}
