// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
)

// Registration messages.
const (
	msgAskScheduleTime = "Во сколько присылать вам ежедневный вопрос? Введите время в формате ЧЧ:ММ, например 09:30."
	msgAskTimezone     = "В каком часовом поясе вы находитесь? Например: Europe/Moscow или UTC+3."
	msgInvalidTime     = "Некорректное время. Введите время в формате ЧЧ:ММ, например 09:30."
	msgNotRegistered   = "Сначала нужно зарегистрироваться. Отправьте /start."
)

// Session messages.
const (
	msgNoQuestions        = "Пока нет доступных вопросов. Попробуйте позже или добавьте свой вопрос."
	msgSessionUnavailable = "Не удалось начать сессию. Попробуйте позже."
	msgNoActiveSession    = "Сейчас нет активной сессии. Начать новую?"
	msgWriteYourAnswer    = "Напишите ваш ответ одним сообщением."
	msgEvaluating         = "Оцениваю ваш ответ..."
	msgEvaluationBusy     = "Подождите, предыдущий ответ ещё оценивается."
	msgAnswerUnavailable  = "Не удалось получить эталонный ответ. Попробуйте позже."
	msgDailyPrompt        = "Готовы потренироваться? Начнём сессию вопросов?"
	msgDailyDeclined      = "Хорошо, напомню завтра. Удачного дня!"
)

// Settings messages.
const (
	msgAskQuestionsCount   = "Сколько вопросов присылать за одну сессию? Введите число от 1 до 50."
	msgInvalidCount        = "Некорректное число. Введите число от 1 до 50."
	msgAskNewScheduleTime  = "Введите новое время в формате ЧЧ:ММ, например 09:30."
	msgNotificationsOff    = "Ежедневные напоминания отключены. Включить их снова можно в настройках."
	msgSettingsUnavailable = "Не удалось обновить настройки. Попробуйте позже."
)

// Add-question messages.
const (
	msgAskQuestionText   = "Отправьте текст нового вопроса."
	msgEmptyQuestionText = "Текст вопроса пуст. Отправьте текст нового вопроса одним сообщением."
	msgNotTechnical      = "Это не похоже на технический вопрос для собеседования. Попробуйте сформулировать иначе."
	msgAskCategory       = "К какой категории относится вопрос? Например: Go, базы данных, алгоритмы."
	msgAskDifficulty     = "Выберите сложность вопроса."
	msgQuestionSaved     = "Вопрос сохранён! Он будет появляться в сессиях."
	msgQuestionSaveError = "Не удалось сохранить вопрос. Попробуйте ещё раз."
)

const (
	msgInternalError  = "Что-то пошло не так. Попробуйте позже."
	msgUnknownCommand = "Неизвестная команда. Список доступных команд:\n\n/session — начать сессию вопросов\n/add_question — добавить свой вопрос\n/settings — настройки\n/stop — завершить сессию"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// welcomeMarkdownV2 builds the welcome message safely for MarkdownV2.
func welcomeMarkdownV2(firstName string) string {
	var sb strings.Builder

	if firstName != "" {
		sb.WriteString(md(fmt.Sprintf("Привет, %s!", firstName)))
	} else {
		sb.WriteString(md("Привет!"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(bold("Interview Prep Bot"))
	sb.WriteString(md(" поможет вам подготовиться к техническим собеседованиям."))
	sb.WriteString("\n\n")

	sb.WriteString(md("Как это работает:"))
	sb.WriteString("\n\n")

	sb.WriteString(md("1. Каждый день в выбранное время я присылаю приглашение на тренировку."))
	sb.WriteString("\n")
	sb.WriteString(md("2. Вы отвечаете на вопросы своими словами, а я оцениваю ответы по шкале от 0 до 10."))
	sb.WriteString("\n")
	sb.WriteString(md("3. В конце сессии вы видите средний балл."))
	sb.WriteString("\n\n")

	sb.WriteString(md("Осталось пара шагов, чтобы начать."))

	return sb.String()
}

// formatRegistrationDone confirms the chosen schedule (MarkdownV2 safe).
func formatRegistrationDone(user *entities.User) string {
	scheduleTime := "не задано"
	if user.ScheduleTime != nil {
		scheduleTime = user.ScheduleTime.String()
	}

	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n\n%s",
		bold("Регистрация завершена!"),
		md("Время напоминания:"),
		bold(scheduleTime),
		md("Часовой пояс:"),
		bold(user.Timezone),
		md("Начать сессию прямо сейчас: /session"),
	)
}

// formatQuestion formats the current session question (MarkdownV2 safe).
func formatQuestion(q *entities.Question, number, total int) string {
	return fmt.Sprintf(
		"%s\n%s\n\n%s",
		md(fmt.Sprintf("Вопрос %d из %d", number, total)),
		md(fmt.Sprintf("Категория: %s | Сложность: %s", q.Category, q.Difficulty)),
		bold(q.Text),
	)
}

// formatEvaluation formats an answer evaluation (MarkdownV2 safe).
func formatEvaluation(eval entities.AnswerEvaluation) string {
	text := fmt.Sprintf(
		"%s %s",
		md("Оценка:"),
		bold(fmt.Sprintf("%d из %d", eval.Score, entities.MaxScore)),
	)

	if eval.HasFeedback() {
		text += fmt.Sprintf("\n\n%s\n%s", md("Что можно дополнить:"), md(eval.Feedback))
	}

	return text
}

// formatReferenceAnswer formats a reference answer reveal (MarkdownV2 safe).
func formatReferenceAnswer(answer string) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		bold("Эталонный ответ:"),
		md(answer),
	)
}

// formatSessionSummary formats the end-of-session summary (MarkdownV2 safe).
func formatSessionSummary(answered int, average float64) string {
	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n\n%s",
		bold("Сессия завершена!"),
		md("Отвечено вопросов:"),
		bold(fmt.Sprintf("%d", answered)),
		md("Средний балл:"),
		bold(fmt.Sprintf("%.2f", average)),
		md("Возвращайтесь завтра или начните новую сессию: /session"),
	)
}

// formatSettings formats the settings overview (MarkdownV2 safe).
func formatSettings(user *entities.User) string {
	scheduleTime := "отключены"
	if user.ScheduleTime != nil {
		scheduleTime = user.ScheduleTime.String()
	}

	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n%s %s",
		bold("Настройки"),
		md("Напоминания:"),
		bold(scheduleTime),
		md("Часовой пояс:"),
		bold(user.Timezone),
		md("Вопросов за сессию:"),
		bold(fmt.Sprintf("%d", user.QuestionsPerSession)),
	)
}
