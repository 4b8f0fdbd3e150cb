package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-prep-bot/internal/service"
)

type RegistrationService interface {
	GetUser(ctx context.Context, chatID int64) (*entities.User, error)
	StartRegistration(ctx context.Context, chatID int64, firstName, lastName, username string) (*entities.User, error)
	UpdateScheduleTime(ctx context.Context, chatID int64, timeStr string) (*entities.User, error)
	UpdateTimezone(ctx context.Context, chatID int64, timezone string) (*entities.User, error)
	ChangeScheduleTime(ctx context.Context, chatID int64, timeStr string) (*entities.User, error)
	UpdateQuestionsPerSession(ctx context.Context, chatID int64, countStr string) (*entities.User, error)
	DisableNotifications(ctx context.Context, chatID int64) (*entities.User, error)
	BeginSettingsInput(chatID int64, state service.SettingsState)
	InSettingsState(chatID int64, state service.SettingsState) bool
	ClearSettingsState(chatID int64)
}

type SessionService interface {
	Start(ctx context.Context, chatID int64, desiredCount int) (*entities.InterviewSession, error)
	Active(chatID int64) bool
	Current(chatID int64) *entities.Question
	Advance(chatID int64) *entities.Question
	HasNext(chatID int64) bool
	IsLast(chatID int64) bool
	CurrentNumber(chatID int64) (int, int)
	RecordScore(chatID int64, score int) bool
	CurrentResolved(chatID int64) bool
	AverageScore(chatID int64) float64
	ScoredCount(chatID int64) int
	Clear(chatID int64)
	TryBeginEvaluation(chatID int64) bool
	FinishEvaluation(chatID int64)
}

type EvaluationService interface {
	Evaluate(ctx context.Context, question, answer string) entities.AnswerEvaluation
	Answer(ctx context.Context, question string) (string, error)
}

type AuthoringService interface {
	Begin(chatID int64)
	Active(chatID int64) bool
	Step(chatID int64) (service.AuthoringStep, bool)
	SubmitText(ctx context.Context, chatID int64, text string) (bool, error)
	SubmitCategory(chatID int64, category string) bool
	Commit(ctx context.Context, chatID int64, difficulty entities.Difficulty) (*entities.Question, error)
	Abort(chatID int64)
}

// BotAPI is the slice of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Handler struct {
	bot          BotAPI
	logger       *zap.Logger
	registration RegistrationService
	sessions     SessionService
	evaluator    EvaluationService
	authoring    AuthoringService
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	registration RegistrationService,
	sessions SessionService,
	evaluator EvaluationService,
	authoring AuthoringService,
) *Handler {
	return &Handler{
		bot:          bot,
		logger:       logger,
		registration: registration,
		sessions:     sessions,
		evaluator:    evaluator,
		authoring:    authoring,
	}
}

// SetupCommands registers the bot command list shown in the Telegram UI.
func (h *Handler) SetupCommands() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Регистрация и приветствие"},
		tgbotapi.BotCommand{Command: "session", Description: "Начать сессию вопросов"},
		tgbotapi.BotCommand{Command: "add_question", Description: "Добавить свой вопрос"},
		tgbotapi.BotCommand{Command: "settings", Description: "Настройки"},
		tgbotapi.BotCommand{Command: "stop", Description: "Завершить текущую сессию"},
	)

	_, err := h.bot.Request(commands)
	return err
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			go h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("chat_id", update.CallbackQuery.Message.Chat.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message)
		return
	}

	h.handleText(ctx, update.Message)
}

// handleText routes a free-text message by the chat's current states,
// first match wins: registration in progress, add-question draft, settings
// input, unresolved session question, then the main menu fallback.
func (h *Handler) handleText(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	text := message.Text

	user, err := h.registration.GetUser(ctx, chatID)
	if err != nil || !user.IsCompleted() {
		h.handleRegistrationText(ctx, chatID, user, err, text)
		return
	}

	if h.authoring.Active(chatID) {
		h.handleAuthoringText(ctx, chatID, text)
		return
	}

	if h.registration.InSettingsState(chatID, service.SettingsAwaitingTime) {
		h.handleSettingsTimeInput(ctx, chatID, text)
		return
	}
	if h.registration.InSettingsState(chatID, service.SettingsAwaitingCount) {
		h.handleSettingsCountInput(ctx, chatID, text)
		return
	}

	if h.sessions.TryBeginEvaluation(chatID) {
		h.evaluateAnswer(ctx, chatID, text)
		return
	}

	if h.sessions.Active(chatID) {
		if h.sessions.CurrentResolved(chatID) {
			// Waiting on "next" or "stop".
			h.sendContinueOptions(chatID)
			return
		}
		h.send(newPlainMessage(chatID, msgEvaluationBusy))
		return
	}

	h.showMainMenu(chatID)
}

// SendDailyPrompt delivers the scheduled practice invitation. Satisfies the
// scheduler's Notifier contract.
func (h *Handler) SendDailyPrompt(chatID int64) {
	msg := newPlainMessage(chatID, msgDailyPrompt)
	msg.ReplyMarkup = dailyPromptKeyboard()
	h.send(msg)
}

func (h *Handler) showMainMenu(chatID int64) {
	msg := newPlainMessage(chatID, msgNoActiveSession)
	msg.ReplyMarkup = mainMenuKeyboard()
	h.send(msg)
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
