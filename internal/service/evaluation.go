package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"syscall"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
)

const (
	scoreMarker    = "ОЦЕНКА:"
	feedbackMarker = "ДОПОЛНЕНИЯ:"
)

// chatCompleter is the slice of the OpenAI client the evaluator uses.
// *openai.Client satisfies it.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// EvaluatorConfig holds the LLM connection and retry settings.
type EvaluatorConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

// Evaluator grades free-text answers and produces reference answers through
// a chat-completion API. Evaluate is total: whatever the model or the
// network does, the caller always gets a usable score and feedback.
type Evaluator struct {
	client chatCompleter
	cfg    EvaluatorConfig
	logger *zap.Logger
}

// NewEvaluator builds an Evaluator backed by the OpenAI-compatible endpoint
// from the config. A custom BaseURL routes requests to alternative providers.
func NewEvaluator(cfg EvaluatorConfig, logger *zap.Logger) *Evaluator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Evaluator{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: logger,
	}
}

// Evaluate grades an answer to a question on a 0-10 scale. It never returns
// an error: request failures and unparseable replies degrade to the default
// score with generic feedback.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer string) entities.AnswerEvaluation {
	prompt := fmt.Sprintf(
		"Ты строгий технический интервьюер. Оцени ответ кандидата на вопрос.\n\n"+
			"Вопрос: %s\n\nОтвет кандидата: %s\n\n"+
			"Выстави оценку от 0 до 10 и укажи, чего не хватает в ответе.\n"+
			"Формат ответа строго такой:\n"+
			"%s <число>\n"+
			"%s <что можно дополнить или исправить>",
		question, answer, scoreMarker, feedbackMarker,
	)

	raw, err := e.complete(ctx, prompt)
	if err != nil {
		e.logger.Error("answer evaluation failed", zap.Error(err))
		return entities.AnswerEvaluation{
			Score:    entities.DefaultScoreOnError,
			Feedback: defaultFeedback(entities.DefaultScoreOnError),
		}
	}

	return parseEvaluation(raw)
}

// Answer produces a reference answer for a question.
func (e *Evaluator) Answer(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(
		"Ты опытный технический интервьюер. Дай краткий и точный ответ на вопрос собеседования.\n\n"+
			"Вопрос: %s",
		question,
	)

	raw, err := e.complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("reference answer: %w", err)
	}

	return strings.TrimSpace(raw), nil
}

// IsTechnicalTopic asks the model whether the text is a technical interview
// question.
func (e *Evaluator) IsTechnicalTopic(ctx context.Context, text string) (bool, error) {
	prompt := fmt.Sprintf(
		"Является ли следующий текст техническим вопросом для собеседования разработчика? "+
			"Ответь одним словом: да или нет.\n\nТекст: %s",
		text,
	)

	raw, err := e.complete(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("topic check: %w", err)
	}

	reply := strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(reply, "да"), nil
}

// complete sends a single-user-message completion request, retrying only on
// reset connections.
func (e *Evaluator) complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: e.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	var lastErr error
	for attempt := 0; attempt <= e.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(e.cfg.RetryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
		resp, err := e.client.CreateChatCompletion(callCtx, req)
		cancel()

		if err == nil {
			if len(resp.Choices) == 0 {
				return "", fmt.Errorf("empty completion response")
			}
			return resp.Choices[0].Message.Content, nil
		}

		lastErr = err
		if !isConnectionReset(err) {
			break
		}

		e.logger.Warn("completion request reset, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	return "", fmt.Errorf("chat completion: %w", lastErr)
}

// isConnectionReset reports whether the error is a reset connection, either
// a real ECONNRESET from the local network stack or a reset message relayed
// in the body of a provider error.
func isConnectionReset(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection reset")
}

// parseEvaluation extracts a score and feedback from the model reply. It
// tolerates missing markers: any number in the text becomes the score, and
// with no feedback a score-band default is substituted.
func parseEvaluation(raw string) entities.AnswerEvaluation {
	score := entities.DefaultScoreOnError
	feedback := ""

	if idx := strings.Index(raw, scoreMarker); idx >= 0 {
		rest := raw[idx+len(scoreMarker):]
		if n, ok := firstNumber(rest); ok {
			score = n
		}
	} else if n, ok := firstNumber(raw); ok {
		score = n
	}

	if idx := strings.Index(raw, feedbackMarker); idx >= 0 {
		feedback = strings.TrimSpace(raw[idx+len(feedbackMarker):])
	}

	score = entities.ClampScore(score)
	if feedback == "" {
		feedback = defaultFeedback(score)
	}

	return entities.AnswerEvaluation{Score: score, Feedback: feedback}
}

// firstNumber finds the first integer in the text.
func firstNumber(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(s[start:])
		return n, err == nil
	}
	return 0, false
}

func defaultFeedback(score int) string {
	switch {
	case score >= 8:
		return "Отличный ответ, серьёзных дополнений нет."
	case score >= 5:
		return "Неплохой ответ, но часть важных деталей упущена."
	default:
		return "Ответ слабый, стоит глубже разобрать эту тему."
	}
}
