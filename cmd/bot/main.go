package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-prep-bot/internal/config"
	"github.com/aliskhannn/interview-prep-bot/internal/delivery/telegram"
	"github.com/aliskhannn/interview-prep-bot/internal/infra/postgres"
	"github.com/aliskhannn/interview-prep-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/interview-prep-bot/internal/logger"
	"github.com/aliskhannn/interview-prep-bot/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zl.Fatal("database config", zap.Error(err))
	}

	if err := runMigrations(cfg.MigrationsPath, dsn); err != nil {
		zl.Fatal("migrations", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("database connect", zap.Error(err))
	}
	defer pool.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("telegram auth", zap.Error(err))
	}
	zl.Info("authorized", zap.String("account", bot.Self.UserName))

	userRepo := repository.NewUserRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	evaluator := service.NewEvaluator(service.EvaluatorConfig{
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Model:      cfg.LLM.Model,
		Timeout:    cfg.LLM.Timeout,
		Retries:    cfg.LLM.Retries,
		RetryDelay: cfg.LLM.RetryDelay,
	}, zl)

	registration := service.NewRegistrationService(userRepo, zl)
	sessions := service.NewSessionCache(questionRepo, zl)
	authoring := service.NewAuthoringService(questionRepo, evaluator, zl)

	handler := telegram.NewHandler(bot, zl, registration, sessions, evaluator, authoring)

	if err := handler.SetupCommands(); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	scheduler := service.NewScheduler(userRepo, handler, zl)
	go func() {
		if err := scheduler.Start(ctx); err != nil {
			zl.Error("scheduler", zap.Error(err))
		}
	}()

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Error("handler", zap.Error(err))
	}

	zl.Info("shutdown complete")
}

func runMigrations(path, dsn string) error {
	m, err := migrate.New("file://"+path, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
