package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pantrychef/internal/app"
	"pantrychef/internal/catalog"
	"pantrychef/internal/config"
	"pantrychef/internal/logger"
	"pantrychef/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	// 1. Load configuration, the bot token is mandatory here
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := cfg.ValidateTelegram(); err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		logger.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	// 2. Load the recipe catalog
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	// The bot is text-only, so no OCR service is wired.
	application := app.New(cat, nil, cfg.MatchThreshold)

	// 3. Start the bot with graceful shutdown
	bot, err := telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.AllowUserID, application)
	if err != nil {
		logger.Fatal("failed to initialize telegram bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bot polling for updates", zap.Int("recipes", cat.Len()))
	bot.Run(ctx)

	logger.Info("bot exiting")
}
