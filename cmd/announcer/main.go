package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/announcer"
	"github.com/LangApex/alumni-platform/internal/changes"
	"github.com/LangApex/alumni-platform/internal/clients"
	"github.com/LangApex/alumni-platform/internal/config"
	"github.com/LangApex/alumni-platform/internal/logger"
)

func main() {
	cfg, err := config.LoadAnnouncer()
	if err != nil {
		config.Exitf("announcer: %v", err)
	}

	log, err := logger.NewZap(cfg.LogLevel)
	if err != nil {
		config.Exitf("announcer: %v", err)
	}
	defer log.Sync()

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Fatal("Invalid TIME_ZONE", zap.String("time_zone", cfg.TimeZone), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := clients.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatal("Failed to create Telegram bot", zap.Error(err))
	}
	log.Info("Authorized on Telegram", zap.String("bot", bot.Self.UserName))

	a := announcer.New(bot, cfg.Telegram.ChatID, loc, log)
	if err := changes.Subscribe(ctx, redisClient, cfg.ChangesChannel, log, a.Handle); err != nil {
		log.Fatal("Subscription failed", zap.Error(err))
	}

	log.Info("Announcer stopped")
}
