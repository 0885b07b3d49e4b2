package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/admin"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/config"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/database"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/groq"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/pptx"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/repository"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/service"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/storage"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/telegram"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logr := logger.New()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("telegram bot: %v", err)
	}

	accountRepo := repository.NewAccountRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	accountService := service.NewAccountService(accountRepo)
	creditService := service.NewCreditService(accountRepo, paymentRepo)

	modelClient := groq.NewClient(cfg, logr)
	encoder := pptx.NewEncoder(cfg.SlidesDir, logr)
	deliverer := telegram.NewDeliverer(botAPI, logr)
	generationService := service.NewGenerationService(logr, creditService, modelClient, encoder, deliverer)

	var archive telegram.ReceiptArchive
	if cfg.ReceiptArchiveEnabled() {
		uploader, err := storage.NewUploader(storage.Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
			UsePathStyle:  cfg.S3UsePathStyle,
			Prefix:        cfg.S3Prefix,
		})
		if err != nil {
			log.Fatalf("storage uploader: %v", err)
		}
		archive = uploader
	}

	bot := telegram.NewBot(cfg, botAPI, logr, accountService, creditService, generationService, archive)

	server := admin.NewServer(cfg.ListenAddr, cfg.AdminUsername, cfg.AdminPassword, cfg.WebhookPath, logr, accountService, creditService, bot, bot, bot)

	if cfg.PublicURL != "" {
		wh, err := tgbotapi.NewWebhook(cfg.PublicURL + cfg.WebhookPath)
		if err != nil {
			log.Fatalf("webhook config: %v", err)
		}
		if _, err := botAPI.Request(wh); err != nil {
			log.Fatalf("set webhook: %v", err)
		}
		logr.Info("telegram bot started", "mode", "webhook", "url", cfg.PublicURL+cfg.WebhookPath)
		defer func() {
			if _, err := botAPI.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
				logr.Error("delete webhook", "err", err)
			}
		}()

		if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logr.Error("http server stopped", "err", err)
		}
		return
	}

	if _, err := botAPI.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		logr.Error("delete webhook", "err", err)
	}

	go func() {
		if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logr.Error("http server stopped", "err", err)
		}
	}()

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logr.Error("bot stopped", "err", err)
	}
}
