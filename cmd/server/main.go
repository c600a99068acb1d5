package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/inclusions-zone/mailhub-backend/internal/ai"
	"github.com/inclusions-zone/mailhub-backend/internal/api"
	"github.com/inclusions-zone/mailhub-backend/internal/config"
	"github.com/inclusions-zone/mailhub-backend/internal/database"
	"github.com/inclusions-zone/mailhub-backend/internal/mail"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/services"
	"github.com/inclusions-zone/mailhub-backend/internal/smtp"
	"github.com/inclusions-zone/mailhub-backend/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadWithValidation()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("starting mailhub backend")
	cfg.LogConfig(logger)

	// Database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Repositories
	messageRepo := repository.NewMessageRepository(db)
	actionRepo := repository.NewActionRepository(db)
	digestRepo := repository.NewDigestRepository(db)
	contactRepo := repository.NewContactRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	dealRepo := repository.NewDealRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	vipRepo := repository.NewVIPRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)

	// WebSocket hub for dashboard notifications
	hub := websocket.NewHub(logger)
	go hub.Run()

	// External clients
	source := mail.NewIMAPSource(cfg.IMAPHost, cfg.IMAPPort, logger)
	classifier := ai.NewGeminiClassifier(cfg.GeminiAPIKey, cfg.GeminiModel)
	mailer := mail.NewResendMailer(cfg.ResendAPIKey, cfg.DigestFrom)

	// Services
	ingestion := services.NewIngestionService(cfg.MailAccounts, source, messageRepo, hub, logger)
	analysis := services.NewAnalysisService(messageRepo, classifier, cfg.ClassifyRate, hub, logger)
	applier := services.NewApplier(contactRepo, companyRepo, dealRepo, bookingRepo, vipRepo, messageRepo)
	actions := services.NewActionService(actionRepo, messageRepo, applier, logger)
	digest := services.NewDigestService(messageRepo, actionRepo, digestRepo, mailer, cfg.DigestRecipients, hub, logger)
	intake := services.NewIntakeService(newsletterRepo, vipRepo, bookingRepo, contactRepo, mailer, logger)

	// HTTP server
	router := api.NewRouter(&api.RouterConfig{
		DB:             db,
		Logger:         logger,
		Hub:            hub,
		Ingestion:      ingestion,
		Analysis:       analysis,
		Actions:        actions,
		Digest:         digest,
		Intake:         intake,
		APIKey:         cfg.APIKey,
		AllowedOrigins: splitOrigins(cfg.AllowedOrigins),
		RateLimit:      int(cfg.RateLimitRequests),
		RateBurst:      cfg.RateLimitBurst,
		EnableAuth:     cfg.APIKey != "",
	})

	// Inbound SMTP server
	smtpBackend := smtp.NewBackend(&smtp.BackendConfig{
		Accounts:    cfg.MailAccounts,
		MessageRepo: messageRepo,
		Notifier:    hub,
		Logger:      logger,
	})
	smtpCfg := smtp.LoadServerConfigFromEnv()
	smtpCfg.Addr = fmt.Sprintf(":%d", cfg.SMTPPort)
	smtpServer := smtp.NewSecureServer(smtpBackend, smtpCfg)

	go func() {
		logger.Info("SMTP server listening", slog.String("addr", smtpCfg.Addr))
		if err := smtpServer.ListenAndServe(); err != nil {
			logger.Error("SMTP server stopped", slog.String("error", err.Error()))
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		logger.Info("HTTP server listening", slog.String("addr", addr))
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", slog.String("error", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := router.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown failed", slog.String("error", err.Error()))
	}
	if err := smtpServer.Shutdown(ctx); err != nil {
		logger.Error("SMTP shutdown failed", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitOrigins(origins string) []string {
	if origins == "" {
		return nil
	}
	var out []string
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
