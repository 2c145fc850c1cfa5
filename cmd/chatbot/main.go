package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	chatbotroot "github.com/kaviyashree6/chatbot"
	"github.com/kaviyashree6/chatbot/internal/cli"
	"github.com/kaviyashree6/chatbot/internal/config"
	"github.com/kaviyashree6/chatbot/internal/repository"
	"github.com/kaviyashree6/chatbot/internal/service"
	"github.com/kaviyashree6/chatbot/internal/speech"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Local .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(chatbotroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := repository.New(pool)

	// Speech is optional; without a TTS command the controller refuses to
	// speak but everything else works.
	var synth speech.Synthesizer
	if cfg.TTSCommand != "" {
		synth = speech.NewExecSynthesizer(cfg.TTSCommand, cfg.TTSArgs)
	}
	// No local speech recognizer ships with the shell; /listen reports
	// speech as unavailable until one is injected here.
	speechCtl := speech.NewController(synth, nil, cfg.Language)

	// Initialize services
	completion := service.NewCompletionService(cfg.OpenRouterKey, cfg.Model)
	conversations := service.NewConversationService(store)
	moods := service.NewMoodService(store)
	journal := service.NewJournalService(store)
	quotes := service.NewQuoteService(store, cfg.QuoteFeedURL)

	repl := cli.NewREPL(cfg, conversations, moods, journal, quotes, speechCtl)

	temperature := cfg.Temperature
	chat := service.NewChatService(conversations, completion, moods, speechCtl, repl, cfg.SystemPrompt, &temperature)
	repl.SetChat(chat)

	slog.Info("starting chat shell", "model", cfg.Model, "user_id", cfg.UserID)
	if err := repl.Run(ctx); err != nil {
		slog.Error("shell exited", "error", err)
		os.Exit(1)
	}
}
