package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/magic-machines/telegram-repl-bot/internal/bot"
	"github.com/magic-machines/telegram-repl-bot/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadBotConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client := bot.NewClient(cfg.ReplURL)
	handlers := bot.NewHandlers(client, bot.NewSessions())

	b, err := bot.New(cfg.Token, handlers)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
}
