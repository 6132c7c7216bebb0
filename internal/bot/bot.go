package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wires the Telegram transport to the relay handlers.
type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *Handlers
	media    *http.Client
}

func New(token string, handlers *Handlers) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Bot{
		api:      api,
		handlers: handlers,
		media:    &http.Client{Timeout: uploadTimeout},
	}, nil
}

// Run polls for updates until ctx is cancelled. Each update is handled on its
// own goroutine so a slow recognition call never stalls other users.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("Bot is running as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	switch {
	case msg.IsCommand():
		b.reply(msg.Chat.ID, b.dispatchCommand(ctx, msg))
	case len(msg.Photo) > 0:
		// Telegram sends several sizes; the last is the largest.
		photo := msg.Photo[len(msg.Photo)-1]
		data, err := b.download(photo.FileID)
		if err != nil {
			b.reply(msg.Chat.ID, fmt.Sprintf("Failed to upload photo: %v", err))
			return
		}
		b.reply(msg.Chat.ID, b.handlers.PhotoReceived(ctx, msg.From.ID, photo.FileID+".jpg", data))
	case msg.Voice != nil:
		data, err := b.download(msg.Voice.FileID)
		if err != nil {
			b.reply(msg.Chat.ID, fmt.Sprintf("Failed to upload voice message: %v", err))
			return
		}
		b.reply(msg.Chat.ID, b.handlers.VoiceReceived(ctx, msg.From.ID, msg.Voice.FileID+".ogg", data))
	}
}

// dispatchCommand returns the reply for a command, or "" for commands the bot
// does not know.
func (b *Bot) dispatchCommand(ctx context.Context, msg *tgbotapi.Message) string {
	switch msg.Command() {
	case "start":
		return b.handlers.Start()
	case "help":
		return b.handlers.Help()
	case "hello":
		return b.handlers.Hello(ctx)
	case "ocr":
		return b.handlers.OCR(ctx, msg.From.ID)
	case "transcribe":
		return b.handlers.Transcribe(ctx, msg.From.ID)
	default:
		return ""
	}
}

func (b *Bot) download(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve telegram file: %w", err)
	}

	resp, err := b.media.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download telegram file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download telegram file: status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (b *Bot) reply(chatID int64, text string) {
	if text == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("send reply: %v", err)
	}
}
