package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the settings for the REPL service process. Scratch directories
// are resolved to absolute paths here and created once at server start.
type Config struct {
	Port           string
	PhotosDir      string
	AudioDir       string
	MaxUploadBytes int64
	WhisperAPIKey  string
	WhisperURL     string
	WhisperModel   string
	OCRLanguages   string
	TesseractBin   string
}

// BotConfig holds the settings for the Telegram relay process.
type BotConfig struct {
	Token   string
	ReplURL string
}

func LoadConfig() (Config, error) {
	cfg := Config{}

	cfg.Port = envOrDefault("PORT", "8000")
	cfg.PhotosDir = envOrDefault("PHOTOS_DIR", "/tmp/photos")
	cfg.AudioDir = envOrDefault("AUDIO_DIR", "/tmp/audio")
	cfg.WhisperAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.WhisperURL = envOrDefault("WHISPER_URL", "https://api.openai.com/v1/audio/transcriptions")
	cfg.WhisperModel = envOrDefault("WHISPER_MODEL", "whisper-1")
	cfg.OCRLanguages = envOrDefault("OCR_LANGUAGES", "eng")
	cfg.TesseractBin = envOrDefault("TESSERACT_BIN", "tesseract")

	maxUploadMB, err := parseIntEnv("MAX_UPLOAD_MB", 50)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAX_UPLOAD_MB: %w", err)
	}
	cfg.MaxUploadBytes = maxUploadMB * 1024 * 1024

	absPhotosDir, err := filepath.Abs(cfg.PhotosDir)
	if err != nil {
		return Config{}, fmt.Errorf("resolve photos dir: %w", err)
	}
	cfg.PhotosDir = absPhotosDir

	absAudioDir, err := filepath.Abs(cfg.AudioDir)
	if err != nil {
		return Config{}, fmt.Errorf("resolve audio dir: %w", err)
	}
	cfg.AudioDir = absAudioDir

	return cfg, nil
}

func LoadBotConfig() (BotConfig, error) {
	cfg := BotConfig{}

	cfg.Token = os.Getenv("TELEGRAM_TOKEN")
	if cfg.Token == "" {
		return BotConfig{}, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	cfg.ReplURL = envOrDefault("REPL_URL", "http://localhost:8000")

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int64) (int64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}

	num, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}
