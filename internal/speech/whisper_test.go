package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magic-machines/telegram-repl-bot/internal/config"
)

func writeAudioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voice.ogg")
	if err := os.WriteFile(path, []byte("fake audio bytes"), 0o644); err != nil {
		t.Fatalf("write audio file: %v", err)
	}
	return path
}

func newTestClient(endpoint string) *Client {
	return NewClient(config.Config{
		WhisperAPIKey: "test-key",
		WhisperURL:    endpoint,
		WhisperModel:  "whisper-1",
	})
}

func TestTranscribeReturnsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("expected model whisper-1, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "mocked transcription"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	text, err := client.Transcribe(context.Background(), writeAudioFile(t))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "mocked transcription" {
		t.Fatalf("expected mocked transcription, got %q", text)
	}
}

func TestTranscribeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Transcribe(context.Background(), writeAudioFile(t))
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "bad key") {
		t.Fatalf("expected api message in error, got %v", err)
	}
}

func TestTranscribeMissingAPIKey(t *testing.T) {
	client := NewClient(config.Config{WhisperURL: "http://localhost:1", WhisperModel: "whisper-1"})
	if _, err := client.Transcribe(context.Background(), writeAudioFile(t)); err == nil {
		t.Fatal("expected error when api key is not configured")
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	client := newTestClient("http://localhost:1")
	if _, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.ogg")); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}
