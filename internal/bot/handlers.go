// Package bot relays Telegram media and commands to the REPL service and
// replies with recognition results.
package bot

import (
	"context"
	"fmt"
)

// ServiceAPI is the slice of the REPL service the handlers need. *Client
// implements it; tests substitute a fake.
type ServiceAPI interface {
	Health(ctx context.Context) (string, error)
	UploadPhoto(ctx context.Context, filename string, data []byte) (string, error)
	UploadAudio(ctx context.Context, filename string, data []byte) (string, error)
	RecognizePhoto(ctx context.Context, photoID string) (string, error)
	TranscribeAudio(ctx context.Context, audioID string) (string, error)
}

const HelpText = `Available commands:

/hello — check if the REPL service is up
/ocr — extract text from your last uploaded photo
/transcribe — transcribe your last voice message
/help — show this help message
/start — show this help message

To use OCR: send a photo, then run /ocr
To transcribe: send a voice message, then run /transcribe`

// Handlers produce the reply text for each command or media message. Every
// path, including failures, ends in a reply.
type Handlers struct {
	svc      ServiceAPI
	sessions *Sessions
}

func NewHandlers(svc ServiceAPI, sessions *Sessions) *Handlers {
	return &Handlers{svc: svc, sessions: sessions}
}

func (h *Handlers) Start() string {
	return "Hello! " + HelpText
}

func (h *Handlers) Help() string {
	return HelpText
}

func (h *Handlers) Hello(ctx context.Context) string {
	status, err := h.svc.Health(ctx)
	if err != nil {
		return fmt.Sprintf("REPL service is unreachable: %v", err)
	}
	return fmt.Sprintf("REPL service is up. Status: %s", status)
}

// PhotoReceived uploads the photo and remembers its identifier for the user.
// On failure the previous identifier, if any, is kept.
func (h *Handlers) PhotoReceived(ctx context.Context, userID int64, filename string, data []byte) string {
	id, err := h.svc.UploadPhoto(ctx, filename, data)
	if err != nil {
		return fmt.Sprintf("Failed to upload photo: %v", err)
	}
	h.sessions.SetPhoto(userID, id)
	return fmt.Sprintf("Photo uploaded. ID: %s\n\nUse /ocr to extract text from this photo.", id)
}

// VoiceReceived uploads the voice message and remembers its identifier for
// the user. On failure the previous identifier, if any, is kept.
func (h *Handlers) VoiceReceived(ctx context.Context, userID int64, filename string, data []byte) string {
	id, err := h.svc.UploadAudio(ctx, filename, data)
	if err != nil {
		return fmt.Sprintf("Failed to upload voice message: %v", err)
	}
	h.sessions.SetAudio(userID, id)
	return fmt.Sprintf("Voice message uploaded. ID: %s\n\nUse /transcribe to transcribe it.", id)
}

// OCR fetches recognized text for the user's most recent photo. The session
// is left unchanged, so the command can be repeated.
func (h *Handlers) OCR(ctx context.Context, userID int64) string {
	photoID, ok := h.sessions.Photo(userID)
	if !ok {
		return "No photo uploaded yet. Send a photo first."
	}

	text, err := h.svc.RecognizePhoto(ctx, photoID)
	if err != nil {
		return fmt.Sprintf("OCR failed: %v", err)
	}
	if text == "" {
		return "No text found in the image."
	}
	return text
}

// Transcribe fetches the transcription of the user's most recent voice
// message. The session is left unchanged, so the command can be repeated.
func (h *Handlers) Transcribe(ctx context.Context, userID int64) string {
	audioID, ok := h.sessions.Audio(userID)
	if !ok {
		return "No voice message uploaded yet. Send a voice message first."
	}

	text, err := h.svc.TranscribeAudio(ctx, audioID)
	if err != nil {
		return fmt.Sprintf("Transcription failed: %v", err)
	}
	if text == "" {
		return "No speech detected."
	}
	return text
}
