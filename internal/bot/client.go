package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Per-call budgets. Transcription is the most expensive step and gets the
// largest one. A timed-out call is treated like any other transport failure
// and is never retried.
const (
	healthTimeout     = 5 * time.Second
	uploadTimeout     = 30 * time.Second
	ocrTimeout        = 30 * time.Second
	transcribeTimeout = 120 * time.Second
)

// Client talks to the REPL service over HTTP. Each method carries its own
// timeout; a single failed attempt is surfaced to the caller immediately.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Health reports the service's liveness status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/health", &payload); err != nil {
		return "", err
	}
	if payload.Status == "" {
		return "unknown", nil
	}
	return payload.Status, nil
}

// UploadPhoto stores photo bytes on the service and returns the assigned
// identifier.
func (c *Client) UploadPhoto(ctx context.Context, filename string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	var payload struct {
		PhotoID string `json:"photo_id"`
	}
	if err := c.postFile(ctx, "/photos/upload", filename, data, &payload); err != nil {
		return "", err
	}
	return payload.PhotoID, nil
}

// UploadAudio stores audio bytes on the service and returns the assigned
// identifier.
func (c *Client) UploadAudio(ctx context.Context, filename string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	var payload struct {
		AudioID string `json:"audio_id"`
	}
	if err := c.postFile(ctx, "/audio/upload", filename, data, &payload); err != nil {
		return "", err
	}
	return payload.AudioID, nil
}

// RecognizePhoto fetches recognized text for a stored photo, trimmed of
// surrounding whitespace.
func (c *Client) RecognizePhoto(ctx context.Context, photoID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ocrTimeout)
	defer cancel()

	var payload struct {
		Text string `json:"text"`
	}
	if err := c.getJSON(ctx, "/photos/"+photoID+"/analyse/ocr", &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.Text), nil
}

// TranscribeAudio fetches the transcription of a stored voice message,
// trimmed of surrounding whitespace.
func (c *Client) TranscribeAudio(ctx context.Context, audioID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, transcribeTimeout)
	defer cancel()

	var payload struct {
		Text string `json:"text"`
	}
	if err := c.getJSON(ctx, "/audio/"+audioID+"/transcribe", &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.Text), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postFile(ctx context.Context, path, filename string, data []byte, out any) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write multipart file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("repl service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeServiceError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode repl service response: %w", err)
	}
	return nil
}

func decodeServiceError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}

	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("repl service error: status %d: %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("repl service error: status %d", resp.StatusCode)
}
