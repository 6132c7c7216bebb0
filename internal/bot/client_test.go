package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if status != "ok" {
		t.Fatalf("expected ok, got %q", status)
	}
}

func TestClientHealthMissingStatusField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if status != "unknown" {
		t.Fatalf("expected unknown, got %q", status)
	}
}

func TestClientUploadPhoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/photos/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "photo.jpg" {
			t.Errorf("expected filename photo.jpg, got %q", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photo_id": "photo-abc", "filename": "photo.jpg"}`))
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL).UploadPhoto(context.Background(), "photo.jpg", []byte("jpeg bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if id != "photo-abc" {
		t.Fatalf("expected photo-abc, got %q", id)
	}
}

func TestClientUploadAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/upload" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"audio_id": "audio-xyz", "filename": "voice.ogg"}`))
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL).UploadAudio(context.Background(), "voice.ogg", []byte("ogg bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if id != "audio-xyz" {
		t.Fatalf("expected audio-xyz, got %q", id)
	}
}

func TestClientRecognizePhotoTrimsWhitespace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photos/photo-abc/analyse/ocr" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photo_id": "photo-abc", "text": " hello \n"}`))
	}))
	defer srv.Close()

	text, err := NewClient(srv.URL).RecognizePhoto(context.Background(), "photo-abc")
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if text != "hello" {
		t.Fatalf("expected hello, got %q", text)
	}
}

func TestClientTranscribeAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/audio-xyz/transcribe" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"audio_id": "audio-xyz", "text": "mocked transcription"}`))
	}))
	defer srv.Close()

	text, err := NewClient(srv.URL).TranscribeAudio(context.Background(), "audio-xyz")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "mocked transcription" {
		t.Fatalf("expected mocked transcription, got %q", text)
	}
}

func TestClientSurfacesServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "photo not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RecognizePhoto(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	if !strings.Contains(err.Error(), "photo not found") {
		t.Fatalf("expected the service message in the error, got %v", err)
	}
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL + "/").Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}
