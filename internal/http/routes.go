package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magic-machines/telegram-repl-bot/internal/store"
)

// PhotoRecognizer extracts text from a stored image file.
type PhotoRecognizer interface {
	RecognizeText(ctx context.Context, path string) (string, error)
}

// AudioTranscriber converts a stored audio file to text.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

type API struct {
	photos *store.Store
	audio  *store.Store
	ocr    PhotoRecognizer
	stt    AudioTranscriber
}

func NewAPI(photos, audio *store.Store, ocr PhotoRecognizer, stt AudioTranscriber) *API {
	return &API{photos: photos, audio: audio, ocr: ocr, stt: stt}
}

func registerRoutes(r *gin.Engine, api *API) {
	r.GET("/health", api.handleHealth)

	r.POST("/photos/upload", api.handleUploadPhoto)
	r.GET("/photos/:id/analyse/ocr", api.handleAnalyseOCR)

	r.POST("/audio/upload", api.handleUploadAudio)
	r.GET("/audio/:id/transcribe", api.handleTranscribe)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) handleUploadPhoto(c *gin.Context) {
	id, filename, ok := a.saveUpload(c, a.photos, "photo")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_id": id, "filename": filename})
}

func (a *API) handleUploadAudio(c *gin.Context) {
	id, filename, ok := a.saveUpload(c, a.audio, "audio")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"audio_id": id, "filename": filename})
}

// saveUpload stores the multipart "file" field and reports whether the
// request has already been answered on failure.
func (a *API) saveUpload(c *gin.Context, dst *store.Store, kind string) (string, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "missing file")
		return "", "", false
	}

	upload, err := fileHeader.Open()
	if err != nil {
		log.Printf("error opening %s upload: %v", kind, err)
		respondMessage(c, http.StatusInternalServerError, "unable to read uploaded file")
		return "", "", false
	}
	defer upload.Close()

	id, err := dst.Save(fileHeader.Filename, upload)
	if err != nil {
		log.Printf("error saving %s upload: %v", kind, err)
		respondError(c, http.StatusInternalServerError, err)
		return "", "", false
	}

	uploadsTotal.WithLabelValues(kind).Inc()
	log.Printf("Stored %s %q as %s", kind, fileHeader.Filename, id)
	return id, fileHeader.Filename, true
}

func (a *API) handleAnalyseOCR(c *gin.Context) {
	id := c.Param("id")

	path, err := a.photos.Find(id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(c, http.StatusNotFound, "photo not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	text, err := a.ocr.RecognizeText(c.Request.Context(), path)
	if err != nil {
		log.Printf("ocr failed for %s: %v", id, err)
		recognitionsTotal.WithLabelValues("photo", "error").Inc()
		respondMessage(c, http.StatusBadGateway, "text recognition failed")
		return
	}

	recognitionsTotal.WithLabelValues("photo", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"photo_id": id, "text": text})
}

func (a *API) handleTranscribe(c *gin.Context) {
	id := c.Param("id")

	path, err := a.audio.Find(id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(c, http.StatusNotFound, "audio not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	text, err := a.stt.Transcribe(c.Request.Context(), path)
	if err != nil {
		log.Printf("transcription failed for %s: %v", id, err)
		recognitionsTotal.WithLabelValues("audio", "error").Inc()
		respondMessage(c, http.StatusBadGateway, "transcription failed")
		return
	}

	recognitionsTotal.WithLabelValues("audio", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"audio_id": id, "text": text})
}

func respondError(c *gin.Context, status int, err error) {
	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
