// Package vision implements the photo recognition pipeline: best-effort
// orientation correction, a fixed enhancement chain, and sparse-text OCR via
// Tesseract.
package vision

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Engine runs stored photos through the recognition pipeline. The orientation
// step is pluggable so tests can exercise the fallback policy without a
// Tesseract installation.
type Engine struct {
	languages string
	tesseract string
	osd       func(image.Image) (string, error)
}

func NewEngine(languages, tesseractBin string) *Engine {
	e := &Engine{languages: languages, tesseract: tesseractBin}
	e.osd = e.detectOrientation
	return e
}

// RecognizeText loads the stored image at path, corrects its orientation,
// applies the enhancement chain and returns the raw recognized text. The text
// is not trimmed.
func (e *Engine) RecognizeText(ctx context.Context, path string) (string, error) {
	img, err := loadImage(path)
	if err != nil {
		return "", err
	}

	processed := Preprocess(e.CorrectRotation(img))

	// Tesseract wants a file path; hand it the processed image as a temp PNG.
	tmpPath, err := saveTempPNG(processed, "ocr")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)

	return e.recognize(tmpPath)
}

// recognize runs Tesseract in sparse-text mode, the configuration for
// scattered text of unknown orientation.
func (e *Engine) recognize(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages); err != nil {
		return "", fmt.Errorf("set OCR language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("set OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func saveTempPNG(img image.Image, prefix string) (string, error) {
	f, err := os.CreateTemp("", prefix+"-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	path := f.Name()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp image: %w", err)
	}

	return path, nil
}
