package vision

import (
	"image"
	"image/color"
	"testing"
)

// uniformRGBA builds a solid-color test image.
func uniformRGBA(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPreprocessReturnsSingleChannel(t *testing.T) {
	img := uniformRGBA(10, 10, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	var result *image.Gray = Preprocess(img)
	if result == nil {
		t.Fatal("expected a grayscale image")
	}

	bounds := result.Bounds()
	if bounds.Dx() != 10 || bounds.Dy() != 10 {
		t.Fatalf("expected 10x10, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPreprocessClampsBrightPixelsToWhite(t *testing.T) {
	// Gray value 200 doubled around mid-gray exceeds the range and clamps to
	// 255; sharpening a uniform field changes nothing.
	img := uniformRGBA(10, 10, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	result := Preprocess(img)
	if got := result.GrayAt(5, 5).Y; got != 255 {
		t.Fatalf("expected 255 at center, got %d", got)
	}
}

func TestPreprocessClampsDarkPixelsToBlack(t *testing.T) {
	img := uniformRGBA(10, 10, color.RGBA{R: 50, G: 50, B: 50, A: 255})

	result := Preprocess(img)
	if got := result.GrayAt(5, 5).Y; got != 0 {
		t.Fatalf("expected 0 at center, got %d", got)
	}
}

func TestPreprocessAcceptsGrayInput(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))

	result := Preprocess(img)
	if result.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", result.Bounds())
	}
}
