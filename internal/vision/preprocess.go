package vision

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// contrastBoostPercent doubles each pixel's deviation from mid-gray, clamped
// to the valid range (imaging maps percentage p to the factor (100+p)/100).
const contrastBoostPercent = 100

// sharpenKernel is the classic 3x3 sharpening convolution, normalized before
// use so the weights sum to one.
var sharpenKernel = &convolution.Kernel{
	Matrix: []float64{
		-2, -2, -2,
		-2, 32, -2,
		-2, -2, -2,
	},
	Width:  3,
	Height: 3,
}

// Preprocess applies the fixed enhancement chain used before recognition:
// single-channel grayscale, then a 2x contrast boost, then a sharpening
// convolution. The order is significant and not configurable.
func Preprocess(img image.Image) *image.Gray {
	return sharpen(boostContrast(toGrayscale(img)))
}

func toGrayscale(img image.Image) *image.Gray {
	return collapse(effect.Grayscale(img))
}

func boostContrast(img *image.Gray) *image.Gray {
	return collapse(imaging.AdjustContrast(img, contrastBoostPercent))
}

func sharpen(img *image.Gray) *image.Gray {
	return collapse(convolution.Convolve(img, sharpenKernel.Normalized(), &convolution.Options{Bias: 0, Wrap: false}))
}

// collapse flattens a four-channel result back to a single channel. Every
// caller feeds it an image whose pixels are already gray, so no values change.
func collapse(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}
