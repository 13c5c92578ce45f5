package imageprocessing

import (
	"image"
	"image/color"
)

// ToGrayscale converts an image to grayscale using the luminance formula
// Y = 0.299*R + 0.587*G + 0.114*B. Images that are already grayscale are
// returned as-is.
func ToGrayscale(img image.Image) image.Image {
	if img == nil {
		return nil
	}
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	return gray
}

// ToRGBA converts any image to RGBA format for easier processing
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	return rgba
}
