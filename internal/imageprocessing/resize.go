package imageprocessing

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// FitMode controls how a source image is mapped onto target dimensions.
type FitMode int

const (
	// FitContain scales to fit inside the target, centering the result on a
	// black canvas when the aspect ratios differ.
	FitContain FitMode = iota
	// FitCover scales to cover the full target and crops the overflow,
	// keeping the image centered.
	FitCover
	// FitStretch scales each axis independently, ignoring aspect ratio.
	FitStretch
)

// Resize scales an image to the target dimensions according to the fit mode,
// using BiLinear interpolation for a good quality/speed balance. E-ink and
// thermal targets have fixed panel dimensions, so this runs before dithering.
func Resize(img image.Image, targetWidth, targetHeight int, fit FitMode) image.Image {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	if bounds.Dx() == targetWidth && bounds.Dy() == targetHeight {
		return img
	}

	switch fit {
	case FitCover:
		return resizeToFill(img, targetWidth, targetHeight)
	case FitStretch:
		resized := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
		xdraw.BiLinear.Scale(resized, resized.Bounds(), img, bounds, xdraw.Over, nil)
		return resized
	default:
		return resizeToFit(img, targetWidth, targetHeight)
	}
}

// scaledDimensions returns the dimensions that fit within the target while
// preserving aspect ratio.
func scaledDimensions(srcWidth, srcHeight, targetWidth, targetHeight int) (int, int) {
	scaleX := float64(targetWidth) / float64(srcWidth)
	scaleY := float64(targetHeight) / float64(srcHeight)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	return int(float64(srcWidth) * scale), int(float64(srcHeight) * scale)
}

func resizeToFit(img image.Image, targetWidth, targetHeight int) image.Image {
	bounds := img.Bounds()
	newWidth, newHeight := scaledDimensions(bounds.Dx(), bounds.Dy(), targetWidth, targetHeight)

	canvas := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	xdraw.BiLinear.Scale(resized, resized.Bounds(), img, bounds, xdraw.Over, nil)

	offsetX := (targetWidth - newWidth) / 2
	offsetY := (targetHeight - newHeight) / 2
	targetRect := image.Rect(offsetX, offsetY, offsetX+newWidth, offsetY+newHeight)
	draw.Draw(canvas, targetRect, resized, image.Point{}, draw.Src)

	return canvas
}

func resizeToFill(img image.Image, targetWidth, targetHeight int) image.Image {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	// Use the larger scale so the image covers the whole target.
	scaleX := float64(targetWidth) / float64(srcWidth)
	scaleY := float64(targetHeight) / float64(srcHeight)
	scale := scaleX
	if scaleY > scaleX {
		scale = scaleY
	}
	newWidth := int(float64(srcWidth) * scale)
	newHeight := int(float64(srcHeight) * scale)

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	xdraw.BiLinear.Scale(resized, resized.Bounds(), img, bounds, xdraw.Over, nil)

	canvas := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	offsetX := (newWidth - targetWidth) / 2
	offsetY := (newHeight - targetHeight) / 2
	srcRect := image.Rect(offsetX, offsetY, offsetX+targetWidth, offsetY+targetHeight)
	draw.Draw(canvas, canvas.Bounds(), resized, srcRect.Min, draw.Src)

	return canvas
}
