package imageprocessing

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/rmitchellscott/inkwash/internal/dither"
)

// EncodeFile writes an image to disk, picking the container format from the
// output path's extension. Grayscale images with a level count that fits a
// 1/2/4/8-bit grayscale PNG are written through the low-bit-depth encoder;
// everything else goes through the matching stdlib or x/image encoder.
func EncodeFile(path string, img image.Image, levels int) error {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".png" {
		if data, ok := tryGrayPNG(img, levels); ok {
			return os.WriteFile(path, data, 0644)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	switch ext {
	case ".png", "":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = fmt.Errorf("unsupported output format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// tryGrayPNG attempts the compact grayscale PNG path: the image must be
// grayscale and the level count must map exactly onto a PNG bit depth.
func tryGrayPNG(img image.Image, levels int) ([]byte, bool) {
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, false
	}
	depth := GrayBitDepth(levels)
	if depth == 0 {
		return nil, false
	}
	palette, err := dither.Palette(levels)
	if err != nil {
		return nil, false
	}

	paletted := image.NewPaletted(gray.Bounds(), palette)
	for y := gray.Bounds().Min.Y; y < gray.Bounds().Max.Y; y++ {
		for x := gray.Bounds().Min.X; x < gray.Bounds().Max.X; x++ {
			paletted.SetColorIndex(x, y, uint8(palette.Index(gray.GrayAt(x, y))))
		}
	}

	data, err := EncodeGrayPNG(paletted, depth)
	if err != nil {
		return nil, false
	}
	return data, true
}
