package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrDimensionMismatch is returned when buffer dimensions are non-positive
// or inconsistent with the stated channel count.
var ErrDimensionMismatch = errors.New("raster: dimension mismatch")

// Channel counts supported by Buffer.
const (
	ChannelsGray = 1
	ChannelsRGB  = 3
)

// Sample range convention shared by every engine: decoded images are stored
// as real values in [0, 255] regardless of the source bit depth. Accumulated
// error may push a working sample outside this range; only final quantized
// levels are range-bound.
const (
	SampleMin = 0.0
	SampleMax = 255.0
)

// Buffer is an in-memory grid of real-valued channel samples. Samples are
// stored row-major, channels interleaved, as float64 so that accumulated
// quantization error never loses precision or wraps.
type Buffer struct {
	width    int
	height   int
	channels int
	samples  []float64
}

// NewBuffer allocates a zeroed buffer with the given dimensions.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if err := validateDimensions(width, height, channels); err != nil {
		return nil, err
	}
	return &Buffer{
		width:    width,
		height:   height,
		channels: channels,
		samples:  make([]float64, width*height*channels),
	}, nil
}

func validateDimensions(width, height, channels int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensionMismatch, width, height)
	}
	if channels != ChannelsGray && channels != ChannelsRGB {
		return fmt.Errorf("%w: unsupported channel count %d", ErrDimensionMismatch, channels)
	}
	return nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Channels returns the number of channels per pixel.
func (b *Buffer) Channels() int { return b.channels }

// At returns the sample at (x, y) for channel c. Coordinates must be in
// bounds; like the stdlib image types, out-of-range access panics.
func (b *Buffer) At(x, y, c int) float64 {
	return b.samples[(y*b.width+x)*b.channels+c]
}

// Set replaces the sample at (x, y) for channel c.
func (b *Buffer) Set(x, y, c int, v float64) {
	b.samples[(y*b.width+x)*b.channels+c] = v
}

// Add accumulates v into the sample at (x, y) for channel c. The result is
// deliberately not clamped; diffused error may exceed the nominal range.
func (b *Buffer) Add(x, y, c int, v float64) {
	b.samples[(y*b.width+x)*b.channels+c] += v
}

// In reports whether pixel (x, y) lies within the buffer bounds.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	dup := &Buffer{
		width:    b.width,
		height:   b.height,
		channels: b.channels,
		samples:  make([]float64, len(b.samples)),
	}
	copy(dup.samples, b.samples)
	return dup
}

// FromImage converts a decoded image into a buffer. Grayscale sources keep a
// single channel; everything else is expanded to three RGB channels. Alpha is
// discarded — dithering targets opaque reduced-palette output.
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrDimensionMismatch)
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		buf, err := NewBuffer(width, height, ChannelsGray)
		if err != nil {
			return nil, err
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				buf.Set(x, y, 0, float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y))
			}
		}
		return buf, nil
	}

	buf, err := NewBuffer(width, height, ChannelsRGB)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, bl, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit premultiplied values; scale back to 0-255.
			buf.Set(x, y, 0, float64(r>>8))
			buf.Set(x, y, 1, float64(g>>8))
			buf.Set(x, y, 2, float64(bl>>8))
		}
	}
	return buf, nil
}

// ToImage converts the buffer back into a stdlib image: Gray for C=1,
// RGBA for C=3. Samples are clamped to the 0-255 range on the way out.
func (b *Buffer) ToImage() image.Image {
	if b.channels == ChannelsGray {
		return b.ToGray()
	}
	rect := image.Rect(0, 0, b.width, b.height)
	rgba := image.NewRGBA(rect)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			rgba.SetRGBA(x, y, color.RGBA{
				R: clampByte(b.At(x, y, 0)),
				G: clampByte(b.At(x, y, 1)),
				B: clampByte(b.At(x, y, 2)),
				A: 0xFF,
			})
		}
	}
	return rgba
}

// ToGray converts the buffer into a grayscale image. Multi-channel buffers
// are collapsed with the standard luminance weights.
func (b *Buffer) ToGray() *image.Gray {
	rect := image.Rect(0, 0, b.width, b.height)
	gray := image.NewGray(rect)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			var v float64
			if b.channels == ChannelsGray {
				v = b.At(x, y, 0)
			} else {
				v = 0.299*b.At(x, y, 0) + 0.587*b.At(x, y, 1) + 0.114*b.At(x, y, 2)
			}
			gray.SetGray(x, y, color.Gray{Y: clampByte(v)})
		}
	}
	return gray
}

// ToPaletted converts a single-channel buffer into a paletted image over the
// given grayscale palette, matching each sample to the nearest palette entry.
// Used to hand quantized output to the low-bit-depth PNG encoder.
func (b *Buffer) ToPaletted(palette color.Palette) *image.Paletted {
	rect := image.Rect(0, 0, b.width, b.height)
	paletted := image.NewPaletted(rect, palette)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			var v float64
			if b.channels == ChannelsGray {
				v = b.At(x, y, 0)
			} else {
				v = 0.299*b.At(x, y, 0) + 0.587*b.At(x, y, 1) + 0.114*b.At(x, y, 2)
			}
			paletted.SetColorIndex(x, y, uint8(palette.Index(color.Gray{Y: clampByte(v)})))
		}
	}
	return paletted
}

func clampByte(v float64) uint8 {
	if v <= SampleMin {
		return 0
	}
	if v >= SampleMax {
		return 255
	}
	return uint8(v + 0.5)
}
