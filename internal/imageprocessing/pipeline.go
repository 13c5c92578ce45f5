package imageprocessing

import (
	"fmt"
	"image"

	"github.com/rmitchellscott/inkwash/internal/dither"
	"github.com/rmitchellscott/inkwash/internal/raster"
)

// Options customizes the processing pipeline around the dithering engine.
type Options struct {
	// Width and Height resize the image before dithering; zero leaves the
	// source dimensions untouched.
	Width  int
	Height int
	Fit    FitMode

	// Grayscale collapses color sources to a single luminance channel
	// before dithering. Color sources otherwise dither each RGB channel
	// independently.
	Grayscale bool

	Mode       dither.Mode
	Levels     int
	Seed       uint64
	Serpentine bool
}

// DefaultOptions returns the pipeline defaults: no resize, grayscale 1-bit
// Floyd-Steinberg output.
func DefaultOptions() Options {
	return Options{
		Grayscale: true,
		Mode:      dither.ModeFloydSteinberg,
		Levels:    dither.DefaultLevels,
	}
}

// Process runs the full pipeline: optional resize, optional grayscale
// conversion, then a dithering pass. The returned image holds only palette
// levels and can be handed straight to an encoder.
func Process(img image.Image, opts Options) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrDimensionMismatch)
	}

	if opts.Width > 0 && opts.Height > 0 {
		img = Resize(img, opts.Width, opts.Height, opts.Fit)
	}
	if opts.Grayscale {
		img = ToGrayscale(img)
	}

	buf, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	out, err := dither.Dither(buf, opts.Mode, dither.Options{
		Levels:     opts.Levels,
		Seed:       opts.Seed,
		Serpentine: opts.Serpentine,
	})
	if err != nil {
		return nil, err
	}
	return out.ToImage(), nil
}
