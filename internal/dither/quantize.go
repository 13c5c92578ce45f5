package dither

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/rmitchellscott/inkwash/internal/raster"
)

// ErrInvalidParameter is returned for out-of-range parameters such as a
// level count below 2 or a malformed kernel.
var ErrInvalidParameter = errors.New("dither: invalid parameter")

// DefaultLevels is the palette size used when none is requested: 2 levels,
// i.e. 1-bit black and white output.
const DefaultLevels = 2

// Quantize maps a real-valued sample to the nearest of `levels` evenly
// spaced output levels spanning the 0-255 sample range, and returns that
// level together with the signed residual (sample minus level). Ties on the
// decision boundary resolve toward the higher level so results are
// reproducible. The sample may lie outside the nominal range when diffused
// error has accumulated; the returned level is always range-bound.
func Quantize(sample float64, levels int) (float64, float64, error) {
	if levels < 2 {
		return 0, 0, fmt.Errorf("%w: level count %d, need at least 2", ErrInvalidParameter, levels)
	}
	level, residual := quantizeWith(sample, QuantizeStep(levels), levels)
	return level, residual, nil
}

// quantizeWith is the engine-side fast path: same mapping as Quantize with
// the level count already validated and the step precomputed.
func quantizeWith(sample, step float64, levels int) (float64, float64) {
	idx := int(math.Floor((sample-raster.SampleMin)/step + 0.5))
	if idx < 0 {
		idx = 0
	} else if idx > levels-1 {
		idx = levels - 1
	}
	level := raster.SampleMin + float64(idx)*step
	return level, sample - level
}

// QuantizeStep returns the spacing between adjacent output levels for the
// given level count. Callers must have validated levels >= 2.
func QuantizeStep(levels int) float64 {
	return (raster.SampleMax - raster.SampleMin) / float64(levels-1)
}

// Levels returns the output level values for a level count, lowest first.
// For levels == 2 this is {0, 255}; for 4 it is {0, 85, 170, 255}, matching
// the evenly spaced grayscale ramps used by low-bit-depth displays.
func Levels(levels int) ([]float64, error) {
	if levels < 2 {
		return nil, fmt.Errorf("%w: level count %d, need at least 2", ErrInvalidParameter, levels)
	}
	step := QuantizeStep(levels)
	out := make([]float64, levels)
	for i := range out {
		out[i] = raster.SampleMin + float64(i)*step
	}
	return out, nil
}

// Palette builds the grayscale color palette for a level count, for handing
// quantized output to a paletted image encoder.
func Palette(levels int) (color.Palette, error) {
	values, err := Levels(levels)
	if err != nil {
		return nil, err
	}
	palette := make(color.Palette, len(values))
	for i, v := range values {
		palette[i] = color.Gray{Y: uint8(v + 0.5)}
	}
	return palette, nil
}
