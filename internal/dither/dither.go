package dither

import (
	"fmt"

	"github.com/rmitchellscott/inkwash/internal/raster"
)

// Options controls a single dithering pass.
type Options struct {
	// Levels is the output palette size; 0 means DefaultLevels (1-bit).
	Levels int

	// Seed drives the random-dither PRNG. It must be supplied explicitly by
	// the caller; the engine never falls back to wall-clock time, so runs
	// are reproducible by construction.
	Seed uint64

	// Serpentine forces serpentine traversal for diffusion modes regardless
	// of the kernel's declared policy.
	Serpentine bool
}

// Dither quantizes buf to a reduced palette using the given mode and returns
// a new buffer of identical shape. The input buffer is never mutated, so
// repeated runs over the same source are safe. Channels are dithered
// independently; there is no cross-channel error sharing.
func Dither(buf *raster.Buffer, mode Mode, opts Options) (*raster.Buffer, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", raster.ErrDimensionMismatch)
	}
	entry, ok := registry[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	levels := opts.Levels
	if levels == 0 {
		levels = DefaultLevels
	}
	if levels < 2 {
		return nil, fmt.Errorf("%w: level count %d, need at least 2", ErrInvalidParameter, levels)
	}

	out, err := raster.NewBuffer(buf.Width(), buf.Height(), buf.Channels())
	if err != nil {
		return nil, err
	}

	switch entry.engine {
	case engineDiffusion:
		if err := entry.kernel.Validate(); err != nil {
			return nil, err
		}
		serpentine := entry.kernel.Serpentine || opts.Serpentine
		// Diffusion reads back perturbed samples, so it works on a private
		// copy of the input; out only ever holds finalized levels.
		diffuse(buf.Clone(), out, entry.kernel, levels, serpentine)
	case engineOrdered:
		if err := entry.matrix.Validate(); err != nil {
			return nil, err
		}
		ordered(buf, out, entry.matrix, levels)
	case engineRandom:
		random(buf, out, levels, opts.Seed)
	case engineThreshold:
		threshold(buf, out, levels)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, entry.name)
	}
	return out, nil
}

// DitherByName is the string-keyed entry point for the CLI boundary.
func DitherByName(buf *raster.Buffer, name string, opts Options) (*raster.Buffer, error) {
	mode, err := ParseMode(name)
	if err != nil {
		return nil, err
	}
	return Dither(buf, mode, opts)
}

// threshold is the no-diffusion baseline: every sample is quantized to the
// nearest level with no perturbation at all.
func threshold(src, out *raster.Buffer, levels int) {
	step := QuantizeStep(levels)
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			for c := 0; c < src.Channels(); c++ {
				level, _ := quantizeWith(src.At(x, y, c), step, levels)
				out.Set(x, y, c, level)
			}
		}
	}
}
