package dither

import "github.com/rmitchellscott/inkwash/internal/raster"

// diffuse runs an error-diffusion pass: scan the working buffer row by row,
// quantize each (possibly already perturbed) sample, write the finalized
// level to out, and distribute the residual to not-yet-visited neighbors in
// the working buffer. The two buffers stay logically distinct the whole
// pass, so a finalized level is never read back as a diffusion source.
//
// With serpentine traversal, odd rows are scanned right-to-left with the
// kernel's x-offsets mirrored, which breaks up the diagonal worm artifacts
// a pure raster scan produces. Error that would land outside the buffer is
// discarded rather than wrapped or reflected. Working samples may drift
// outside the nominal range while error accumulates; that is expected, and
// only the quantized levels in out are range-bound.
func diffuse(work, out *raster.Buffer, kernel Kernel, levels int, serpentine bool) {
	step := QuantizeStep(levels)
	width := work.Width()
	channels := work.Channels()

	for y := 0; y < work.Height(); y++ {
		reversed := serpentine && y%2 == 1
		for i := 0; i < width; i++ {
			x := i
			if reversed {
				x = width - 1 - i
			}
			for c := 0; c < channels; c++ {
				level, residual := quantizeWith(work.At(x, y, c), step, levels)
				out.Set(x, y, c, level)
				kernel.Distribute(work, x, y, c, residual, reversed)
			}
		}
	}
}
