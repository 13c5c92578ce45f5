package dither

import "github.com/rmitchellscott/inkwash/internal/raster"

// ordered runs an ordered-dither pass: each sample is perturbed by the tiled
// matrix threshold relative to the range midpoint, then quantized. The
// threshold modulates the quantizer rather than replacing it, which keeps
// the classic ordered texture intact for multi-level palettes too; for a
// binary palette the perturbed comparison reduces to sample >= threshold.
//
// There is no inter-pixel dependency, so unlike the diffusion engine this
// one could process pixels in any order or in parallel.
func ordered(src, out *raster.Buffer, matrix Matrix, levels int) {
	step := QuantizeStep(levels)
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			perturb := Midpoint - matrix.ThresholdAt(x, y)
			for c := 0; c < src.Channels(); c++ {
				level, _ := quantizeWith(src.At(x, y, c)+perturb, step, levels)
				out.Set(x, y, c, level)
			}
		}
	}
}
