package dither

import (
	"math/rand/v2"

	"github.com/rmitchellscott/inkwash/internal/raster"
)

// random runs a random-dither pass: each sample gets an independent uniform
// perturbation of up to half a quantization step in either direction before
// quantizing. The PRNG is a PCG seeded from the caller-supplied seed, so a
// fixed (buffer, levels, seed) triple always reproduces the same output;
// wall-clock seeding is deliberately impossible here.
func random(src, out *raster.Buffer, levels int, seed uint64) {
	step := QuantizeStep(levels)
	rng := rand.New(rand.NewPCG(seed, seed))
	half := step / 2

	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			for c := 0; c < src.Channels(); c++ {
				perturb := (rng.Float64() * step) - half
				level, _ := quantizeWith(src.At(x, y, c)+perturb, step, levels)
				out.Set(x, y, c, level)
			}
		}
	}
}
