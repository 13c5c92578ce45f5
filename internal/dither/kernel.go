package dither

import (
	"fmt"

	"github.com/rmitchellscott/inkwash/internal/raster"
)

// Tap is a single error-diffusion target: an offset relative to the current
// pixel and the weight of the error share it receives.
type Tap struct {
	DX, DY int
	Weight float64
}

// Kernel is an error-diffusion kernel: an ordered set of taps plus the
// divisor normalizing the propagated error. All taps must point at pixels
// that lie later in scan order, so no pixel receives error after it has
// been finalized.
type Kernel struct {
	Name    string
	Taps    []Tap
	Divisor float64

	// Serpentine selects the traversal policy this kernel was designed for.
	// All stock kernels default to raster (left-to-right); callers may still
	// force serpentine traversal per run.
	Serpentine bool
}

// Validate rejects malformed kernels: no taps, a non-positive divisor, or a
// tap that targets an already-visited pixel in raster order (dy < 0, or
// dy == 0 with dx <= 0).
func (k Kernel) Validate() error {
	if len(k.Taps) == 0 {
		return fmt.Errorf("%w: kernel %q has no taps", ErrInvalidParameter, k.Name)
	}
	if k.Divisor <= 0 {
		return fmt.Errorf("%w: kernel %q divisor %g", ErrInvalidParameter, k.Name, k.Divisor)
	}
	for _, t := range k.Taps {
		if t.DY < 0 || (t.DY == 0 && t.DX <= 0) {
			return fmt.Errorf("%w: kernel %q tap (%d,%d) targets an already-visited pixel",
				ErrInvalidParameter, k.Name, t.DX, t.DY)
		}
	}
	return nil
}

// Distribute adds the error shares for residual at pixel (x, y), channel c,
// into the working buffer. Shares that would land outside the buffer are
// discarded. When reversed is true the row is being scanned right-to-left
// and tap x-offsets are mirrored.
func (k Kernel) Distribute(work *raster.Buffer, x, y, c int, residual float64, reversed bool) {
	for _, t := range k.Taps {
		dx := t.DX
		if reversed {
			dx = -dx
		}
		tx, ty := x+dx, y+t.DY
		if !work.In(tx, ty) {
			continue
		}
		work.Add(tx, ty, c, residual*t.Weight/k.Divisor)
	}
}

// Stock error-diffusion kernels. Weights are the classic published integer
// tables; the divisor is the weight sum.
var (
	FloydSteinberg = Kernel{
		Name: "floyd-steinberg",
		Taps: []Tap{
			{1, 0, 7},
			{-1, 1, 3}, {0, 1, 5}, {1, 1, 1},
		},
		Divisor: 16,
	}

	// Atkinson deliberately diffuses only 6/8 of the error, which lifts
	// highlight and shadow contrast at the cost of tone accuracy.
	Atkinson = Kernel{
		Name: "atkinson",
		Taps: []Tap{
			{1, 0, 1}, {2, 0, 1},
			{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
			{0, 2, 1},
		},
		Divisor: 8,
	}

	JarvisJudiceNinke = Kernel{
		Name: "jarvis-judice-ninke",
		Taps: []Tap{
			{1, 0, 7}, {2, 0, 5},
			{-2, 1, 3}, {-1, 1, 5}, {0, 1, 7}, {1, 1, 5}, {2, 1, 3},
			{-2, 2, 1}, {-1, 2, 3}, {0, 2, 5}, {1, 2, 3}, {2, 2, 1},
		},
		Divisor: 48,
	}

	Stucki = Kernel{
		Name: "stucki",
		Taps: []Tap{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
			{-2, 2, 1}, {-1, 2, 2}, {0, 2, 4}, {1, 2, 2}, {2, 2, 1},
		},
		Divisor: 42,
	}

	Burkes = Kernel{
		Name: "burkes",
		Taps: []Tap{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
		},
		Divisor: 32,
	}

	Sierra = Kernel{
		Name: "sierra",
		Taps: []Tap{
			{1, 0, 5}, {2, 0, 3},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 5}, {1, 1, 4}, {2, 1, 2},
			{-1, 2, 2}, {0, 2, 3}, {1, 2, 2},
		},
		Divisor: 32,
	}

	SierraTwoRow = Kernel{
		Name: "sierra-two-row",
		Taps: []Tap{
			{1, 0, 4}, {2, 0, 3},
			{-2, 1, 1}, {-1, 1, 2}, {0, 1, 3}, {1, 1, 2}, {2, 1, 1},
		},
		Divisor: 16,
	}

	SierraLite = Kernel{
		Name: "sierra-lite",
		Taps: []Tap{
			{1, 0, 2},
			{-1, 1, 1}, {0, 1, 1},
		},
		Divisor: 4,
	}
)
