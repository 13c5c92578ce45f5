package dither

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownMode is returned when a requested mode name is not in the
// registry. Only the CLI boundary can trigger it; internally modes are a
// closed set.
var ErrUnknownMode = errors.New("dither: unknown mode")

// Mode identifies one dithering algorithm: which engine runs and which
// kernel or matrix it uses. The set is closed; there is no plugin mechanism.
type Mode int

const (
	ModeFloydSteinberg Mode = iota
	ModeAtkinson
	ModeJarvisJudiceNinke
	ModeStucki
	ModeBurkes
	ModeSierra
	ModeSierraLite
	ModeSierraTwoRow
	ModeBayer2x2
	ModeBayer4x4
	ModeBayer8x8
	ModeRandom
	// ModeThreshold is the no-diffusion baseline: plain nearest-level
	// quantization of every pixel.
	ModeThreshold
)

// engineKind selects which engine a mode dispatches to.
type engineKind int

const (
	engineDiffusion engineKind = iota
	engineOrdered
	engineRandom
	engineThreshold
)

// modeEntry binds a mode to its engine and algorithm data. Exactly one of
// kernel/matrix is meaningful depending on the engine kind.
type modeEntry struct {
	name   string
	engine engineKind
	kernel Kernel
	matrix Matrix
}

// registry is the immutable mode table, built once at process start.
var registry = map[Mode]modeEntry{
	ModeFloydSteinberg:    {name: "floyd-steinberg", engine: engineDiffusion, kernel: FloydSteinberg},
	ModeAtkinson:          {name: "atkinson", engine: engineDiffusion, kernel: Atkinson},
	ModeJarvisJudiceNinke: {name: "jarvis-judice-ninke", engine: engineDiffusion, kernel: JarvisJudiceNinke},
	ModeStucki:            {name: "stucki", engine: engineDiffusion, kernel: Stucki},
	ModeBurkes:            {name: "burkes", engine: engineDiffusion, kernel: Burkes},
	ModeSierra:            {name: "sierra", engine: engineDiffusion, kernel: Sierra},
	ModeSierraLite:        {name: "sierra-lite", engine: engineDiffusion, kernel: SierraLite},
	ModeSierraTwoRow:      {name: "sierra-two-row", engine: engineDiffusion, kernel: SierraTwoRow},
	ModeBayer2x2:          {name: "bayer-2x2", engine: engineOrdered, matrix: Bayer2x2},
	ModeBayer4x4:          {name: "bayer-4x4", engine: engineOrdered, matrix: Bayer4x4},
	ModeBayer8x8:          {name: "bayer-8x8", engine: engineOrdered, matrix: Bayer8x8},
	ModeRandom:            {name: "random", engine: engineRandom},
	ModeThreshold:         {name: "threshold", engine: engineThreshold},
}

// byName is the reverse index for ParseMode.
var byName = func() map[string]Mode {
	m := make(map[string]Mode, len(registry))
	for mode, entry := range registry {
		m[entry.name] = mode
	}
	return m
}()

// String returns the mode's registry name.
func (m Mode) String() string {
	if entry, ok := registry[m]; ok {
		return entry.name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := registry[m]
	return ok
}

// IsDiffusion reports whether m propagates quantization error to neighbors.
// Diffusion modes have a strict sequential data dependency and must run in
// a single traversal; they are not parallelizable within one channel.
func (m Mode) IsDiffusion() bool {
	entry, ok := registry[m]
	return ok && entry.engine == engineDiffusion
}

// Kernel returns the error-diffusion kernel for a diffusion mode.
func (m Mode) Kernel() (Kernel, bool) {
	entry, ok := registry[m]
	if !ok || entry.engine != engineDiffusion {
		return Kernel{}, false
	}
	return entry.kernel, true
}

// Serpentine reports the traversal policy the mode's kernel declares.
// Non-diffusion modes have no traversal order and report false.
func (m Mode) Serpentine() bool {
	entry, ok := registry[m]
	return ok && entry.engine == engineDiffusion && entry.kernel.Serpentine
}

// ParseMode resolves a mode name from the CLI or a preset file.
func ParseMode(name string) (Mode, error) {
	mode, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	return mode, nil
}

// ModeNames returns all registered mode names, sorted for stable help text.
func ModeNames() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
