package dither

import (
	"fmt"

	"github.com/rmitchellscott/inkwash/internal/raster"
)

// Matrix is an ordered-dither threshold matrix. Thresholds are normalized to
// the 0-255 sample range and tiled across the image with wraparound: pixel
// (x, y) uses the threshold at (x mod width, y mod height).
type Matrix struct {
	Name       string
	Thresholds [][]float64
}

// Validate rejects empty or ragged matrices.
func (m Matrix) Validate() error {
	if len(m.Thresholds) == 0 || len(m.Thresholds[0]) == 0 {
		return fmt.Errorf("%w: matrix %q is empty", ErrInvalidParameter, m.Name)
	}
	width := len(m.Thresholds[0])
	for _, row := range m.Thresholds {
		if len(row) != width {
			return fmt.Errorf("%w: matrix %q has ragged rows", ErrInvalidParameter, m.Name)
		}
	}
	return nil
}

// ThresholdAt returns the tiled threshold for pixel (x, y).
func (m Matrix) ThresholdAt(x, y int) float64 {
	return m.Thresholds[y%len(m.Thresholds)][x%len(m.Thresholds[0])]
}

// Midpoint is the center of the sample range; ordered dithering perturbs
// each sample by (threshold - Midpoint) before quantizing, so the matrix
// texture modulates the quantizer instead of replacing it.
const Midpoint = (raster.SampleMax - raster.SampleMin) / 2

// bayerMatrix normalizes an index-valued Bayer pattern (entries 0..n-1,
// where n is the cell count) into sample-range thresholds. The half-cell
// offset centers the thresholds so a flat mid-gray tile comes out half on.
func bayerMatrix(name string, pattern [][]int) Matrix {
	n := len(pattern) * len(pattern[0])
	thresholds := make([][]float64, len(pattern))
	for y, row := range pattern {
		thresholds[y] = make([]float64, len(row))
		for x, v := range row {
			thresholds[y][x] = (float64(v) + 0.5) * (raster.SampleMax - raster.SampleMin) / float64(n)
		}
	}
	return Matrix{Name: name, Thresholds: thresholds}
}

// Stock Bayer matrices. The index patterns are the standard recursive
// construction; 8x8 matches the table used by classic ordered-dither
// implementations.
var (
	Bayer2x2 = bayerMatrix("bayer-2x2", [][]int{
		{0, 2},
		{3, 1},
	})

	Bayer4x4 = bayerMatrix("bayer-4x4", [][]int{
		{0, 8, 2, 10},
		{12, 4, 14, 6},
		{3, 11, 1, 9},
		{15, 7, 13, 5},
	})

	Bayer8x8 = bayerMatrix("bayer-8x8", [][]int{
		{0, 32, 8, 40, 2, 34, 10, 42},
		{48, 16, 56, 24, 50, 18, 58, 26},
		{12, 44, 4, 36, 14, 46, 6, 38},
		{60, 28, 52, 20, 62, 30, 54, 22},
		{3, 35, 11, 43, 1, 33, 9, 41},
		{51, 19, 59, 27, 49, 17, 57, 25},
		{15, 47, 7, 39, 13, 45, 5, 37},
		{63, 31, 55, 23, 61, 29, 53, 21},
	})
)
