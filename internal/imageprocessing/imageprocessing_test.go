package imageprocessing

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/rmitchellscott/inkwash/internal/dither"
)

func gradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8((x * 255) / (width - 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestToGrayscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})

	gray, ok := ToGrayscale(img).(*image.Gray)
	if !ok {
		t.Fatal("ToGrayscale did not return *image.Gray")
	}
	if gray.GrayAt(0, 0).Y != 255 || gray.GrayAt(1, 0).Y != 0 {
		t.Errorf("gray values = %d, %d; want 255, 0", gray.GrayAt(0, 0).Y, gray.GrayAt(1, 0).Y)
	}

	// Already-gray input passes through without copying.
	if got := ToGrayscale(gray); got != image.Image(gray) {
		t.Error("grayscale input was copied instead of passed through")
	}
}

func TestResize(t *testing.T) {
	src := gradientImage(100, 50)

	tests := []struct {
		name   string
		fit    FitMode
		width  int
		height int
	}{
		{name: "contain", fit: FitContain, width: 40, height: 40},
		{name: "cover", fit: FitCover, width: 40, height: 40},
		{name: "stretch", fit: FitStretch, width: 30, height: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resize(src, tt.width, tt.height, tt.fit)
			bounds := out.Bounds()
			if bounds.Dx() != tt.width || bounds.Dy() != tt.height {
				t.Errorf("resized to %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestResizeNoopOnMatchingDimensions(t *testing.T) {
	src := gradientImage(40, 20)
	if out := Resize(src, 40, 20, FitContain); out != image.Image(src) {
		t.Error("matching dimensions should return the source image unchanged")
	}
}

func TestProcess(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 32
	opts.Height = 16
	opts.Fit = FitCover

	out, err := Process(gradientImage(100, 50), opts)
	if err != nil {
		t.Fatal(err)
	}

	bounds := out.Bounds()
	if bounds.Dx() != 32 || bounds.Dy() != 16 {
		t.Fatalf("output is %dx%d, want 32x16", bounds.Dx(), bounds.Dy())
	}

	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("output is %T, want *image.Gray", out)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			if v := gray.GrayAt(x, y).Y; v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}
}

func TestProcessColor(t *testing.T) {
	opts := Options{
		Grayscale: false,
		Mode:      dither.ModeBayer4x4,
		Levels:    2,
	}
	out, err := Process(gradientImage(16, 8), opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out.(*image.RGBA); !ok {
		t.Fatalf("color output is %T, want *image.RGBA", out)
	}
}

func TestProcessNilImage(t *testing.T) {
	if _, err := Process(nil, DefaultOptions()); err == nil {
		t.Error("Process(nil) did not return an error")
	}
}

func TestGrayBitDepth(t *testing.T) {
	tests := []struct {
		levels int
		want   int
	}{
		{levels: 2, want: 1},
		{levels: 4, want: 2},
		{levels: 6, want: 4},
		{levels: 16, want: 4},
		{levels: 256, want: 8},
		{levels: 3, want: 0}, // 127.5 is not representable at any depth
	}
	for _, tt := range tests {
		if got := GrayBitDepth(tt.levels); got != tt.want {
			t.Errorf("GrayBitDepth(%d) = %d, want %d", tt.levels, got, tt.want)
		}
	}
}

// TestEncodeGrayPNGRoundTrip encodes through the low-bit-depth path and
// decodes with the stdlib PNG decoder, checking every pixel survives.
func TestEncodeGrayPNGRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		levels int
		depth  int
		width  int
	}{
		{name: "1-bit odd width", levels: 2, depth: 1, width: 5},
		{name: "2-bit", levels: 4, depth: 2, width: 8},
		{name: "4-bit", levels: 16, depth: 4, width: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			palette, err := dither.Palette(tt.levels)
			if err != nil {
				t.Fatal(err)
			}
			paletted := image.NewPaletted(image.Rect(0, 0, tt.width, 4), palette)
			for y := 0; y < 4; y++ {
				for x := 0; x < tt.width; x++ {
					paletted.SetColorIndex(x, y, uint8((x+y)%tt.levels))
				}
			}

			data, err := EncodeGrayPNG(paletted, tt.depth)
			if err != nil {
				t.Fatal(err)
			}

			decoded, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("stdlib decoder rejected output: %v", err)
			}
			for y := 0; y < 4; y++ {
				for x := 0; x < tt.width; x++ {
					want := color.GrayModel.Convert(paletted.At(x, y)).(color.Gray).Y
					got := color.GrayModel.Convert(decoded.At(x, y)).(color.Gray).Y
					if got != want {
						t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestEncodeGrayPNGRejectsBadInput(t *testing.T) {
	palette, err := dither.Palette(2)
	if err != nil {
		t.Fatal(err)
	}
	paletted := image.NewPaletted(image.Rect(0, 0, 2, 2), palette)

	if _, err := EncodeGrayPNG(nil, 1); err == nil {
		t.Error("nil image accepted")
	}
	if _, err := EncodeGrayPNG(paletted, 3); err == nil {
		t.Error("bit depth 3 accepted")
	}

	four, err := dither.Palette(4)
	if err != nil {
		t.Fatal(err)
	}
	tooMany := image.NewPaletted(image.Rect(0, 0, 2, 2), four)
	if _, err := EncodeGrayPNG(tooMany, 1); err == nil {
		t.Error("4 levels at bit depth 1 accepted")
	}
}
