package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewBufferDimensions(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		channels int
		wantErr  bool
	}{
		{name: "valid gray", width: 4, height: 3, channels: ChannelsGray},
		{name: "valid rgb", width: 4, height: 3, channels: ChannelsRGB},
		{name: "zero width", width: 0, height: 3, channels: ChannelsGray, wantErr: true},
		{name: "negative height", width: 4, height: -1, channels: ChannelsGray, wantErr: true},
		{name: "two channels unsupported", width: 4, height: 3, channels: 2, wantErr: true},
		{name: "zero channels", width: 4, height: 3, channels: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewBuffer(tt.width, tt.height, tt.channels)
			if tt.wantErr {
				if !errors.Is(err, ErrDimensionMismatch) {
					t.Errorf("NewBuffer error = %v, want ErrDimensionMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBuffer returned error: %v", err)
			}
			if buf.Width() != tt.width || buf.Height() != tt.height || buf.Channels() != tt.channels {
				t.Errorf("buffer shape %dx%dx%d, want %dx%dx%d",
					buf.Width(), buf.Height(), buf.Channels(), tt.width, tt.height, tt.channels)
			}
		})
	}
}

func TestBufferAccessors(t *testing.T) {
	buf, err := NewBuffer(3, 2, ChannelsRGB)
	if err != nil {
		t.Fatal(err)
	}

	buf.Set(2, 1, 1, 200)
	if got := buf.At(2, 1, 1); got != 200 {
		t.Errorf("At(2,1,1) = %g, want 200", got)
	}

	buf.Add(2, 1, 1, -300)
	if got := buf.At(2, 1, 1); got != -100 {
		t.Errorf("Add result = %g, want -100 (no clamping)", got)
	}

	if !buf.In(0, 0) || !buf.In(2, 1) {
		t.Error("In() rejected in-bounds coordinates")
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
		if buf.In(p[0], p[1]) {
			t.Errorf("In(%d, %d) = true, want false", p[0], p[1])
		}
	}
}

func TestBufferClone(t *testing.T) {
	buf, err := NewBuffer(2, 2, ChannelsGray)
	if err != nil {
		t.Fatal(err)
	}
	buf.Set(1, 1, 0, 42)

	dup := buf.Clone()
	dup.Set(1, 1, 0, 99)

	if got := buf.At(1, 1, 0); got != 42 {
		t.Errorf("mutating the clone changed the original: %g", got)
	}
	if got := dup.At(1, 1, 0); got != 99 {
		t.Errorf("clone did not take the write: %g", got)
	}
}

func TestFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 10})
	img.SetGray(1, 1, color.Gray{Y: 250})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Channels() != ChannelsGray {
		t.Fatalf("channels = %d, want %d", buf.Channels(), ChannelsGray)
	}
	if got := buf.At(0, 0, 0); got != 10 {
		t.Errorf("At(0,0,0) = %g, want 10", got)
	}
	if got := buf.At(1, 1, 0); got != 250 {
		t.Errorf("At(1,1,0) = %g, want 250", got)
	}
}

func TestFromImageRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Channels() != ChannelsRGB {
		t.Fatalf("channels = %d, want %d", buf.Channels(), ChannelsRGB)
	}
	want := [][3]float64{{10, 20, 30}, {200, 100, 50}}
	for x, px := range want {
		for c, v := range px {
			if got := buf.At(x, 0, c); got != v {
				t.Errorf("At(%d,0,%d) = %g, want %g", x, c, got, v)
			}
		}
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	// Subimages can have non-zero Min; the buffer must normalize to (0,0).
	img := image.NewGray(image.Rect(5, 7, 8, 9))
	img.SetGray(5, 7, color.Gray{Y: 99})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Width() != 3 || buf.Height() != 2 {
		t.Fatalf("shape = %dx%d, want 3x2", buf.Width(), buf.Height())
	}
	if got := buf.At(0, 0, 0); got != 99 {
		t.Errorf("At(0,0,0) = %g, want 99", got)
	}
}

func TestFromImageNil(t *testing.T) {
	if _, err := FromImage(nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("FromImage(nil) error = %v, want ErrDimensionMismatch", err)
	}
}

func TestToImageRoundTrip(t *testing.T) {
	buf, err := NewBuffer(2, 1, ChannelsGray)
	if err != nil {
		t.Fatal(err)
	}
	buf.Set(0, 0, 0, 0)
	buf.Set(1, 0, 0, 255)

	img := buf.ToImage()
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("ToImage() returned %T, want *image.Gray for a 1-channel buffer", img)
	}
	if gray.GrayAt(0, 0).Y != 0 || gray.GrayAt(1, 0).Y != 255 {
		t.Errorf("round trip lost values: %d, %d", gray.GrayAt(0, 0).Y, gray.GrayAt(1, 0).Y)
	}
}

func TestToImageClampsOutOfRange(t *testing.T) {
	buf, err := NewBuffer(2, 1, ChannelsGray)
	if err != nil {
		t.Fatal(err)
	}
	buf.Set(0, 0, 0, -40)
	buf.Set(1, 0, 0, 300)

	gray := buf.ToGray()
	if gray.GrayAt(0, 0).Y != 0 {
		t.Errorf("negative sample encoded as %d, want 0", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 0).Y != 255 {
		t.Errorf("over-range sample encoded as %d, want 255", gray.GrayAt(1, 0).Y)
	}
}

func TestToPaletted(t *testing.T) {
	buf, err := NewBuffer(2, 1, ChannelsGray)
	if err != nil {
		t.Fatal(err)
	}
	buf.Set(0, 0, 0, 0)
	buf.Set(1, 0, 0, 255)

	palette := color.Palette{color.Gray{Y: 0}, color.Gray{Y: 255}}
	paletted := buf.ToPaletted(palette)
	if paletted.ColorIndexAt(0, 0) != 0 {
		t.Errorf("index at (0,0) = %d, want 0", paletted.ColorIndexAt(0, 0))
	}
	if paletted.ColorIndexAt(1, 0) != 1 {
		t.Errorf("index at (1,0) = %d, want 1", paletted.ColorIndexAt(1, 0))
	}
}
