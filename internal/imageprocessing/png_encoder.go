package imageprocessing

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
)

// GrayBitDepth returns the smallest PNG grayscale bit depth (1, 2, 4 or 8)
// that represents `levels` evenly spaced tones exactly, or 0 when no depth
// can. A depth d works when its maximum code 2^d-1 is a whole multiple of
// levels-1, so palette index i encodes as i*(2^d-1)/(levels-1).
func GrayBitDepth(levels int) int {
	if levels < 2 {
		return 0
	}
	for _, depth := range []int{1, 2, 4, 8} {
		maxCode := 1<<depth - 1
		if levels-1 <= maxCode && maxCode%(levels-1) == 0 {
			return depth
		}
	}
	return 0
}

// EncodeGrayPNG encodes a paletted grayscale image as a color-type-0 PNG at
// the given bit depth. The stdlib encoder always writes 8-bit palette PNGs;
// low-bit-depth panels and print spoolers want true 1/2/4-bit grayscale
// files, the same trick the PNG output of ImageMagick uses.
func EncodeGrayPNG(paletted *image.Paletted, bitDepth int) ([]byte, error) {
	if paletted == nil {
		return nil, fmt.Errorf("image must not be nil")
	}
	if bitDepth != 1 && bitDepth != 2 && bitDepth != 4 && bitDepth != 8 {
		return nil, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
	levels := len(paletted.Palette)
	if levels < 2 || GrayBitDepth(levels) == 0 || levels-1 > 1<<bitDepth-1 {
		return nil, fmt.Errorf("cannot encode %d palette levels at bit depth %d", levels, bitDepth)
	}

	bounds := paletted.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var buf bytes.Buffer

	// PNG signature
	buf.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})

	writeChunk(&buf, "IHDR", func(data *bytes.Buffer) {
		binary.Write(data, binary.BigEndian, uint32(width))
		binary.Write(data, binary.BigEndian, uint32(height))
		data.WriteByte(uint8(bitDepth))
		data.WriteByte(0) // Color type: grayscale
		data.WriteByte(0) // Compression method
		data.WriteByte(0) // Filter method
		data.WriteByte(0) // Interlace method
	})

	imageData := packGrayRows(paletted, bitDepth, levels)

	compressed, err := zlibCompress(imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to compress image data: %w", err)
	}
	writeChunk(&buf, "IDAT", func(data *bytes.Buffer) {
		data.Write(compressed)
	})

	writeChunk(&buf, "IEND", func(data *bytes.Buffer) {})

	return buf.Bytes(), nil
}

// packGrayRows packs palette indices into grayscale scanlines at the target
// bit depth, one filter byte (None) per row. Palette index i maps to gray
// code i*(2^depth-1)/(levels-1); for a full ramp the index is the code.
func packGrayRows(paletted *image.Paletted, bitDepth, levels int) []byte {
	bounds := paletted.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	scale := ((1 << bitDepth) - 1) / (levels - 1)
	pixelsPerByte := 8 / bitDepth
	bytesPerRow := (width + pixelsPerByte - 1) / pixelsPerByte

	data := make([]byte, height*(bytesPerRow+1))
	for y := 0; y < height; y++ {
		rowStart := y * (bytesPerRow + 1)
		data[rowStart] = 0 // Filter type: None

		for x := 0; x < width; x++ {
			index := paletted.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)
			code := uint8(int(index) * scale)

			byteIndex := rowStart + 1 + x/pixelsPerByte
			bitOffset := (pixelsPerByte - 1 - (x % pixelsPerByte)) * bitDepth
			data[byteIndex] |= code << bitOffset
		}
	}
	return data
}

// writeChunk writes a PNG chunk with proper CRC
func writeChunk(buf *bytes.Buffer, chunkType string, dataWriter func(*bytes.Buffer)) {
	var chunkData bytes.Buffer
	dataWriter(&chunkData)

	data := chunkData.Bytes()

	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(chunkType)
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)
	binary.Write(buf, binary.BigEndian, crc.Sum32())
}

// zlibCompress compresses data using proper zlib compression
func zlibCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	writer, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib writer: %w", err)
	}
	if _, err = writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}
	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zlib writer: %w", err)
	}
	return buf.Bytes(), nil
}
