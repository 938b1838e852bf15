package figstudio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
)

// Decoded pixel budget used when a caller passes no limit of its own.
const DefaultMaxImagePixels = 80_000_000

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeImage reads a PNG or JPEG upload. The header is checked against
// maxPixels before any pixel buffer is allocated, 0 means DefaultMaxImagePixels.
func DecodeImage(r io.Reader, maxPixels int) (image.Image, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxImagePixels
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %v: %w", err, ErrInvalidInput)
	}
	if err := checkPixels(cfg.Width, cfg.Height, maxPixels); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v: %w", err, ErrInvalidInput)
	}
	return img, nil
}

func checkPixels(width, height, maxPixels int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image is %dx%d: %w", width, height, ErrInvalidInput)
	}
	if maxPixels > 0 && int64(width)*int64(height) > int64(maxPixels) {
		return fmt.Errorf("image is %dx%d, more than %d pixels: %w", width, height, maxPixels, ErrInvalidInput)
	}
	return nil
}
