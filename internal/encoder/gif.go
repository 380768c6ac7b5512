package encoder

import (
	"bytes"
	"image"
	"image/gif"
)

// GIFEncoder encodes images to GIF using Go's standard library.
// Animated inputs collapse to their decoded frame.
type GIFEncoder struct{}

func (e *GIFEncoder) Format() string    { return "gif" }
func (e *GIFEncoder) Extension() string { return "gif" }
func (e *GIFEncoder) Available() bool   { return true }

func (e *GIFEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
