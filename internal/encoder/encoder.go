package encoder

import (
	"image"
)

// Encoder encodes an image to one output format.
type Encoder interface {
	// Format returns the output format name (e.g. "webp", "jpeg").
	Format() string

	// Encode converts the image to bytes at the given quality (0-100).
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use. External
	// encoders (avifenc) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}
