// Package imgmeta probes image headers for intrinsic dimensions and format.
// It never decodes pixel data: probing runs once per distinct image import,
// so only the header bytes are inspected.
package imgmeta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

// ErrUnsupportedFormat means the byte signature is not a recognized image.
// Callers treat this as "skip instrumentation for this file", never as a
// hard abort.
var ErrUnsupportedFormat = errors.New("unsupported or unrecognized image format")

// Extract determines intrinsic width, height and format from raw image
// bytes. The returned metadata has an empty Src; the caller owns it.
func Extract(data []byte) (imgtypes.ImageMetadata, error) {
	format, ok := DetectFormat(data)
	if !ok {
		return imgtypes.ImageMetadata{}, ErrUnsupportedFormat
	}

	var width, height int
	var err error

	switch format {
	case imgtypes.FormatAVIF, imgtypes.FormatHEIF:
		width, height, err = bmffDimensions(data)
	default:
		var cfg image.Config
		cfg, _, err = image.DecodeConfig(bytes.NewReader(data))
		width, height = cfg.Width, cfg.Height
	}
	if err != nil {
		return imgtypes.ImageMetadata{}, fmt.Errorf("read %s header: %w", format, err)
	}

	return imgtypes.ImageMetadata{
		Width:  width,
		Height: height,
		Format: format,
	}, nil
}

// DetectFormat sniffs the input format from magic bytes alone.
func DetectFormat(data []byte) (imgtypes.InputFormat, bool) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return imgtypes.FormatPNG, true
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return imgtypes.FormatJPEG, true
	case bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")):
		return imgtypes.FormatGIF, true
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return imgtypes.FormatWebP, true
	case bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")):
		return imgtypes.FormatTIFF, true
	}

	if len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp")) {
		brand := string(data[8:12])
		switch brand {
		case "avif", "avis":
			return imgtypes.FormatAVIF, true
		case "heic", "heix", "heim", "heis", "hevc", "hevx", "mif1", "msf1":
			return imgtypes.FormatHEIF, true
		}
	}

	return "", false
}

// bmffDimensions walks the ISO-BMFF box tree of an AVIF/HEIF file looking
// for the ispe (image spatial extents) property. Neither format has a
// DecodeConfig in the standard decoders.
func bmffDimensions(data []byte) (int, int, error) {
	w, h, found := scanBoxes(data, 0)
	if !found {
		return 0, 0, errors.New("no ispe box found")
	}
	return w, h, nil
}

// scanBoxes walks sibling boxes in data, recursing into known containers.
// depth guards against pathological nesting.
func scanBoxes(data []byte, depth int) (int, int, bool) {
	if depth > 8 {
		return 0, 0, false
	}

	for len(data) >= 8 {
		size := int(binary.BigEndian.Uint32(data[0:4]))
		boxType := string(data[4:8])
		headerLen := 8

		if size == 1 {
			// 64-bit largesize box.
			if len(data) < 16 {
				return 0, 0, false
			}
			size = int(binary.BigEndian.Uint64(data[8:16]))
			headerLen = 16
		} else if size == 0 {
			size = len(data)
		}
		if size < headerLen || size > len(data) {
			return 0, 0, false
		}

		body := data[headerLen:size]

		switch boxType {
		case "ispe":
			// Full box: 4 bytes version/flags, then width and height.
			if len(body) >= 12 {
				w := int(binary.BigEndian.Uint32(body[4:8]))
				h := int(binary.BigEndian.Uint32(body[8:12]))
				return w, h, true
			}
		case "meta":
			// Full box container: skip version/flags.
			if len(body) > 4 {
				if w, h, ok := scanBoxes(body[4:], depth+1); ok {
					return w, h, true
				}
			}
		case "iprp", "ipco":
			if w, h, ok := scanBoxes(body, depth+1); ok {
				return w, h, true
			}
		}

		data = data[size:]
	}

	return 0, 0, false
}
