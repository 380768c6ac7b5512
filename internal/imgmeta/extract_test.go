package imgmeta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func encodeGIF(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewPaletted(image.Rect(0, 0, w, h), []color.Color{color.Black, color.White})
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("gif.Encode() error = %v", err)
	}
	return buf.Bytes()
}

// box assembles one ISO-BMFF box with the given type and body.
func box(boxType string, body []byte) []byte {
	out := make([]byte, 8, 8+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(body)))
	copy(out[4:8], boxType)
	return append(out, body...)
}

// avifHeader builds a minimal AVIF file: ftyp plus a meta/iprp/ipco/ispe
// chain carrying the given dimensions.
func avifHeader(w, h uint32) []byte {
	ispeBody := make([]byte, 12)
	binary.BigEndian.PutUint32(ispeBody[4:8], w)
	binary.BigEndian.PutUint32(ispeBody[8:12], h)

	ipco := box("ipco", box("ispe", ispeBody))
	iprp := box("iprp", ipco)
	meta := box("meta", append([]byte{0, 0, 0, 0}, iprp...))
	ftyp := box("ftyp", []byte("avifmif1"))
	return append(ftyp, meta...)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   imgtypes.InputFormat
		wantOK bool
	}{
		{"png", []byte("\x89PNG\r\n\x1a\nrest"), imgtypes.FormatPNG, true},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, imgtypes.FormatJPEG, true},
		{"gif87a", []byte("GIF87a...."), imgtypes.FormatGIF, true},
		{"gif89a", []byte("GIF89a...."), imgtypes.FormatGIF, true},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), imgtypes.FormatWebP, true},
		{"tiff little endian", []byte("II*\x00data"), imgtypes.FormatTIFF, true},
		{"tiff big endian", []byte("MM\x00*data"), imgtypes.FormatTIFF, true},
		{"avif", box("ftyp", []byte("avifmif1")), imgtypes.FormatAVIF, true},
		{"avif sequence", box("ftyp", []byte("avismif1")), imgtypes.FormatAVIF, true},
		{"heic", box("ftyp", []byte("heicmif1")), imgtypes.FormatHEIF, true},
		{"mif1", box("ftyp", []byte("mif1heic")), imgtypes.FormatHEIF, true},
		{"svg is not sniffable", []byte("<svg xmlns="), "", false},
		{"empty", nil, "", false},
		{"riff without webp", []byte("RIFF\x00\x00\x00\x00WAVE"), "", false},
		{"unknown ftyp brand", box("ftyp", []byte("mp42mp42")), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectFormat(tt.data)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DetectFormat() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		wantFormat imgtypes.InputFormat
		wantW      int
		wantH      int
	}{
		{"png", encodePNG(t, 640, 480), imgtypes.FormatPNG, 640, 480},
		{"jpeg", encodeJPEG(t, 120, 80), imgtypes.FormatJPEG, 120, 80},
		{"gif", encodeGIF(t, 32, 16), imgtypes.FormatGIF, 32, 16},
		{"avif", avifHeader(1920, 1080), imgtypes.FormatAVIF, 1920, 1080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := Extract(tt.data)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if meta.Format != tt.wantFormat {
				t.Errorf("Extract() format = %q, want %q", meta.Format, tt.wantFormat)
			}
			if meta.Width != tt.wantW || meta.Height != tt.wantH {
				t.Errorf("Extract() dims = (%d, %d), want (%d, %d)", meta.Width, meta.Height, tt.wantW, tt.wantH)
			}
			if meta.Src != "" {
				t.Errorf("Extract() src = %q, want empty", meta.Src)
			}
		})
	}

	t.Run("unsupported bytes", func(t *testing.T) {
		_, err := Extract([]byte("not an image at all"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Extract() error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("truncated png header fails", func(t *testing.T) {
		_, err := Extract([]byte("\x89PNG\r\n\x1a\n"))
		if err == nil {
			t.Error("Extract() error = nil for truncated file, want error")
		}
	})

	t.Run("avif without ispe fails", func(t *testing.T) {
		data := append(box("ftyp", []byte("avifmif1")), box("mdat", []byte("x"))...)
		_, err := Extract(data)
		if err == nil {
			t.Error("Extract() error = nil for avif without ispe, want error")
		}
	})
}
