package imgservice

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff"

	"github.com/3-lines-studio/heimdall/internal/core"
	"github.com/3-lines-studio/heimdall/internal/encoder"
	"github.com/3-lines-studio/heimdall/internal/imgquery"
	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

// LocalService transforms images in-process: Lanczos resize plus re-encode
// through the encoder registry. Remote URLs are returned verbatim and never
// transformed.
type LocalService struct {
	encoders *encoder.Registry
}

func NewLocalService() *LocalService {
	return &LocalService{
		encoders: encoder.NewRegistry(),
	}
}

func (s *LocalService) URL(t imgtypes.ImageTransform, cfg imgtypes.ImageConfig) (string, error) {
	if err := ValidateTransform(t); err != nil {
		return "", err
	}
	if t.IsRemote() {
		return t.Src, nil
	}
	return cfg.ResolvedEndpoint() + "?" + imgquery.Encode(t, t.Metadata), nil
}

func (s *LocalService) ParseURL(u *url.URL, cfg imgtypes.ImageConfig) (imgtypes.ImageTransform, bool) {
	if core.NormalizePath(u.Path) != cfg.ResolvedEndpoint() {
		return imgtypes.ImageTransform{}, false
	}
	t, _, ok := imgquery.Decode(u.Query())
	return t, ok
}

// Transform resizes and re-encodes. Resize policy: no dimensions means
// pass-through re-encode; height alone resizes by height; otherwise width
// governs and height derives from the aspect ratio, even when both are set.
func (s *LocalService) Transform(data []byte, t imgtypes.ImageTransform) (imgtypes.TransformResult, error) {
	img, err := decodeImage(data)
	if err != nil {
		return imgtypes.TransformResult{}, fmt.Errorf("decode %s: %w", t.Src, err)
	}

	switch {
	case t.Width == 0 && t.Height == 0:
		// Pass-through re-encode only.
	case t.Width == 0:
		img = imaging.Resize(img, 0, t.Height, imaging.Lanczos)
	default:
		img = imaging.Resize(img, t.Width, 0, imaging.Lanczos)
	}

	format := t.Format
	if format == "" {
		format = imgtypes.DefaultOutputFormat
	}

	quality, err := core.ResolveQuality(t.Quality)
	if err != nil {
		return imgtypes.TransformResult{}, err
	}

	enc := s.encoders.Get(string(format))
	if enc == nil {
		return imgtypes.TransformResult{}, fmt.Errorf("no encoder available for format %q (%s)", format, s.encoders)
	}

	out, err := enc.Encode(img, quality)
	if err != nil {
		return imgtypes.TransformResult{}, fmt.Errorf("encode %s as %s: %w", t.Src, format, err)
	}

	return imgtypes.TransformResult{
		Data:   out,
		Format: imgtypes.OutputFormat(enc.Format()),
	}, nil
}

func (s *LocalService) HTMLAttributes(t imgtypes.ImageTransform, cfg imgtypes.ImageConfig) map[string]string {
	return defaultHTMLAttributes(t)
}

// decodeImage decodes via the registered stdlib and x/image decoders, with
// an explicit WebP fallback for encoders registered without DecodeConfig
// counterparts.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	if webpImg, webpErr := webp.Decode(bytes.NewReader(data)); webpErr == nil {
		return webpImg, nil
	}

	return nil, err
}
