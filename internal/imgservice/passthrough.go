package imgservice

import (
	"net/url"

	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

// PassthroughService never transforms pixels. It hands back the source URL
// verbatim, for deployments where a CDN or remote image service does the
// actual work.
type PassthroughService struct{}

func NewPassthroughService() *PassthroughService {
	return &PassthroughService{}
}

func (s *PassthroughService) URL(t imgtypes.ImageTransform, cfg imgtypes.ImageConfig) (string, error) {
	if err := ValidateTransform(t); err != nil {
		return "", err
	}
	return t.Src, nil
}

func (s *PassthroughService) ParseURL(u *url.URL, cfg imgtypes.ImageConfig) (imgtypes.ImageTransform, bool) {
	return imgtypes.ImageTransform{}, false
}

func (s *PassthroughService) Transform(data []byte, t imgtypes.ImageTransform) (imgtypes.TransformResult, error) {
	return imgtypes.TransformResult{Data: data, Format: t.Format}, nil
}

func (s *PassthroughService) HTMLAttributes(t imgtypes.ImageTransform, cfg imgtypes.ImageConfig) map[string]string {
	return defaultHTMLAttributes(t)
}
