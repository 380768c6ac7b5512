package usecase

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/3-lines-studio/heimdall/internal/core"
	"github.com/3-lines-studio/heimdall/internal/imgmeta"
	"github.com/3-lines-studio/heimdall/internal/imgquery"
	"github.com/3-lines-studio/heimdall/internal/imgservice"
	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

// ImageServeResult is the decision for one dev image request. PassThrough
// means the request is not ours and belongs to the next handler.
type ImageServeResult struct {
	PassThrough bool
	ContentType string
	Data        []byte
}

// ServeImageService computes dev responder responses. Each request is a
// pure function of the URL and the file's bytes; concurrent requests for
// the same source never interfere.
type ServeImageService struct {
	fs  FileSystem
	svc imgservice.Service
	cfg imgtypes.ImageConfig
}

func NewServeImageService(fs FileSystem, svc imgservice.Service, cfg imgtypes.ImageConfig) *ServeImageService {
	return &ServeImageService{
		fs:  fs,
		svc: svc,
		cfg: cfg,
	}
}

func (s *ServeImageService) Serve(u *url.URL) (ImageServeResult, error) {
	// An unrelated path collision on the endpoint is not a 404: the next
	// handler decides.
	href := u.Query().Get(imgquery.ParamHref)
	if href == "" {
		return ImageServeResult{PassThrough: true}, nil
	}

	root := s.cfg.Root
	if root == "" {
		root = "."
	}
	data, err := s.fs.ReadFile(filepath.Join(root, filepath.FromSlash(href)))
	if err != nil {
		return ImageServeResult{PassThrough: true}, nil
	}

	// Recover metadata from the sidecar query parameters when the loader
	// already probed this file; re-probe otherwise.
	transform, orig, ok := imgquery.Decode(u.Query())
	if !ok {
		return ImageServeResult{PassThrough: true}, nil
	}
	if orig == nil {
		meta, err := imgmeta.Extract(data)
		if err != nil {
			return ImageServeResult{PassThrough: true}, nil
		}
		meta.Src = href
		transform.Metadata = &meta
	}

	parsed, ok := s.svc.ParseURL(u, s.cfg)
	if !ok || isIdentity(parsed) {
		// No transform requested: original bytes, typed by source format.
		return ImageServeResult{
			ContentType: core.FormatContentType(string(transform.Metadata.Format), href),
			Data:        data,
		}, nil
	}
	parsed.Metadata = transform.Metadata

	result, err := s.svc.Transform(data, parsed)
	if err != nil {
		return ImageServeResult{}, fmt.Errorf("transform %s: %w", href, err)
	}

	return ImageServeResult{
		ContentType: core.FormatContentType(string(result.Format), href),
		Data:        result.Data,
	}, nil
}

// isIdentity reports a request that names a file but no transform work.
func isIdentity(t imgtypes.ImageTransform) bool {
	return t.Width == 0 && t.Height == 0 && t.Format == "" && t.Quality == ""
}
