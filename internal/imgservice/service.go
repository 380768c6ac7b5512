// Package imgservice defines the pluggable image transform capability and
// its two built-in implementations. Exactly one service is active per
// process, selected by configuration at startup; the selected instance is
// threaded explicitly through the pipeline entry points.
package imgservice

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

var (
	ErrRemoteDimensionsRequired = errors.New("width and height are required for remote images")
	ErrRemoteHeightRequired     = errors.New("height is required for remote images")
	ErrRemoteWidthRequired      = errors.New("width is required for remote images")
)

// Service is the transform capability. Any conforming implementation is
// substitutable; the pipeline never depends on which one is active.
type Service interface {
	// URL derives the request or output URL for a transform without doing
	// any pixel work.
	URL(t imgtypes.ImageTransform, cfg imgtypes.ImageConfig) (string, error)

	// ParseURL is the responder-side inverse of URL. It reconstructs the
	// transform a request URL encodes, or reports false when the URL does
	// not address a transformable image.
	ParseURL(u *url.URL, cfg imgtypes.ImageConfig) (imgtypes.ImageTransform, bool)

	// Transform produces output bytes for the transform. Services that
	// never transform locally return the input unchanged.
	Transform(data []byte, t imgtypes.ImageTransform) (imgtypes.TransformResult, error)

	// HTMLAttributes returns attributes to splice onto the rendered image
	// tag. Custom services may add arbitrary attributes.
	HTMLAttributes(t imgtypes.ImageTransform, cfg imgtypes.ImageConfig) map[string]string
}

// ValidateTransform enforces the remote-image dimension invariant shared by
// every built-in service: remote images are never probed, so their
// dimensions must be explicit. These are authoring errors; callers log them
// and drop the offending image from output rather than crash.
func ValidateTransform(t imgtypes.ImageTransform) error {
	if !t.IsRemote() {
		return nil
	}
	switch {
	case t.Width == 0 && t.Height == 0:
		return ErrRemoteDimensionsRequired
	case t.Height == 0:
		return ErrRemoteHeightRequired
	case t.Width == 0:
		return ErrRemoteWidthRequired
	}
	return nil
}

// defaultHTMLAttributes are the baseline attributes every built-in service
// puts on rendered tags, merged with the transform's passthrough extras.
func defaultHTMLAttributes(t imgtypes.ImageTransform) map[string]string {
	attrs := map[string]string{
		"loading":  "lazy",
		"decoding": "async",
	}
	for k, v := range t.Extra {
		attrs[k] = v
	}
	return attrs
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Service{}
)

func init() {
	registry["local"] = NewLocalService()
	registry["passthrough"] = NewPassthroughService()
}

// Register makes a custom service selectable by name. Call before the
// pipeline starts; services are never swapped at runtime.
func Register(name string, svc Service) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = svc
}

// ForConfig returns the service the configuration names. An empty name
// selects the local built-in.
func ForConfig(cfg imgtypes.ImageConfig) (Service, error) {
	name := cfg.Service
	if name == "" {
		name = "local"
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	svc, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown image service %q: register it before startup", name)
	}
	return svc, nil
}
