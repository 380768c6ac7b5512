// Package imgquery serializes image transforms to and from URL query
// strings. The encoding is stable and order-independent: two semantically
// equal transforms always encode to the same string.
package imgquery

import (
	"net/url"
	"strconv"

	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

// Query parameter names. The orig* parameters are a sidecar for original
// source dimensions, carried on watch-mode module URLs so the dev responder
// can skip re-probing a file it has already seen.
const (
	ParamHref    = "href"
	ParamWidth   = "w"
	ParamHeight  = "h"
	ParamFormat  = "f"
	ParamQuality = "q"

	ParamOrigWidth  = "origWidth"
	ParamOrigHeight = "origHeight"
	ParamOrigFormat = "origFormat"
)

// Encode serializes a transform, plus optional original-source metadata,
// into a query string. Zero-valued fields are omitted. url.Values sorts
// keys, which keeps the encoding independent of field assignment order.
func Encode(t imgtypes.ImageTransform, orig *imgtypes.ImageMetadata) string {
	v := url.Values{}
	v.Set(ParamHref, t.Src)
	if t.Width > 0 {
		v.Set(ParamWidth, strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		v.Set(ParamHeight, strconv.Itoa(t.Height))
	}
	if t.Format != "" {
		v.Set(ParamFormat, string(t.Format))
	}
	if t.Quality != "" {
		v.Set(ParamQuality, t.Quality)
	}
	if orig != nil {
		v.Set(ParamOrigWidth, strconv.Itoa(orig.Width))
		v.Set(ParamOrigHeight, strconv.Itoa(orig.Height))
		v.Set(ParamOrigFormat, string(orig.Format))
	}
	return v.Encode()
}

// Decode reconstructs a transform from query parameters. Dimensions come
// back as integers, not strings. Unknown keys are ignored. Returns false
// when the query does not address a transformable image (no href).
func Decode(v url.Values) (imgtypes.ImageTransform, *imgtypes.ImageMetadata, bool) {
	href := v.Get(ParamHref)
	if href == "" {
		return imgtypes.ImageTransform{}, nil, false
	}

	t := imgtypes.ImageTransform{
		Src:     href,
		Width:   intParam(v, ParamWidth),
		Height:  intParam(v, ParamHeight),
		Format:  imgtypes.OutputFormat(v.Get(ParamFormat)),
		Quality: v.Get(ParamQuality),
	}

	var orig *imgtypes.ImageMetadata
	if v.Get(ParamOrigWidth) != "" && v.Get(ParamOrigHeight) != "" {
		orig = &imgtypes.ImageMetadata{
			Src:    href,
			Width:  intParam(v, ParamOrigWidth),
			Height: intParam(v, ParamOrigHeight),
			Format: imgtypes.InputFormat(v.Get(ParamOrigFormat)),
		}
		t.Metadata = orig
	}

	return t, orig, true
}

func intParam(v url.Values, name string) int {
	n, err := strconv.Atoi(v.Get(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
