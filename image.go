package heimdall

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/3-lines-studio/heimdall/internal/core"
	"github.com/3-lines-studio/heimdall/internal/imgquery"
	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

// ErrLocalImageNotImported means a local path was passed as a plain string.
// Local images must arrive as metadata from the build-time rewrite so their
// dimensions are known.
var ErrLocalImageNotImported = errors.New("local images must be imported, not referenced by path")

// Image is the resolved result of GetImage: a final src plus the
// attributes to splice onto the rendered tag.
type Image struct {
	Src        string
	Width      int
	Height     int
	Format     imgtypes.OutputFormat
	Attributes map[string]string
}

// GetImage resolves a transform to a servable image without rendering
// anything. In dev the src points at the transform endpoint; in prod it is
// the emitted asset path recorded by the build.
func (a *App) GetImage(t ImageTransform) (Image, error) {
	if t.Metadata == nil && !core.IsRemoteURL(t.Src) {
		return Image{}, fmt.Errorf("%w: %q", ErrLocalImageNotImported, t.Src)
	}
	if t.Metadata != nil && t.Src == "" {
		t.Src = t.Metadata.Src
	}
	t = a.normalizeLocal(t)

	width, height := resolveDimensions(t)

	src, err := a.resolveSrc(t)
	if err != nil {
		return Image{}, err
	}

	format := t.Format
	if format == "" && !t.IsRemote() {
		format = imgtypes.DefaultOutputFormat
	}

	attrs := a.service.HTMLAttributes(t, a.cfg.Image)
	if width > 0 {
		attrs["width"] = strconv.Itoa(width)
	}
	if height > 0 {
		attrs["height"] = strconv.Itoa(height)
	}

	return Image{
		Src:        src,
		Width:      width,
		Height:     height,
		Format:     format,
		Attributes: attrs,
	}, nil
}

func (a *App) resolveSrc(t ImageTransform) (string, error) {
	if t.IsRemote() || a.isDev {
		return a.service.URL(t, a.cfg.Image)
	}

	// Prod local image: the build already emitted the bytes.
	lookup := t
	lookup.Src = siteSrc(t)
	if path, ok := a.manifest.LookupAsset(lookup); ok {
		return path, nil
	}

	// Fall back to the raw emitted source when this exact transform was
	// not pre-computed.
	if meta, ok := a.manifest.LookupSource(lookup.Src); ok && meta.Src != "" {
		fmt.Fprintf(os.Stderr, "heimdall: transform of %s not found in build manifest, serving original\n", lookup.Src)
		return meta.Src, nil
	}

	return a.service.URL(t, a.cfg.Image)
}

// normalizeLocal unwraps a local src that is already a dev endpoint URL
// (the form the watch-mode loader embeds) back to the underlying file
// path, so URL building does not wrap the endpoint twice.
func (a *App) normalizeLocal(t ImageTransform) ImageTransform {
	if t.IsRemote() {
		return t
	}
	endpoint := a.cfg.Image.ResolvedEndpoint()
	if !strings.HasPrefix(t.Src, endpoint+"?") {
		return t
	}

	u, err := url.Parse(t.Src)
	if err != nil {
		return t
	}
	decoded, orig, ok := imgquery.Decode(u.Query())
	if !ok {
		return t
	}

	t.Src = decoded.Src
	if orig != nil {
		meta := *t.Metadata
		meta.Src = decoded.Src
		meta.Width, meta.Height, meta.Format = orig.Width, orig.Height, orig.Format
		t.Metadata = &meta
	}
	return t
}

// siteSrc is the manifest key form of a transform source: the
// site-relative path, with any dev query baggage stripped.
func siteSrc(t ImageTransform) string {
	src := t.Src
	if i := strings.IndexByte(src, '?'); i >= 0 {
		src = src[:i]
	}
	return src
}

// resolveDimensions applies the sizing rules: explicit values win, missing
// values derive from the source aspect ratio, width governing height.
func resolveDimensions(t ImageTransform) (int, int) {
	if t.Metadata == nil || t.Metadata.Width == 0 || t.Metadata.Height == 0 {
		return t.Width, t.Height
	}

	aspect := float64(t.Metadata.Width) / float64(t.Metadata.Height)
	switch {
	case t.Width == 0 && t.Height == 0:
		return t.Metadata.Width, t.Metadata.Height
	case t.Width == 0:
		return int(math.Round(float64(t.Height) * aspect)), t.Height
	default:
		return t.Width, int(math.Round(float64(t.Width) / aspect))
	}
}

// ImgProps are the authoring-facing properties of the image component.
// Unknown properties pass through as HTML attributes via Attrs.
type ImgProps struct {
	// Src is either an *ImageMetadata from an imported local image or a
	// remote URL string.
	Src     any
	Alt     string
	Width   int
	Height  int
	Format  imgtypes.OutputFormat
	Quality string
	// AllowEmptyAlt marks an intentionally decorative image; without it a
	// missing alt is an authoring error.
	AllowEmptyAlt bool
	Attrs         map[string]string
}

// Img renders an <img> tag for the given properties. Authoring errors
// (missing alt, missing remote dimensions) are logged and produce no
// output; they never stop the server or the build.
func (a *App) Img(props ImgProps) template.HTML {
	if props.Alt == "" && !props.AllowEmptyAlt {
		fmt.Fprintf(os.Stderr, "heimdall: image %v is missing required alt text\n", props.Src)
		return ""
	}

	t := ImageTransform{
		Width:   props.Width,
		Height:  props.Height,
		Format:  props.Format,
		Quality: props.Quality,
		Extra:   props.Attrs,
	}

	switch src := props.Src.(type) {
	case *ImageMetadata:
		t.Metadata = src
		t.Src = src.Src
	case ImageMetadata:
		t.Metadata = &src
		t.Src = src.Src
	case string:
		t.Src = src
	default:
		fmt.Fprintf(os.Stderr, "heimdall: unsupported image src type %T\n", props.Src)
		return ""
	}

	img, err := a.GetImage(t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "heimdall: %v\n", err)
		return ""
	}

	return template.HTML(core.RenderImgTag(img.Src, props.Alt, img.Attributes))
}
