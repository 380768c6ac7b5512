package imgtypes

// InputFormat is a source image format recognized by header probing.
type InputFormat string

const (
	FormatPNG  InputFormat = "png"
	FormatJPEG InputFormat = "jpeg"
	FormatGIF  InputFormat = "gif"
	FormatWebP InputFormat = "webp"
	FormatAVIF InputFormat = "avif"
	FormatTIFF InputFormat = "tiff"
	FormatHEIF InputFormat = "heif"
)

// OutputFormat is a format the transform step can encode to.
type OutputFormat string

const (
	OutputPNG  OutputFormat = "png"
	OutputJPEG OutputFormat = "jpeg"
	OutputGIF  OutputFormat = "gif"
	OutputWebP OutputFormat = "webp"
	OutputAVIF OutputFormat = "avif"
)

// DefaultOutputFormat is used when a transform does not request a format.
const DefaultOutputFormat = OutputWebP

// ImageMetadata describes a local image discovered at build or request time.
// Src starts as a placeholder token (one-shot builds) or a fully resolved
// dev endpoint URL (watch builds) and is rewritten at most once.
type ImageMetadata struct {
	Src    string      `json:"src"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Format InputFormat `json:"format"`
}

// ImageTransform is one requested transformation of one image use site.
// For local images Metadata is set and Src mirrors Metadata.Src. For remote
// images Metadata is nil and Src is the verbatim URL; remote transforms must
// carry explicit dimensions.
type ImageTransform struct {
	Src      string
	Metadata *ImageMetadata
	Width    int
	Height   int
	// Quality is a 0-100 integer or a named preset (low, mid, high, max).
	// Empty means the codec default.
	Quality string
	Format  OutputFormat
	// Extra holds opaque key-value pairs passed through to HTML attributes.
	Extra map[string]string
}

// IsRemote reports whether the transform targets a remote URL image.
func (t *ImageTransform) IsRemote() bool {
	return t.Metadata == nil
}

// TransformResult is the outcome of one pixel transform. It lives only as
// long as the response or emitted asset that consumes it.
type TransformResult struct {
	Data   []byte
	Format OutputFormat
}

// ImageConfig is the image-pipeline slice of the project configuration,
// threaded explicitly through every pipeline entry point.
type ImageConfig struct {
	// Service names the active transform service ("local", "passthrough",
	// or a registered custom name).
	Service string `json:"service"`
	// EndpointRoute is the reserved dev image-serving prefix.
	EndpointRoute string `json:"endpointRoute"`
	// Base is the site base path prepended to emitted asset paths.
	Base string `json:"base"`
	// Root is the project directory dev image requests resolve against.
	Root string `json:"root"`
}

// DefaultEndpointRoute is the reserved dev image-serving prefix.
const DefaultEndpointRoute = "/_image"

func (c ImageConfig) ResolvedEndpoint() string {
	if c.EndpointRoute != "" {
		return c.EndpointRoute
	}
	return DefaultEndpointRoute
}
