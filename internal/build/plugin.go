// Package build rewrites image imports during bundling: the load phase
// replaces each imported image with a metadata module, and the finalize
// phase patches placeholder tokens to final asset paths once the bundler
// has assigned output filenames.
package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/3-lines-studio/heimdall/internal/assets"
	"github.com/3-lines-studio/heimdall/internal/core"
	"github.com/3-lines-studio/heimdall/internal/imgmeta"
	"github.com/3-lines-studio/heimdall/internal/imgquery"
	"github.com/3-lines-studio/heimdall/internal/imgservice"
	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

// imageFilter matches the watched image extensions.
const imageFilter = `\.(png|jpe?g|gif|webp|avif|tiff?|heic|heif)$`

// virtualModuleID is the synthetic module exposing the client-side URL
// builder. Imports of it never touch the filesystem.
const virtualModuleID = "heimdall:image"

const virtualNamespace = "heimdall-image"

// StaticImageLoaders is the fallback loader mapping for files the prober
// does not recognize: they travel the bundler's normal file-asset pipeline.
func StaticImageLoaders() map[string]api.Loader {
	loaders := map[string]api.Loader{}
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".avif", ".tif", ".tiff", ".heic", ".heif"} {
		loaders[ext] = api.LoaderFile
	}
	return loaders
}

// Pipeline is the per-build state of the image rewrite pass. A watch
// pipeline embeds resolved dev URLs; a one-shot pipeline embeds placeholder
// tokens and registers emitted assets.
type Pipeline struct {
	Cfg      imgtypes.ImageConfig
	Service  imgservice.Service
	Emitter  *Emitter
	Manifest *assets.Manifest
	Watch    bool

	// Guards Manifest: load callbacks run concurrently.
	manifestMu sync.Mutex
}

func NewPipeline(cfg imgtypes.ImageConfig, svc imgservice.Service, watch bool) *Pipeline {
	return &Pipeline{
		Cfg:      cfg,
		Service:  svc,
		Emitter:  NewEmitter(),
		Manifest: assets.NewManifest(),
		Watch:    watch,
	}
}

// Plugin returns the bundler hook set: resolution of the virtual module id
// and loading of image files.
func (p *Pipeline) Plugin() api.Plugin {
	return api.Plugin{
		Name: "heimdall-image",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: "^" + virtualModuleID + "$"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{
						Path:      virtualModuleID,
						Namespace: virtualNamespace,
					}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: virtualNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents := clientModuleSource(p.Cfg)
					return api.OnLoadResult{
						Contents: &contents,
						Loader:   api.LoaderJS,
					}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: imageFilter},
				p.loadImage)
		},
	}
}

// loadImage is the load phase: probe the file once and embed a metadata
// module in its place. Files the prober does not recognize pass through the
// normal static-asset pipeline unchanged.
func (p *Pipeline) loadImage(args api.OnLoadArgs) (api.OnLoadResult, error) {
	data, err := os.ReadFile(args.Path)
	if err != nil {
		// A vanished file fails the build; a missing asset is worse than
		// a stopped build.
		return api.OnLoadResult{}, fmt.Errorf("read image %s: %w", args.Path, err)
	}

	meta, err := imgmeta.Extract(data)
	if err != nil {
		return api.OnLoadResult{}, nil
	}

	sitePath := p.sitePath(args.Path)

	if p.Watch {
		meta.Src = p.Cfg.ResolvedEndpoint() + "?" + imgquery.Encode(imgtypes.ImageTransform{Src: sitePath}, &imgtypes.ImageMetadata{
			Width:  meta.Width,
			Height: meta.Height,
			Format: meta.Format,
		})
	} else {
		asset := p.Emitter.Emit(sitePath, data, imgtypes.OutputFormat(meta.Format))
		meta.Src = core.Placeholder{Hash: asset.Hash}.String()

		// The manifest outlives the build, so it stores the final public
		// path; the placeholder form exists only inside chunk text until
		// FinalizeChunks erases it.
		recorded := meta
		recorded.Src = p.publicPath(asset)
		p.recordSource(sitePath, recorded)
	}

	encoded, err := json.Marshal(meta)
	if err != nil {
		return api.OnLoadResult{}, fmt.Errorf("encode metadata for %s: %w", args.Path, err)
	}

	contents := "export default " + string(encoded) + ";\n"
	return api.OnLoadResult{
		Contents:   &contents,
		Loader:     api.LoaderJS,
		WatchFiles: []string{args.Path},
	}, nil
}

// EmitTransform eagerly performs a transform and registers its output as a
// build asset, recording the mapping in the manifest. Used by one-shot
// builds where no dev responder exists to compute it on demand.
func (p *Pipeline) EmitTransform(data []byte, t imgtypes.ImageTransform) (*EmittedAsset, error) {
	result, err := p.Service.Transform(data, t)
	if err != nil {
		return nil, err
	}

	asset := p.Emitter.Emit(t.Src, result.Data, result.Format)
	p.manifestMu.Lock()
	p.Manifest.RecordAsset(t, p.publicPath(asset))
	p.manifestMu.Unlock()
	return asset, nil
}

// publicPath is the site-visible path of an emitted asset.
func (p *Pipeline) publicPath(asset *EmittedAsset) string {
	return core.JoinBase(p.Cfg.Base, p.Cfg.ResolvedEndpoint()+"/"+asset.FileName)
}

func (p *Pipeline) sitePath(absPath string) string {
	root := p.Cfg.Root
	if root == "" {
		root = "."
	}
	rel, err := filepath.Rel(root, absPath)
	if err != nil || filepath.IsAbs(rel) || rel == "" || rel[0] == '.' {
		return core.NormalizePath(filepath.ToSlash(absPath))
	}
	return "/" + filepath.ToSlash(rel)
}

func (p *Pipeline) recordSource(sitePath string, meta imgtypes.ImageMetadata) {
	p.manifestMu.Lock()
	defer p.manifestMu.Unlock()
	p.Manifest.Sources[sitePath] = meta
}

// clientModuleSource is the JS runtime shim served for the virtual module:
// a URL builder mirroring the active endpoint, for templates that construct
// image URLs in the browser.
func clientModuleSource(cfg imgtypes.ImageConfig) string {
	endpoint := cfg.ResolvedEndpoint()
	return fmt.Sprintf(`export function getImageURL(src, opts = {}) {
  const params = new URLSearchParams();
  params.set(%q, typeof src === "object" ? src.src : src);
  if (opts.width) params.set(%q, String(opts.width));
  if (opts.height) params.set(%q, String(opts.height));
  if (opts.format) params.set(%q, opts.format);
  if (opts.quality) params.set(%q, String(opts.quality));
  params.sort();
  return %q + "?" + params.toString();
}
`, imgquery.ParamHref, imgquery.ParamWidth, imgquery.ParamHeight,
		imgquery.ParamFormat, imgquery.ParamQuality, endpoint)
}
