package build

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/3-lines-studio/heimdall/internal/imgservice"
	"github.com/3-lines-studio/heimdall/internal/imgtypes"
	"github.com/3-lines-studio/heimdall/internal/usecase"
)

// Engine implements the usecase.Bundler port on top of esbuild. One engine
// runs one one-shot production build; every module's load phase completes
// before any chunk is finalized.
type Engine struct {
	pipeline *Pipeline
}

func NewEngine(cfg imgtypes.ImageConfig, svc imgservice.Service) *Engine {
	return &Engine{
		pipeline: NewPipeline(cfg, svc, false),
	}
}

// NewWatchEngine returns an engine whose load phase embeds resolved dev
// endpoint URLs instead of placeholder tokens, so the dev responder
// computes transforms on demand and no assets are emitted.
func NewWatchEngine(cfg imgtypes.ImageConfig, svc imgservice.Service) *Engine {
	return &Engine{
		pipeline: NewPipeline(cfg, svc, true),
	}
}

// Watch starts a rebuild-on-change session writing bundled chunks to
// outdir. The initial build runs immediately; the returned stop function
// ends the session.
func (e *Engine) Watch(entryPoints []string, outdir string) (func(), error) {
	ctx, ctxErr := api.Context(api.BuildOptions{
		EntryPoints: entryPoints,
		Bundle:      true,
		Write:       true,
		Outdir:      outdir,
		Format:      api.FormatESModule,
		LogLevel:    api.LogLevelWarning,
		Loader:      StaticImageLoaders(),
		Plugins:     []api.Plugin{e.pipeline.Plugin()},
	})
	if ctxErr != nil {
		return nil, fmt.Errorf("watch setup failed: %s", formatMessages(ctxErr.Errors))
	}

	if err := ctx.Watch(api.WatchOptions{}); err != nil {
		ctx.Dispose()
		return nil, err
	}
	return ctx.Dispose, nil
}

// Pipeline exposes the rewrite pass, for embedders that pre-compute
// transforms during prerendering.
func (e *Engine) Pipeline() *Pipeline {
	return e.pipeline
}

func (e *Engine) ScanEntryPoints(projectDir string) ([]string, error) {
	return ScanEntryPoints(projectDir)
}

func (e *Engine) Bundle(entryPoints []string, outdir string) ([]usecase.Chunk, error) {
	result := api.Build(api.BuildOptions{
		EntryPoints: entryPoints,
		Bundle:      true,
		Write:       false,
		Outdir:      outdir,
		Format:      api.FormatESModule,
		LogLevel:    api.LogLevelSilent,
		Loader:      StaticImageLoaders(),
		Plugins:     []api.Plugin{e.pipeline.Plugin()},
	})
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("bundle failed: %s", formatMessages(result.Errors))
	}

	files, err := e.pipeline.FinalizeChunks(result.OutputFiles)
	if err != nil {
		return nil, err
	}

	if err := e.emitDefaultTransforms(); err != nil {
		return nil, err
	}

	chunks := make([]usecase.Chunk, 0, len(files))
	for _, file := range files {
		chunks = append(chunks, usecase.Chunk{
			Path:     file.Path,
			Contents: file.Contents,
		})
	}
	return chunks, nil
}

// emitDefaultTransforms eagerly produces the default-format transform of
// every imported image, so prod lookups resolve without a dev responder.
// A codec failure here fails the build.
func (e *Engine) emitDefaultTransforms() error {
	for sitePath, meta := range e.pipeline.Manifest.Sources {
		asset, ok := e.pipeline.Emitter.BySource(sitePath)
		if !ok {
			continue
		}

		source := meta
		t := imgtypes.ImageTransform{
			Src:      sitePath,
			Metadata: &source,
		}
		if _, err := e.pipeline.EmitTransform(asset.Data, t); err != nil {
			return fmt.Errorf("pre-compute transform for %s: %w", sitePath, err)
		}
	}
	return nil
}

func (e *Engine) Assets() []usecase.Asset {
	emitted := e.pipeline.Emitter.Assets()
	out := make([]usecase.Asset, 0, len(emitted))
	for _, asset := range emitted {
		out = append(out, usecase.Asset{
			FileName: asset.FileName,
			Data:     asset.Data,
		})
	}
	return out
}

func (e *Engine) ManifestJSON() ([]byte, error) {
	return e.pipeline.Manifest.Marshal()
}

func formatMessages(msgs []api.Message) string {
	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("; ")
		}
		if msg.Location != nil {
			fmt.Fprintf(&b, "%s:%d: ", msg.Location.File, msg.Location.Line)
		}
		b.WriteString(msg.Text)
	}
	return b.String()
}
