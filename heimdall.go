// Package heimdall is the image asset pipeline of a component web
// framework: build-time rewriting of image imports, a dev-time transform
// endpoint, and content-addressed image output for production builds.
package heimdall

import (
	"embed"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/heimdall/internal/adapters/fs"
	heimdallhttp "github.com/3-lines-studio/heimdall/internal/adapters/http"
	"github.com/3-lines-studio/heimdall/internal/assets"
	"github.com/3-lines-studio/heimdall/internal/config"
	"github.com/3-lines-studio/heimdall/internal/imgservice"
	"github.com/3-lines-studio/heimdall/internal/imgtypes"
	"github.com/3-lines-studio/heimdall/internal/runtime"
	"github.com/3-lines-studio/heimdall/internal/usecase"
)

// ImageMetadata describes an imported local image.
type ImageMetadata = imgtypes.ImageMetadata

// ImageTransform describes one requested transformation of one image.
type ImageTransform = imgtypes.ImageTransform

// Service is the pluggable transform capability.
type Service = imgservice.Service

// RegisterService makes a custom transform service selectable through the
// image.service configuration setting. Call before New.
func RegisterService(name string, svc Service) {
	imgservice.Register(name, svc)
}

type App struct {
	cfg        config.Config
	service    imgservice.Service
	assetsFS   embed.FS
	projectDir string
	isDev      bool
	manifest   *assets.Manifest
	serve      *usecase.ServeImageService
}

// New creates an app rooted at the current directory. Configuration is
// read once here; the selected transform service never changes afterwards.
func New(assetsFS embed.FS) *App {
	return NewAt(assetsFS, ".")
}

// NewAt creates an app rooted at projectDir.
func NewAt(assetsFS embed.FS, projectDir string) *App {
	cfg, err := config.Load(projectDir)
	if err != nil {
		panic(fmt.Sprintf("heimdall: failed to load configuration: %v", err))
	}

	service, err := imgservice.ForConfig(cfg.Image)
	if err != nil {
		panic(fmt.Sprintf("heimdall: %v", err))
	}

	app := &App{
		cfg:        cfg,
		service:    service,
		assetsFS:   assetsFS,
		projectDir: projectDir,
		isDev:      runtime.IsDev(),
	}

	if !app.isDev {
		app.manifest = loadManifest(assetsFS, projectDir)
	}

	app.serve = usecase.NewServeImageService(fs.NewOSFileSystem(), service, cfg.Image)

	return app
}

// loadManifest prefers the embedded build, falling back to disk. A missing
// manifest is fine until a prod GetImage call needs it.
func loadManifest(assetsFS embed.FS, projectDir string) *assets.Manifest {
	embedPath := filepath.ToSlash(filepath.Join(usecase.HeimdallDir, usecase.ManifestFile))
	if data, err := assetsFS.ReadFile(embedPath); err == nil {
		if m, err := assets.ParseManifest(data); err == nil {
			return m
		}
	}

	diskPath := filepath.Join(projectDir, usecase.HeimdallDir, usecase.ManifestFile)
	if m, err := assets.LoadManifest(diskPath); err == nil {
		return m
	}
	return nil
}

// Wrap installs the image pipeline handlers ahead of next: the dev
// responder on the reserved endpoint, and the hashed asset handler under
// it. Everything else flows through.
func (a *App) Wrap(next http.Handler) http.Handler {
	if next == nil {
		panic("heimdall: nil handler passed to Wrap; use app.Handler()")
	}

	endpoint := a.cfg.Image.ResolvedEndpoint()
	imageHandler := heimdallhttp.NewImageHandler(a.serve, next, a.isDev)
	assetHandler := heimdallhttp.NewAssetHandler(a.assetsFS, a.projectDir, a.isDev)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case a.isDev && path == endpoint:
			imageHandler.ServeHTTP(w, req)
		case strings.HasPrefix(path, endpoint+"/"):
			assetHandler.ServeHTTP(w, req)
		default:
			next.ServeHTTP(w, req)
		}
	})
}

// Handler returns the pipeline handlers over a bare mux, for apps with no
// routes of their own.
func (a *App) Handler() http.Handler {
	return a.Wrap(http.NewServeMux())
}

// Config exposes the image configuration the app was started with.
func (a *App) Config() imgtypes.ImageConfig {
	return a.cfg.Image
}
