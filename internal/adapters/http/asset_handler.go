package http

import (
	"embed"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/heimdall/internal/core"
	"github.com/3-lines-studio/heimdall/internal/usecase"
)

// Emitted asset filenames carry a content hash, so their bytes never
// change under the same path.
const assetCacheControl = "public, max-age=31536000, immutable"

// AssetHandler serves the hashed build output under .heimdall/dist: from
// disk during development, from the embedded build in production.
type AssetHandler struct {
	assetsFS   embed.FS
	projectDir string
	isDev      bool
}

// NewAssetHandler serves build output rooted at projectDir; an empty
// projectDir means the process working directory.
func NewAssetHandler(assetsFS embed.FS, projectDir string, isDev bool) http.Handler {
	return &AssetHandler{
		assetsFS:   assetsFS,
		projectDir: projectDir,
		isDev:      isDev,
	}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/")
	if path == "" {
		http.NotFound(w, req)
		return
	}

	if h.isDev || h.assetsFS == (embed.FS{}) {
		h.serveFromFS(w, req, path)
	} else {
		h.serveFromEmbed(w, req, path)
	}
}

func (h *AssetHandler) serveFromFS(w http.ResponseWriter, req *http.Request, path string) {
	fullPath := filepath.Join(h.projectDir, usecase.HeimdallDir, usecase.DistDir, filepath.FromSlash(path))

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		http.NotFound(w, req)
		return
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	h.write(w, path, data)
}

func (h *AssetHandler) serveFromEmbed(w http.ResponseWriter, req *http.Request, path string) {
	embedPath := filepath.ToSlash(filepath.Join(usecase.HeimdallDir, usecase.DistDir, path))

	data, err := h.assetsFS.ReadFile(embedPath)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	h.write(w, path, data)
}

func (h *AssetHandler) write(w http.ResponseWriter, path string, data []byte) {
	w.Header().Set("Content-Type", core.GetContentType(path))
	w.Header().Set("Cache-Control", assetCacheControl)
	_, _ = w.Write(data)
}
