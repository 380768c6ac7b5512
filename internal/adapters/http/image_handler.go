package http

import (
	"fmt"
	"net/http"
	"os"

	"github.com/3-lines-studio/heimdall/internal/core"
	"github.com/3-lines-studio/heimdall/internal/usecase"
)

// Transformed responses are content-addressed by their query string, so
// clients may cache them aggressively.
const imageCacheControl = "public, max-age=360000"

// ImageHandler is the dev-time image responder. It owns only requests to
// the reserved endpoint that actually name a servable image; everything
// else delegates to next.
type ImageHandler struct {
	serve *usecase.ServeImageService
	next  http.Handler
	isDev bool
}

func NewImageHandler(serve *usecase.ServeImageService, next http.Handler, isDev bool) http.Handler {
	return &ImageHandler{
		serve: serve,
		next:  next,
		isDev: isDev,
	}
}

func (h *ImageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	result, err := h.serve.Serve(req.URL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "heimdall: image request %s failed: %v\n", req.URL.String(), err)
		h.renderError(w, err)
		return
	}

	if result.PassThrough {
		h.next.ServeHTTP(w, req)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Cache-Control", imageCacheControl)
	_, _ = w.Write(result.Data)
}

func (h *ImageHandler) renderError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = core.ErrorTemplate.Execute(w, core.ErrorData{
		Message: err.Error(),
		IsDev:   h.isDev,
	})
}
