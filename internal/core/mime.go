package core

import (
	"path/filepath"
	"strings"
)

var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
}

func GetContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// FormatContentType maps an output format name to its MIME type.
// Unknown formats fall back to an extension lookup on the given path.
func FormatContentType(format string, fallbackPath string) string {
	if format != "" {
		if ct, ok := contentTypes["."+strings.ToLower(format)]; ok {
			return ct
		}
	}
	return GetContentType(fallbackPath)
}
