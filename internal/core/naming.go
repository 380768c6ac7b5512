package core

import (
	"path/filepath"
	"strings"
)

// AssetFileName derives a content-addressed output filename for an emitted
// image: base name of the source, the content hash, and the output extension.
func AssetFileName(sourcePath string, hash string, ext string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = "image"
	}
	return base + "." + hash + "." + strings.TrimPrefix(ext, ".")
}

// ExtensionForFormat maps an output format to a file extension without dot.
func ExtensionForFormat(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "jpg"
	case "":
		return "bin"
	default:
		return strings.ToLower(format)
	}
}
