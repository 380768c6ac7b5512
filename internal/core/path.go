package core

import (
	"strings"
)

func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// JoinBase prepends the site base path to an absolute asset path.
// An empty or "/" base leaves the path untouched.
func JoinBase(base, path string) string {
	path = NormalizePath(path)
	if base == "" || base == "/" {
		return path
	}
	base = strings.TrimSuffix(NormalizePath(base), "/")
	return base + path
}

// IsRemoteURL reports whether src addresses an image outside the project.
// Remote images are never locally transformed.
func IsRemoteURL(src string) bool {
	return strings.HasPrefix(src, "http://") ||
		strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "//")
}
