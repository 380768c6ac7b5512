package build

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var entryExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
}

// ScanEntryPoints walks projectDir/src/pages for bundle entry files.
// Ordering is stable so repeated builds process modules identically.
func ScanEntryPoints(projectDir string) ([]string, error) {
	pagesDir := filepath.Join(projectDir, "src", "pages")

	var entries []string
	err := filepath.WalkDir(pagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if entryExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pagesDir, err)
	}

	sort.Strings(entries)
	return entries, nil
}
