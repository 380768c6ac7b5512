package build

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("export default {};\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanEntryPoints(t *testing.T) {
	dir := t.TempDir()
	pages := filepath.Join(dir, "src", "pages")

	writeFile(t, filepath.Join(pages, "index.ts"))
	writeFile(t, filepath.Join(pages, "about.tsx"))
	writeFile(t, filepath.Join(pages, "blog", "post.jsx"))
	writeFile(t, filepath.Join(pages, "styles.css"))
	writeFile(t, filepath.Join(pages, ".hidden.ts"))
	writeFile(t, filepath.Join(dir, "src", "components", "nav.tsx"))

	entries, err := ScanEntryPoints(dir)
	if err != nil {
		t.Fatalf("ScanEntryPoints() error = %v", err)
	}

	want := []string{
		filepath.Join(pages, "about.tsx"),
		filepath.Join(pages, "blog", "post.jsx"),
		filepath.Join(pages, "index.ts"),
	}
	if len(entries) != len(want) {
		t.Fatalf("ScanEntryPoints() = %v, want %v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i], want[i])
		}
	}
}

func TestScanEntryPointsMissingDir(t *testing.T) {
	if _, err := ScanEntryPoints(t.TempDir()); err == nil {
		t.Error("ScanEntryPoints() error = nil for missing src/pages, want error")
	}
}
