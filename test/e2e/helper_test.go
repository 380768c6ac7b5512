package e2e

import (
	"bytes"
	"embed"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/3-lines-studio/heimdall"
)

// newDevApp builds an app over a throwaway project with one known image.
func newDevApp(t *testing.T) *heimdall.App {
	t.Helper()
	t.Setenv("HEIMDALL_DEV", "1")

	dir := t.TempDir()
	writeHero(t, dir)
	return heimdall.NewAt(embed.FS{}, dir)
}

func writeHero(t *testing.T, projectDir string) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 32))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(projectDir, "src", "assets", "hero.png")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func heroMeta() *heimdall.ImageMetadata {
	return &heimdall.ImageMetadata{
		Src:    "/src/assets/hero.png",
		Width:  64,
		Height: 32,
		Format: "png",
	}
}

func matchSnapshot(t *testing.T, html string) {
	t.Helper()
	snaps.WithConfig(snaps.Ext(".html")).MatchSnapshot(t, html)
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
