package http

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func emptyEmbed() embed.FS {
	return embed.FS{}
}

func TestAssetHandlerServesFromDisk(t *testing.T) {
	dir := t.TempDir()
	distDir := filepath.Join(dir, ".heimdall", "dist", "_image")
	if err := os.MkdirAll(distDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(distDir, "hero.a1b2c3d4.webp"), []byte("RIFFxxxxWEBP"), 0644); err != nil {
		t.Fatal(err)
	}
	// The handler resolves against its project dir, not the process
	// working directory.
	t.Chdir(t.TempDir())

	handler := NewAssetHandler(emptyEmbed(), dir, true)

	req := httptest.NewRequest(http.MethodGet, "/_image/hero.a1b2c3d4.webp", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/webp" {
		t.Errorf("Content-Type = %q, want image/webp", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=31536000, immutable" {
		t.Errorf("Cache-Control = %q, want immutable caching", cc)
	}
	if rec.Body.String() != "RIFFxxxxWEBP" {
		t.Errorf("body = %q, want file contents", rec.Body.String())
	}
}

func TestAssetHandlerMisses(t *testing.T) {
	handler := NewAssetHandler(emptyEmbed(), t.TempDir(), true)

	tests := []struct {
		name string
		url  string
	}{
		{"missing file", "/_image/nope.webp"},
		{"root path", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", rec.Code)
			}
		})
	}
}
