package imgservice

import (
	"bytes"
	"image"
	"image/png"
	"net/url"
	"testing"

	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, image.White)
		}
	}
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, res imgtypes.TransformResult) (int, int) {
	t.Helper()
	img, err := decodeImage(res.Data)
	if err != nil {
		t.Fatalf("decode transform output: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestLocalServiceURL(t *testing.T) {
	svc := NewLocalService()
	cfg := imgtypes.ImageConfig{}

	t.Run("local image encodes endpoint query", func(t *testing.T) {
		tr := imgtypes.ImageTransform{
			Src:      "/src/assets/hero.png",
			Metadata: localMeta(800, 600),
			Width:    300,
			Format:   imgtypes.OutputWebP,
		}
		got, err := svc.URL(tr, cfg)
		if err != nil {
			t.Fatalf("URL() error = %v", err)
		}
		want := "/_image?f=webp&href=%2Fsrc%2Fassets%2Fhero.png&origFormat=png&origHeight=600&origWidth=800&w=300"
		if got != want {
			t.Errorf("URL() = %q, want %q", got, want)
		}
	})

	t.Run("custom endpoint route", func(t *testing.T) {
		tr := imgtypes.ImageTransform{Src: "/a.png", Metadata: localMeta(10, 10)}
		got, err := svc.URL(tr, imgtypes.ImageConfig{EndpointRoute: "/media"})
		if err != nil {
			t.Fatalf("URL() error = %v", err)
		}
		if got[:7] != "/media?" {
			t.Errorf("URL() = %q, want /media prefix", got)
		}
	})

	t.Run("remote image returns verbatim", func(t *testing.T) {
		tr := imgtypes.ImageTransform{Src: "https://cdn.example.com/a.png", Width: 10, Height: 10}
		got, err := svc.URL(tr, cfg)
		if err != nil {
			t.Fatalf("URL() error = %v", err)
		}
		if got != tr.Src {
			t.Errorf("URL() = %q, want %q", got, tr.Src)
		}
	})

	t.Run("distinct transforms yield distinct URLs", func(t *testing.T) {
		base := imgtypes.ImageTransform{Src: "/a.png", Metadata: localMeta(100, 100), Width: 50}
		low := base
		low.Quality = "low"
		high := base
		high.Quality = "high"
		lowURL, _ := svc.URL(low, cfg)
		highURL, _ := svc.URL(high, cfg)
		if lowURL == highURL {
			t.Errorf("URL() identical for different qualities: %q", lowURL)
		}
	})
}

func TestLocalServiceParseURL(t *testing.T) {
	svc := NewLocalService()
	cfg := imgtypes.ImageConfig{}

	t.Run("inverse of URL", func(t *testing.T) {
		in := imgtypes.ImageTransform{
			Src:      "/src/assets/hero.png",
			Metadata: localMeta(800, 600),
			Width:    300,
			Quality:  "mid",
		}
		rawURL, err := svc.URL(in, cfg)
		if err != nil {
			t.Fatalf("URL() error = %v", err)
		}
		u, err := url.Parse(rawURL)
		if err != nil {
			t.Fatalf("url.Parse() error = %v", err)
		}
		got, ok := svc.ParseURL(u, cfg)
		if !ok {
			t.Fatal("ParseURL() ok = false, want true")
		}
		if got.Src != in.Src || got.Width != in.Width || got.Quality != in.Quality {
			t.Errorf("ParseURL() = %+v, want fields of %+v", got, in)
		}
		if got.Metadata == nil || got.Metadata.Width != 800 || got.Metadata.Height != 600 {
			t.Errorf("ParseURL() metadata = %+v, want 800x600 sidecar", got.Metadata)
		}
	})

	t.Run("wrong path", func(t *testing.T) {
		u, _ := url.Parse("/other?href=%2Fa.png")
		if _, ok := svc.ParseURL(u, cfg); ok {
			t.Error("ParseURL() ok = true for non-endpoint path, want false")
		}
	})

	t.Run("missing href", func(t *testing.T) {
		u, _ := url.Parse("/_image?w=300")
		if _, ok := svc.ParseURL(u, cfg); ok {
			t.Error("ParseURL() ok = true without href, want false")
		}
	})
}

func TestLocalServiceTransform(t *testing.T) {
	svc := NewLocalService()
	src := testPNG(t, 100, 50)

	t.Run("width governs and height derives", func(t *testing.T) {
		res, err := svc.Transform(src, imgtypes.ImageTransform{Src: "/a.png", Width: 40, Height: 999})
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		w, h := decodeDims(t, res)
		if w != 40 || h != 20 {
			t.Errorf("Transform() dims = (%d, %d), want (40, 20)", w, h)
		}
	})

	t.Run("height alone resizes by height", func(t *testing.T) {
		res, err := svc.Transform(src, imgtypes.ImageTransform{Src: "/a.png", Height: 25})
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		w, h := decodeDims(t, res)
		if w != 50 || h != 25 {
			t.Errorf("Transform() dims = (%d, %d), want (50, 25)", w, h)
		}
	})

	t.Run("no dimensions re-encodes at source size", func(t *testing.T) {
		res, err := svc.Transform(src, imgtypes.ImageTransform{Src: "/a.png"})
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		w, h := decodeDims(t, res)
		if w != 100 || h != 50 {
			t.Errorf("Transform() dims = (%d, %d), want (100, 50)", w, h)
		}
	})

	t.Run("default output format is webp", func(t *testing.T) {
		res, err := svc.Transform(src, imgtypes.ImageTransform{Src: "/a.png", Width: 10})
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if res.Format != imgtypes.OutputWebP {
			t.Errorf("Transform() format = %q, want webp", res.Format)
		}
		if len(res.Data) < 12 || string(res.Data[0:4]) != "RIFF" || string(res.Data[8:12]) != "WEBP" {
			t.Error("Transform() output missing RIFF/WEBP signature")
		}
	})

	t.Run("explicit png output", func(t *testing.T) {
		res, err := svc.Transform(src, imgtypes.ImageTransform{Src: "/a.png", Width: 10, Format: imgtypes.OutputPNG})
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if res.Format != imgtypes.OutputPNG {
			t.Errorf("Transform() format = %q, want png", res.Format)
		}
		if !bytes.HasPrefix(res.Data, []byte("\x89PNG")) {
			t.Error("Transform() output missing PNG signature")
		}
	})

	t.Run("invalid quality errors", func(t *testing.T) {
		_, err := svc.Transform(src, imgtypes.ImageTransform{Src: "/a.png", Quality: "ultra"})
		if err == nil {
			t.Error("Transform() error = nil for invalid quality, want error")
		}
	})

	t.Run("undecodable input errors", func(t *testing.T) {
		_, err := svc.Transform([]byte("garbage"), imgtypes.ImageTransform{Src: "/a.png"})
		if err == nil {
			t.Error("Transform() error = nil for garbage input, want error")
		}
	})
}
