package core

import "testing"

func TestContentHash(t *testing.T) {
	data := []byte("heimdall")

	t.Run("truncates to requested length", func(t *testing.T) {
		got := ContentHash(data, 8)
		if len(got) != 8 {
			t.Errorf("len(ContentHash(data, 8)) = %d, want 8", len(got))
		}
	})

	t.Run("full hash is 16 hex chars", func(t *testing.T) {
		got := ContentHash(data, 0)
		if len(got) != 16 {
			t.Errorf("len(ContentHash(data, 0)) = %d, want 16", len(got))
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		if ContentHash(data, 8) != ContentHash(data, 8) {
			t.Error("ContentHash() not deterministic for identical input")
		}
	})

	t.Run("distinct inputs produce distinct hashes", func(t *testing.T) {
		a := ContentHash([]byte("a"), 8)
		b := ContentHash([]byte("b"), 8)
		if a == b {
			t.Errorf("ContentHash(a) == ContentHash(b) == %q", a)
		}
	})

	t.Run("truncation is a prefix of the full hash", func(t *testing.T) {
		full := ContentHash(data, 0)
		short := ContentHash(data, 8)
		if full[:8] != short {
			t.Errorf("ContentHash(data, 8) = %q, want prefix of %q", short, full)
		}
	})
}
