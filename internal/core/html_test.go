package core

import "testing"

func TestRenderImgTag(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		alt   string
		attrs map[string]string
		want  string
	}{
		{
			name: "src and alt only",
			src:  "/_image/hero.a1b2c3d4.webp",
			alt:  "Hero",
			want: `<img src="/_image/hero.a1b2c3d4.webp" alt="Hero">`,
		},
		{
			name: "attributes sorted by name",
			src:  "/a.webp",
			alt:  "",
			attrs: map[string]string{
				"width":    "300",
				"loading":  "lazy",
				"decoding": "async",
				"height":   "200",
			},
			want: `<img src="/a.webp" alt="" decoding="async" height="200" loading="lazy" width="300">`,
		},
		{
			name: "src and alt in attrs are ignored",
			src:  "/a.webp",
			alt:  "x",
			attrs: map[string]string{
				"src": "/evil.webp",
				"alt": "other",
			},
			want: `<img src="/a.webp" alt="x">`,
		},
		{
			name: "values are escaped",
			src:  `/a.webp?x="1"&y=2`,
			alt:  `a <b> c`,
			want: `<img src="/a.webp?x=&#34;1&#34;&amp;y=2" alt="a &lt;b&gt; c">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderImgTag(tt.src, tt.alt, tt.attrs); got != tt.want {
				t.Errorf("RenderImgTag() = %s, want %s", got, tt.want)
			}
		})
	}
}
