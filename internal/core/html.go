package core

import (
	"html"
	"sort"
	"strings"
)

// RenderImgTag builds an <img> element with deterministic attribute order:
// src and alt first, then the remaining attributes sorted by name.
func RenderImgTag(src string, alt string, attrs map[string]string) string {
	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(html.EscapeString(src))
	b.WriteString(`" alt="`)
	b.WriteString(html.EscapeString(alt))
	b.WriteString(`"`)

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		if name == "src" || name == "alt" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attrs[name]))
		b.WriteString(`"`)
	}

	b.WriteString(">")
	return b.String()
}
