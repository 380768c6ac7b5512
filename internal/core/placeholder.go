package core

import (
	"regexp"
	"strings"
)

// Placeholder tokens stand in for emitted asset paths inside generated
// chunks until the bundler has assigned final output filenames. The wire
// form stays a plain string so the host build tool's text-substitution
// hooks can carry it through untouched.
const placeholderMarker = "__HEIMDALL_IMAGE__"

var placeholderPattern = regexp.MustCompile(placeholderMarker + `([0-9a-f]{8})__(?:_(.*?)__)?`)

// Placeholder is a typed pending reference to a not-yet-assigned asset path.
// Hash identifies the emitted asset; Postfix is literal text appended after
// resolution (e.g. a query suffix).
type Placeholder struct {
	Hash    string
	Postfix string
}

func (p Placeholder) String() string {
	s := placeholderMarker + p.Hash + "__"
	if p.Postfix != "" {
		s += "_" + p.Postfix + "__"
	}
	return s
}

// ContainsPlaceholder reports whether text carries any placeholder token.
// Chunks without tokens are left untouched by the finalize pass so no
// sourcemap is regenerated for them.
func ContainsPlaceholder(text string) bool {
	return strings.Contains(text, placeholderMarker)
}

// ResolvePlaceholders rewrites every placeholder token in text using
// resolve, which maps a hash to the final public path. Unresolvable tokens
// are left in place for the caller to report. Running the rewrite again on
// its own output is a no-op: resolved paths never contain the marker.
func ResolvePlaceholders(text string, resolve func(hash string) (string, bool)) (string, bool) {
	if !ContainsPlaceholder(text) {
		return text, false
	}

	changed := false
	out := placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		groups := placeholderPattern.FindStringSubmatch(token)
		path, ok := resolve(groups[1])
		if !ok {
			return token
		}
		changed = true
		return path + groups[2]
	})
	return out, changed
}
