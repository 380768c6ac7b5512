package core

import (
	"fmt"
	"strconv"
)

// Named quality presets map to codec quality integers. The preset names
// travel verbatim through transform URLs.
var qualityPresets = map[string]int{
	"low":  25,
	"mid":  50,
	"high": 80,
	"max":  100,
}

const DefaultQuality = 80

// ResolveQuality turns a quality setting (preset name or 0-100 integer
// string) into the codec quality. Empty input means the default.
func ResolveQuality(quality string) (int, error) {
	if quality == "" {
		return DefaultQuality, nil
	}
	if q, ok := qualityPresets[quality]; ok {
		return q, nil
	}
	q, err := strconv.Atoi(quality)
	if err != nil {
		return 0, fmt.Errorf("invalid quality %q: expected low, mid, high, max or an integer between 0 and 100", quality)
	}
	if q < 0 || q > 100 {
		return 0, fmt.Errorf("invalid quality %d: expected an integer between 0 and 100", q)
	}
	return q, nil
}
