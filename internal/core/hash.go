package core

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen characters. Eight hex chars identify a placeholder
// within one build; emitted filenames also use eight, which is collision-safe
// for practical asset counts.
func ContentHash(data []byte, hexLen int) string {
	sum := make([]byte, 8)
	binary.BigEndian.PutUint64(sum, xxhash.Sum64(data))
	full := hex.EncodeToString(sum)
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
