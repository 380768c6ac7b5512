// Package assets holds the build manifest mapping source images and their
// transforms to emitted, content-addressed output paths.
package assets

import (
	"encoding/json"
	"os"

	"github.com/3-lines-studio/heimdall/internal/imgquery"
	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

// Manifest is written at the end of a production build and consulted by the
// runtime façade so GetImage resolves the same paths the chunks carry.
type Manifest struct {
	// Assets maps a canonical transform key (the stable query encoding) to
	// the emitted public path.
	Assets map[string]string `json:"assets"`
	// Sources maps a project-relative source path to its probed metadata.
	Sources map[string]imgtypes.ImageMetadata `json:"sources"`
}

func NewManifest() *Manifest {
	return &Manifest{
		Assets:  map[string]string{},
		Sources: map[string]imgtypes.ImageMetadata{},
	}
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

func (m *Manifest) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// TransformKey is the canonical identity of one transform: the stable query
// encoding without the original-dimension sidecar. Two transforms that
// produce the same output bytes share a key.
func TransformKey(t imgtypes.ImageTransform) string {
	return imgquery.Encode(t, nil)
}

// RecordAsset registers the emitted public path for a transform.
func (m *Manifest) RecordAsset(t imgtypes.ImageTransform, publicPath string) {
	m.Assets[TransformKey(t)] = publicPath
}

// LookupAsset resolves a transform to its emitted public path.
func (m *Manifest) LookupAsset(t imgtypes.ImageTransform) (string, bool) {
	if m == nil {
		return "", false
	}
	path, ok := m.Assets[TransformKey(t)]
	return path, ok
}

// LookupSource resolves probed metadata for a source path.
func (m *Manifest) LookupSource(sourcePath string) (imgtypes.ImageMetadata, bool) {
	if m == nil {
		return imgtypes.ImageMetadata{}, false
	}
	meta, ok := m.Sources[sourcePath]
	return meta, ok
}
