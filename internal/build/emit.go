package build

import (
	"sync"

	"github.com/3-lines-studio/heimdall/internal/core"
	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

// EmittedAsset is one binary output artifact registered during the load
// phase or by an eager transform. Hash doubles as the placeholder identity
// embedded in generated chunks.
type EmittedAsset struct {
	Hash     string
	FileName string
	Data     []byte
	Source   string
	Format   imgtypes.OutputFormat
}

// Emitter assigns stable identities to emitted assets. Load-phase callbacks
// run concurrently, so registration is guarded; identical bytes are emitted
// once regardless of how many modules reference them.
type Emitter struct {
	mu       sync.Mutex
	byHash   map[string]*EmittedAsset
	bySource map[string]*EmittedAsset
	order    []string
}

func NewEmitter() *Emitter {
	return &Emitter{
		byHash:   map[string]*EmittedAsset{},
		bySource: map[string]*EmittedAsset{},
	}
}

// Emit registers data as a build asset and returns its identity. Re-emitting
// the same bytes returns the already-registered asset.
func (e *Emitter) Emit(source string, data []byte, format imgtypes.OutputFormat) *EmittedAsset {
	hash := core.ContentHash(data, 8)

	e.mu.Lock()
	defer e.mu.Unlock()

	if existing, ok := e.byHash[hash]; ok {
		return existing
	}

	asset := &EmittedAsset{
		Hash:     hash,
		FileName: core.AssetFileName(source, hash, core.ExtensionForFormat(string(format))),
		Data:     data,
		Source:   source,
		Format:   format,
	}
	e.byHash[hash] = asset
	if _, ok := e.bySource[source]; !ok {
		e.bySource[source] = asset
	}
	e.order = append(e.order, hash)
	return asset
}

// BySource returns the first asset emitted for a source path.
func (e *Emitter) BySource(source string) (*EmittedAsset, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	asset, ok := e.bySource[source]
	return asset, ok
}

// Resolve maps a placeholder hash to its asset.
func (e *Emitter) Resolve(hash string) (*EmittedAsset, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	asset, ok := e.byHash[hash]
	return asset, ok
}

// Assets returns every registered asset in emission order.
func (e *Emitter) Assets() []*EmittedAsset {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*EmittedAsset, 0, len(e.order))
	for _, hash := range e.order {
		out = append(out, e.byHash[hash])
	}
	return out
}
