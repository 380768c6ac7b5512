package build

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/3-lines-studio/heimdall/internal/core"
)

// FinalizeChunks runs once per emitted output chunk, strictly after every
// module's load phase has completed: it substitutes placeholder tokens for
// final public asset paths. Chunks without tokens are returned untouched.
// A token whose asset was never registered fails the build.
func (p *Pipeline) FinalizeChunks(files []api.OutputFile) ([]api.OutputFile, error) {
	out := make([]api.OutputFile, 0, len(files))

	for _, file := range files {
		text := string(file.Contents)
		if !core.ContainsPlaceholder(text) {
			out = append(out, file)
			continue
		}

		rewritten, _ := core.ResolvePlaceholders(text, func(hash string) (string, bool) {
			asset, ok := p.Emitter.Resolve(hash)
			if !ok {
				return "", false
			}
			return p.publicPath(asset), true
		})

		if core.ContainsPlaceholder(rewritten) {
			return nil, fmt.Errorf("unresolved image placeholder in chunk %s", file.Path)
		}

		file.Contents = []byte(rewritten)
		out = append(out, file)
	}

	return out, nil
}
