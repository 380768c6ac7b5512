package usecase

import (
	"github.com/3-lines-studio/heimdall/internal/adapters/fs"
)

// Chunk is one finalized output chunk ready to be written.
type Chunk struct {
	Path     string
	Contents []byte
}

// Asset is one emitted binary image artifact.
type Asset struct {
	FileName string
	Data     []byte
}

// Bundler is the build-tool boundary: entry scanning, bundling with the
// image rewrite pass applied, and access to what the pass emitted.
type Bundler interface {
	ScanEntryPoints(projectDir string) ([]string, error)
	Bundle(entryPoints []string, outdir string) ([]Chunk, error)
	Assets() []Asset
	ManifestJSON() ([]byte, error)
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)
}

type FileSystem = fs.FileSystem
