package usecase

import (
	"fmt"
	"path/filepath"
)

const (
	HeimdallDir  = ".heimdall"
	DistDir      = "dist"
	ManifestFile = "manifest.json"
	AssetSubdir  = "_image"
)

type BuildInput struct {
	ProjectDir string
	// OutDir overrides the default <ProjectDir>/.heimdall/dist.
	OutDir string
}

type BuildResult struct {
	Chunks int
	Assets int
	Error  error
}

// BuildService runs a one-shot production build: bundle with the image
// rewrite pass, write finalized chunks, emitted assets, and the manifest.
type BuildService struct {
	bundler Bundler
	fs      FileSystem
	out     CLIOutput
}

func NewBuildService(bundler Bundler, fs FileSystem, out CLIOutput) *BuildService {
	return &BuildService{
		bundler: bundler,
		fs:      fs,
		out:     out,
	}
}

func (s *BuildService) BuildProject(input BuildInput) BuildResult {
	s.out.PrintHeader("Heimdall Build")

	outDir := input.OutDir
	if outDir == "" {
		outDir = filepath.Join(input.ProjectDir, HeimdallDir, DistDir)
	}

	s.out.PrintStep("Scanning %s for entry points...", input.ProjectDir)
	entries, err := s.bundler.ScanEntryPoints(input.ProjectDir)
	if err != nil {
		return BuildResult{Error: fmt.Errorf("failed to scan entry points: %w", err)}
	}
	if len(entries) == 0 {
		return BuildResult{Error: fmt.Errorf("no entry points found under %s", filepath.Join(input.ProjectDir, "src", "pages"))}
	}
	s.out.PrintSuccess("Found %d entry point(s)", len(entries))
	for _, entry := range entries {
		s.out.PrintFile(entry)
	}

	s.out.PrintStep("Creating output directories...")
	if err := s.fs.MkdirAll(filepath.Join(outDir, AssetSubdir), 0755); err != nil {
		return BuildResult{Error: fmt.Errorf("failed to create outdir: %w", err)}
	}

	s.out.PrintStep("Bundling...")
	chunks, err := s.bundler.Bundle(entries, outDir)
	if err != nil {
		return BuildResult{Error: err}
	}

	for _, chunk := range chunks {
		if err := s.fs.WriteFile(chunk.Path, chunk.Contents, 0644); err != nil {
			return BuildResult{Error: fmt.Errorf("failed to write chunk %s: %w", chunk.Path, err)}
		}
	}
	s.out.PrintSuccess("Wrote %d chunk(s)", len(chunks))

	assets := s.bundler.Assets()
	for _, asset := range assets {
		path := filepath.Join(outDir, AssetSubdir, asset.FileName)
		if err := s.fs.WriteFile(path, asset.Data, 0644); err != nil {
			return BuildResult{Error: fmt.Errorf("failed to write asset %s: %w", asset.FileName, err)}
		}
		s.out.PrintFile(path)
	}
	s.out.PrintSuccess("Emitted %d image asset(s)", len(assets))

	manifest, err := s.bundler.ManifestJSON()
	if err != nil {
		return BuildResult{Error: fmt.Errorf("failed to encode manifest: %w", err)}
	}
	if err := s.fs.MkdirAll(filepath.Join(input.ProjectDir, HeimdallDir), 0755); err != nil {
		return BuildResult{Error: fmt.Errorf("failed to create %s: %w", HeimdallDir, err)}
	}
	manifestPath := filepath.Join(input.ProjectDir, HeimdallDir, ManifestFile)
	if err := s.fs.WriteFile(manifestPath, manifest, 0644); err != nil {
		return BuildResult{Error: fmt.Errorf("failed to write manifest: %w", err)}
	}
	s.out.PrintSuccess("Wrote manifest %s", manifestPath)

	return BuildResult{Chunks: len(chunks), Assets: len(assets)}
}
