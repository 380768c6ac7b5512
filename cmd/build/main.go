package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/3-lines-studio/heimdall/internal/adapters/cli"
	"github.com/3-lines-studio/heimdall/internal/adapters/fs"
	"github.com/3-lines-studio/heimdall/internal/build"
	"github.com/3-lines-studio/heimdall/internal/config"
	"github.com/3-lines-studio/heimdall/internal/imgservice"
	"github.com/3-lines-studio/heimdall/internal/usecase"
)

func main() {
	output := cli.NewOutput()

	watch := false
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--watch" {
		watch = true
		args = args[1:]
	}

	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	absProjectDir, err := filepath.Abs(projectDir)
	if err != nil {
		output.PrintHeader("Heimdall Build")
		output.PrintError("Failed to resolve project directory: %v", err)
		os.Exit(1)
	}

	cfg, err := config.Load(absProjectDir)
	if err != nil {
		output.PrintHeader("Heimdall Build")
		output.PrintError("%v", err)
		os.Exit(1)
	}

	service, err := imgservice.ForConfig(cfg.Image)
	if err != nil {
		output.PrintHeader("Heimdall Build")
		output.PrintError("%v", err)
		os.Exit(1)
	}

	if watch {
		runWatch(output, cfg, service, absProjectDir)
		return
	}

	engine := build.NewEngine(cfg.Image, service)
	buildService := usecase.NewBuildService(engine, fs.NewOSFileSystem(), output)

	result := buildService.BuildProject(usecase.BuildInput{
		ProjectDir: absProjectDir,
	})
	if result.Error != nil {
		output.PrintError("%v", result.Error)
		os.Exit(1)
	}

	output.PrintDone("Build completed successfully")
}

// runWatch rebuilds on every source change until interrupted. Image
// imports resolve to dev endpoint URLs, so the dev responder must be
// running for them to load.
func runWatch(output *cli.Output, cfg config.Config, service imgservice.Service, projectDir string) {
	output.PrintHeader("Heimdall Watch")

	engine := build.NewWatchEngine(cfg.Image, service)

	entries, err := engine.ScanEntryPoints(projectDir)
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		output.PrintError("No entry points found under %s", filepath.Join(projectDir, "src", "pages"))
		os.Exit(1)
	}
	output.PrintSuccess("Found %d entry point(s)", len(entries))
	for _, entry := range entries {
		output.PrintFile(entry)
	}

	outdir := filepath.Join(projectDir, usecase.HeimdallDir, usecase.DistDir)
	stop, err := engine.Watch(entries, outdir)
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
	defer stop()

	output.PrintStep("Watching for changes, Ctrl+C stops...")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	output.PrintDone("Watch stopped")
}
