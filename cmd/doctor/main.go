package main

import (
	"os"

	"github.com/3-lines-studio/heimdall/internal/adapters/cli"
	"github.com/3-lines-studio/heimdall/internal/config"
	"github.com/3-lines-studio/heimdall/internal/encoder"
	"github.com/3-lines-studio/heimdall/internal/imgservice"
)

func main() {
	output := cli.NewOutput()
	output.PrintHeader("Heimdall Doctor")

	projectDir := "."
	if len(os.Args) > 1 {
		projectDir = os.Args[1]
	}

	cfg, err := config.Load(projectDir)
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
	output.PrintSuccess("Configuration loaded (service: %s)", cfg.Image.Service)

	if _, err := imgservice.ForConfig(cfg.Image); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
	output.PrintSuccess("Image service %q is registered", cfg.Image.Service)

	registry := encoder.NewRegistry()
	available := registry.Available()
	if len(available) == 0 {
		output.PrintError("No image encoders available")
		os.Exit(1)
	}
	output.PrintSuccess("%s", registry)

	if registry.Get("avif") == nil {
		output.PrintWarning("avifenc not found in PATH; avif output is disabled")
	}
}
