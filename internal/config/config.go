// Package config loads the project configuration, read once at process
// start and threaded explicitly through the pipeline entry points.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/3-lines-studio/heimdall/internal/imgtypes"
)

const FileName = "heimdall.config.json"

type Config struct {
	// Base is the site base path prepended to emitted asset paths.
	Base string `json:"base"`
	// Image configures the asset pipeline; Image.Service selects the
	// active transform service.
	Image imgtypes.ImageConfig `json:"image"`
}

func Default(projectDir string) Config {
	return Config{
		Image: imgtypes.ImageConfig{
			Service:       "local",
			EndpointRoute: imgtypes.DefaultEndpointRoute,
			Root:          projectDir,
		},
	}
}

// Load reads heimdall.config.json from projectDir. A missing file means
// defaults; a malformed one is an error.
func Load(projectDir string) (Config, error) {
	cfg := Default(projectDir)

	data, err := os.ReadFile(filepath.Join(projectDir, FileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", FileName, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", FileName, err)
	}

	if cfg.Image.Service == "" {
		cfg.Image.Service = "local"
	}
	if cfg.Image.Root == "" {
		cfg.Image.Root = projectDir
	}
	cfg.Image.Base = cfg.Base
	return cfg, nil
}
