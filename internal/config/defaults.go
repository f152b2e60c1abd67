package config

import (
	"github.com/ziadkadry99/treemap/internal/dataset"
	"github.com/ziadkadry99/treemap/internal/treemap"
)

// DefaultPath is where init writes and every command reads by default.
const DefaultPath = ".treemap.yml"

// DefaultExcludes are glob patterns skipped when expanding --input.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	".treemap/**",
	"**/package.json",
	"**/package-lock.json",
	"**/tsconfig.json",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dataset:      string(dataset.Default),
		Width:        treemap.DefaultWidth,
		Height:       treemap.DefaultHeight,
		PaddingInner: 1,
		Tile:         "squarify",
		Format:       "html",
		OutputDir:    "out",
		Include:      []string{"**/*.json"},
		Exclude:      append([]string(nil), DefaultExcludes...),
		DBPath:       ".treemap/treemap.db",
		Server: ServerConfig{
			Port: 8080,
		},
	}
}
