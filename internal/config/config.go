package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/treemap/internal/dataset"
	"github.com/ziadkadry99/treemap/internal/render"
	"github.com/ziadkadry99/treemap/internal/treemap"
)

const envPrefix = "TREEMAP_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TREEMAP_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// TREEMAP_WIDTH -> width, TREEMAP_SERVER_PORT -> server.port.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "server_"); ok {
		return "server." + rest
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values. An unknown
// dataset key is not an error here: it falls back to the default when used.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.PaddingInner < 0 {
		return fmt.Errorf("padding_inner must be non-negative")
	}
	if _, err := treemap.ParseTile(c.Tile); err != nil {
		return err
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	for _, col := range c.Colors {
		if !strings.HasPrefix(col, "#") {
			return fmt.Errorf("invalid colour %q: want #rrggbb", col)
		}
	}
	return nil
}

// DatasetKnown reports whether the configured dataset key names a real dataset.
func (c *Config) DatasetKnown() bool {
	return dataset.Known(c.Dataset)
}

// RenderOptions converts the configuration into layout and render options.
func (c *Config) RenderOptions() (render.Options, error) {
	tile, err := treemap.ParseTile(c.Tile)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Width:        c.Width,
		Height:       c.Height,
		PaddingInner: c.PaddingInner,
		Tile:         tile,
		Colors:       c.Colors,
		Summary:      c.Summary,
	}, nil
}
