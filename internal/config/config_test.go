package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/treemap/internal/treemap"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Dataset != "kickstarter" {
		t.Errorf("expected default dataset %q, got %q", "kickstarter", cfg.Dataset)
	}
	if cfg.Width != 1280 || cfg.Height != 800 {
		t.Errorf("expected 1280x800 canvas, got %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.PaddingInner != 1 {
		t.Errorf("expected padding_inner 1, got %v", cfg.PaddingInner)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("expected default output_dir %q, got %q", "out", cfg.OutputDir)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.treemap.yml")

	original := DefaultConfig()
	original.Dataset = "movies"
	original.Tile = "slicedice"
	original.Width = 960
	original.Summary = true
	original.Include = []string{"data/**/*.json", "extra/*.json"}
	original.Server.Port = 9090

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Dataset != original.Dataset {
		t.Errorf("dataset: got %q, want %q", loaded.Dataset, original.Dataset)
	}
	if loaded.Tile != original.Tile {
		t.Errorf("tile: got %q, want %q", loaded.Tile, original.Tile)
	}
	if loaded.Width != original.Width {
		t.Errorf("width: got %v, want %v", loaded.Width, original.Width)
	}
	if !loaded.Summary {
		t.Error("summary: got false, want true")
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("server.port: got %d, want 9090", loaded.Server.Port)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Dataset != "kickstarter" {
		t.Errorf("expected default dataset, got %q", cfg.Dataset)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("TREEMAP_DATASET", "videogames")
	t.Setenv("TREEMAP_SERVER_PORT", "9999")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Dataset != "videogames" {
		t.Errorf("env override failed: got %q, want %q", loaded.Dataset, "videogames")
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("nested env override failed: got %d, want 9999", loaded.Server.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("width: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"unknown dataset falls back", func(c *Config) { c.Dataset = "bogus" }, true},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Height = -1 }, false},
		{"negative padding", func(c *Config) { c.PaddingInner = -1 }, false},
		{"unknown tile", func(c *Config) { c.Tile = "spiral" }, false},
		{"unknown format", func(c *Config) { c.Format = "png" }, false},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, false},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, false},
		{"bad colour", func(c *Config) { c.Colors = []string{"red"} }, false},
		{"custom colours", func(c *Config) { c.Colors = []string{"#000000", "#ffffff"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDatasetKnown(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.DatasetKnown() {
		t.Error("default dataset should be known")
	}
	cfg.Dataset = "bogus"
	if cfg.DatasetKnown() {
		t.Error("bogus dataset should not be known")
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Summary = true
	opts, err := cfg.RenderOptions()
	if err != nil {
		t.Fatalf("RenderOptions: %v", err)
	}
	if opts.Width != treemap.DefaultWidth || opts.Height != treemap.DefaultHeight || opts.PaddingInner != 1 {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.Tile == nil || !opts.Summary {
		t.Errorf("tile or summary not carried: %+v", opts)
	}

	cfg.Tile = "spiral"
	if _, err := cfg.RenderOptions(); err == nil {
		t.Error("expected error for unknown tile")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.json", []string{"**/*.json"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
