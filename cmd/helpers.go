package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/ziadkadry99/treemap/internal/config"
	"github.com/ziadkadry99/treemap/internal/dataset"
	"github.com/ziadkadry99/treemap/internal/db"
	"github.com/ziadkadry99/treemap/internal/history"
	"github.com/ziadkadry99/treemap/internal/pipeline"
)

// loadConfig loads and validates the config file named by --config. A missing
// file is not an error; defaults and TREEMAP_* overrides apply.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `treemap init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if verbose && !cfg.DatasetKnown() {
		fmt.Fprintf(os.Stderr, "Warning: unknown dataset %q, using %s\n", cfg.Dataset, dataset.Default)
	}
	return cfg, nil
}

// openHistory opens the render history database at cfg.DBPath.
func openHistory(cfg *config.Config) (*db.DB, *history.Store, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history database: %w", err)
	}
	return database, history.NewStore(database), nil
}

// newRunner builds a pipeline runner. store may be nil to skip recording.
func newRunner(format string, store *history.Store) *pipeline.Runner {
	var recorder pipeline.Recorder
	if store != nil {
		recorder = store
	}
	runner := pipeline.New(dataset.NewLoader(nil), recorder)
	runner.Format = format
	runner.Logger = log.New(os.Stderr, "", log.LstdFlags)
	return runner
}
