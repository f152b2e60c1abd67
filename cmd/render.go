package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treemap/internal/dataset"
	"github.com/ziadkadry99/treemap/internal/history"
	"github.com/ziadkadry99/treemap/internal/pipeline"
	"github.com/ziadkadry99/treemap/internal/progress"
	"github.com/ziadkadry99/treemap/internal/render"
	"github.com/ziadkadry99/treemap/internal/termview"
	"github.com/ziadkadry99/treemap/internal/walker"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one or more datasets to files",
	Long: `Fetches a dataset, lays it out as a treemap and writes it to the output
directory. Use --all for every published dataset, or --input / --dir to render
local documents with the same schema.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("data", "", "dataset key: kickstarter, movies or videogames (default from config)")
	renderCmd.Flags().Bool("all", false, "render every published dataset")
	renderCmd.Flags().StringSlice("input", nil, "glob patterns of local documents (supports **)")
	renderCmd.Flags().String("dir", "", "walk a directory for local documents using the config include/exclude patterns")
	renderCmd.Flags().String("format", "", "output format: html, svg or json (default from config)")
	renderCmd.Flags().StringP("output", "o", "", "output directory (default from config)")
	renderCmd.Flags().Bool("preview", false, "print a terminal preview of each treemap")
	renderCmd.Flags().Bool("no-history", false, "do not record renders in the history database")
	rootCmd.AddCommand(renderCmd)
}

// renderJob is one document to render. Exactly one of key and path is set.
type renderJob struct {
	name string
	key  string
	path string
}

func runRender(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	formatName, _ := cmd.Flags().GetString("format")
	if formatName == "" {
		formatName = cfg.Format
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	jobs, err := collectJobs(cmd, cfg.Dataset, cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(os.Stderr, "No documents matched.")
		return nil
	}

	var store *history.Store
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory {
		database, s, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		store = s
	}
	runner := newRunner(string(format), store)
	// Failures are reported once, by reportFailure.
	runner.Logger = log.New(io.Discard, "", 0)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	preview, _ := cmd.Flags().GetBool("preview")

	var reporter progress.Reporter
	if len(jobs) > 1 && !preview {
		reporter = progress.NewReporter()
		reporter.Start(len(jobs))
	}

	var failed int
	for i, job := range jobs {
		if reporter != nil {
			reporter.Update(i, job.name)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "Rendering %s...\n", job.name)
		}

		var res *pipeline.Result
		if job.path != "" {
			res = runner.RunFile(ctx, job.path, opts)
		} else {
			res = runner.Run(ctx, job.key, opts)
		}
		if res.State != pipeline.Rendered {
			failed++
			reportFailure(reporter, job.name, res.Err)
			continue
		}

		outPath := filepath.Join(outputDir, job.name+format.Ext())
		if err := writeScene(res.Scene, outPath, format); err != nil {
			failed++
			reportFailure(reporter, job.name, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "  %s: %d tiles, %d categories -> %s\n",
				job.name, len(res.Scene.Tiles), len(res.Scene.Categories), outPath)
		}
		if preview {
			fmt.Println(termview.Render(res.Scene, termview.DefaultOptions()))
			fmt.Println()
		}
	}
	if reporter != nil {
		reporter.Update(len(jobs), "done")
		reporter.Finish()
	}

	fmt.Fprintf(os.Stderr, "Rendered %d of %d treemaps to %s in %s\n",
		len(jobs)-failed, len(jobs), outputDir, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d of %d renders failed", failed, len(jobs))
	}
	return nil
}

// collectJobs turns the source flags into render jobs. --input and --dir take
// precedence over --all, which takes precedence over --data.
func collectJobs(cmd *cobra.Command, defaultKey string, include, exclude []string) ([]renderJob, error) {
	inputs, _ := cmd.Flags().GetStringSlice("input")
	dir, _ := cmd.Flags().GetString("dir")
	all, _ := cmd.Flags().GetBool("all")
	key, _ := cmd.Flags().GetString("data")

	var jobs []renderJob
	switch {
	case len(inputs) > 0 || dir != "":
		var paths []string
		if len(inputs) > 0 {
			expanded, err := walker.Expand(inputs, exclude)
			if err != nil {
				return nil, err
			}
			paths = append(paths, expanded...)
		}
		if dir != "" {
			files, err := walker.Walk(walker.WalkerConfig{
				RootDir: dir,
				Include: include,
				Exclude: exclude,
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", dir, err)
			}
			for _, f := range files {
				paths = append(paths, f.Path)
			}
		}
		seen := make(map[string]bool)
		for _, p := range paths {
			name := fileJobName(p)
			if seen[name] {
				continue
			}
			seen[name] = true
			jobs = append(jobs, renderJob{name: name, path: p})
		}
	case all:
		for _, id := range dataset.IDs() {
			jobs = append(jobs, renderJob{name: string(id), key: string(id)})
		}
	default:
		if key == "" {
			key = defaultKey
		}
		id, _ := dataset.Resolve(key)
		jobs = append(jobs, renderJob{name: string(id), key: key})
	}
	return jobs, nil
}

// fileJobName derives an output name from a document path, keeping enough of
// the directory to tell same-named files apart.
func fileJobName(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, abs); err == nil && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
	}
	path = strings.TrimSuffix(filepath.ToSlash(path), filepath.Ext(path))
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", "_")
}

func reportFailure(reporter progress.Reporter, name string, err error) {
	if reporter != nil {
		reporter.Fail(name, err)
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", name, err)
}

func writeScene(scene *render.Scene, path string, format render.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := scene.Write(f, format); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
