package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/treemap/internal/dataset"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to treemap! Let's configure your renders.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Default dataset.
	ids := dataset.IDs()
	items := make([]string, len(ids))
	for i, id := range ids {
		items[i] = string(id)
	}
	datasetPrompt := promptui.Select{
		Label: "Select default dataset",
		Items: items,
	}
	_, ds, err := datasetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dataset selection: %w", err)
	}
	cfg.Dataset = ds

	// 2. Tiling method.
	tilePrompt := promptui.Select{
		Label: "Select tiling method",
		Items: []string{
			"squarify  - rectangles close to the golden ratio",
			"slice     - horizontal strips",
			"dice      - vertical strips",
			"slicedice - alternate by depth",
		},
	}
	tileIdx, _, err := tilePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("tile selection: %w", err)
	}
	cfg.Tile = []string{"squarify", "slice", "dice", "slicedice"}[tileIdx]

	// 3. Output format.
	formatPrompt := promptui.Select{
		Label: "Select output format",
		Items: []string{"html", "svg", "json"},
	}
	_, cfg.Format, err = formatPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("format selection: %w", err)
	}

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for rendered treemaps",
		Default: cfg.OutputDir,
	}
	cfg.OutputDir, err = outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 5. Input patterns for local documents.
	includePrompt := promptui.Prompt{
		Label:   "Input patterns for local documents (comma-separated globs)",
		Default: strings.Join(cfg.Include, ","),
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	cfg.Include = splitAndTrim(includeStr)

	// 6. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Port for treemap serve",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 7. Category totals.
	summaryPrompt := promptui.Prompt{
		Label:     "Include a category totals table",
		IsConfirm: true,
	}
	if _, err := summaryPrompt.Run(); err == nil {
		cfg.Summary = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
