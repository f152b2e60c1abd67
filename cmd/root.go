package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treemap/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "treemap",
	Short: "Render hierarchical datasets as squarified treemaps",
	Long: `Treemap fetches one of the published hierarchical datasets (Kickstarter
pledges, movie sales or video game sales), lays it out as a treemap coloured
by category and writes it as an interactive HTML page, a standalone SVG or a
JSON layout. It can also serve the page over HTTP and expose the layout to AI
agents via MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	exitOnError(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
