package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treemap/internal/dataset"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the published datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		type entry struct {
			Key     string `json:"key"`
			URL     string `json:"url"`
			Default bool   `json:"default"`
		}
		var entries []entry
		for _, id := range dataset.IDs() {
			entries = append(entries, entry{Key: string(id), URL: dataset.URL(id), Default: id == dataset.Default})
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		for _, e := range entries {
			marker := " "
			if e.Default {
				marker = "*"
			}
			fmt.Printf("%s %-12s %s\n", marker, e.Key, e.URL)
		}
		return nil
	},
}

func init() {
	datasetsCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(datasetsCmd)
}
