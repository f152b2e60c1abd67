package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treemap/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent renders",
	Long:  `Lists recorded renders, newest first. Use --prune to delete entries older than a duration.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("data", "", "filter by dataset key")
	historyCmd.Flags().String("outcome", "", "filter by outcome: rendered or failed")
	historyCmd.Flags().Duration("since", 0, "only show renders newer than this duration (e.g. 24h)")
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().Duration("prune", 0, "delete entries older than this duration instead of listing")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	prune, _ := cmd.Flags().GetDuration("prune")
	if prune > 0 {
		n, err := store.DeleteBefore(ctx, time.Now().Add(-prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Deleted %d entries older than %s\n", n, prune)
		return nil
	}

	ds, _ := cmd.Flags().GetString("data")
	outcome, _ := cmd.Flags().GetString("outcome")
	since, _ := cmd.Flags().GetDuration("since")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	filter := history.QueryFilter{
		Dataset: ds,
		Outcome: history.Outcome(outcome),
		Limit:   limit,
	}
	if since > 0 {
		cutoff := time.Now().Add(-since)
		filter.Since = &cutoff
	}

	entries, err := store.Query(ctx, filter)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No renders recorded. Run `treemap render` first.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tDATASET\tOUTCOME\tFORMAT\tLEAVES\tDURATION\tDETAIL")
	for _, e := range entries {
		detail := strings.Join(e.Categories, ", ")
		if e.Outcome == history.OutcomeFailed {
			detail = e.Error
		}
		if len(detail) > 60 {
			detail = detail[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%dms\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Dataset, e.Outcome, e.Format, e.Leaves, e.DurationMS, detail)
	}
	return tw.Flush()
}
