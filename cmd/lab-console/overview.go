// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lab-console/internal/stats"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summarize collection sizes, growth, and recent activity",
	Long: `Overview fetches every collection and prints per-collection totals, the
trailing-window growth percentage, and a timeline of the newest records.
A collection that fails to answer reads as zero and is reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := consoleConfig()
		if window, _ := cmd.Flags().GetDuration("window"); window > 0 {
			cfg.Overview.Window = window
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			cfg.Overview.TimelineLimit = limit
		}

		col := stats.NewCollector(cfg, credentials(), os.Stderr)
		o := col.Collect(context.Background(), time.Now())

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return stats.FormatJSON(o, os.Stdout)
		}
		stats.FormatTable(o, os.Stdout)
		return nil
	},
}

func init() {
	overviewCmd.Flags().Duration("window", overviewWindow, "trailing growth window")
	overviewCmd.Flags().Int("limit", 5, "timeline entries")
	overviewCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(overviewCmd)
}
