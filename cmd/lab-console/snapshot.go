// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lab-console/internal/snapshot"
	"github.com/pdiddy/lab-console/pkg/types"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the offline snapshot (capture, list, export)",
	Long: `Snapshot keeps an offline SQLite copy of every collection. Capture
refreshes it from the backend; list and export read it without a network.`,
}

var snapshotCaptureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Refresh the snapshot from the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := consoleConfig()
		store, err := snapshot.NewStore(cfg.Snapshot)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.Capture(context.Background(), cfg, credentials(), os.Stdout)
		if err != nil {
			return err
		}
		if len(summary.Failed) > 0 {
			return fmt.Errorf("%d collection(s) failed to capture", len(summary.Failed))
		}
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list [type]",
	Short: "List snapshotted records, optionally for one collection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entity, err := entityArg(args)
		if err != nil {
			return err
		}

		store, err := snapshot.NewStore(consoleConfig().Snapshot)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Records(context.Background(), entity)
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(records)
		}
		printSnapshotTable(records)
		return nil
	},
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export [type]",
	Short: "Export the snapshot to YAML or JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entity, err := entityArg(args)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")

		cfg := consoleConfig()
		store, err := snapshot.NewStore(cfg.Snapshot)
		if err != nil {
			return err
		}
		defer store.Close()

		switch format {
		case "yaml", "":
			if err := store.ExportYAML(context.Background(), entity); err != nil {
				return err
			}
			fmt.Printf("Exported to %s/export.yaml\n", cfg.Snapshot.Dir)
		case "json":
			if err := store.ExportJSON(context.Background(), entity); err != nil {
				return err
			}
			fmt.Printf("Exported to %s/export.json\n", cfg.Snapshot.Dir)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		return nil
	},
}

// entityArg parses the optional collection argument.
func entityArg(args []string) (types.EntityType, error) {
	if len(args) == 0 {
		return "", nil
	}
	switch args[0] {
	case "publication", "publications":
		return types.TypePublication, nil
	case "research":
		return types.TypeResearch, nil
	case "program", "programs":
		return types.TypeProgram, nil
	case "event", "events":
		return types.TypeEvent, nil
	default:
		return "", fmt.Errorf("unknown collection %q: use publications, research, programs, or events", args[0])
	}
}

func printSnapshotTable(records []snapshot.Record) {
	if len(records) == 0 {
		fmt.Println("Snapshot is empty; run snapshot capture first.")
		return
	}
	fmt.Printf("%-26s  %-12s  %-44s  %s\n", "ID", "Type", "Title", "Created")
	fmt.Println(strings.Repeat("-", 100))
	for _, r := range records {
		title := r.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		fmt.Printf("%-26s  %-12s  %-44s  %s\n", r.ID, r.Type, title, r.CreatedAt)
	}
	fmt.Printf("\n%d record(s)\n", len(records))
}

func init() {
	snapshotListCmd.Flags().Bool("json", false, "output as JSON")
	snapshotExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	snapshotCmd.AddCommand(snapshotCaptureCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)

	rootCmd.AddCommand(snapshotCmd)
}
