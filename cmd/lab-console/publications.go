// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lab-console/internal/client"
	"github.com/pdiddy/lab-console/internal/collection"
	"github.com/pdiddy/lab-console/pkg/types"
)

var publicationsCmd = &cobra.Command{
	Use:     "publications",
	Aliases: []string{"pubs"},
	Short:   "Manage the publications collection",
	Long: `Publications lists, shows, creates, updates, and deletes publication
records. Create and update read the record from a YAML or JSON file.`,
}

var publicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all publications",
	RunE: func(cmd *cobra.Command, args []string) error {
		pubs := client.NewPublications(consoleConfig(), credentials())
		items, err := pubs.List(context.Background(), nil)
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(items)
		}
		printPublicationTable(items)
		return nil
	},
}

var publicationsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one publication",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pubs := client.NewPublications(consoleConfig(), credentials())
		pub, err := pubs.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printYAML(pub)
	},
}

var publicationsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a publication from a record file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		rec, err := loadRecord[types.Publication](path)
		if err != nil {
			return err
		}

		pubs := client.NewPublications(consoleConfig(), credentials())
		created, err := pubs.Create(context.Background(), rec)
		if err != nil {
			return err
		}
		fmt.Printf("created publication %s\n", created.ID)
		return nil
	},
}

var publicationsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Replace a publication from a record file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		rec, err := loadRecord[types.Publication](path)
		if err != nil {
			return err
		}

		pubs := client.NewPublications(consoleConfig(), credentials())
		updated, err := pubs.Update(context.Background(), args[0], rec)
		if err != nil {
			return err
		}
		fmt.Printf("updated publication %s\n", updated.ID)
		return nil
	},
}

var publicationsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a publication",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pubs := client.NewPublications(consoleConfig(), credentials())
		if err := pubs.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted publication %s\n", args[0])
		return nil
	},
}

// batchOp is one entry in a batch file.
type batchOp struct {
	Op     string            `yaml:"op" json:"op"` // create, update, delete
	ID     string            `yaml:"id,omitempty" json:"id,omitempty"`
	Record types.Publication `yaml:"record,omitempty" json:"record,omitempty"`
}

var publicationsBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Apply a batch of mutations from an operations file",
	Long: `Batch reads an operations file (a YAML list of create/update/delete
entries), applies every mutation to a local working copy first, then
settles each against the backend. Failed mutations roll back locally and
are reported; the rest proceed.`,
	RunE: runPublicationsBatch,
}

func runPublicationsBatch(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	ops, err := loadRecord[[]batchOp](path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pubs := client.NewPublications(consoleConfig(), credentials())

	items, err := pubs.List(ctx, nil)
	if err != nil {
		return err
	}
	store := collection.NewStore(items,
		func(p types.Publication) string { return p.ID },
		func(p *types.Publication, id string) { p.ID = id })

	var failed int
	for i, op := range ops {
		if err := settleOp(ctx, pubs, store, op); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "op %d (%s): %v\n", i+1, op.Op, err)
		}
	}

	fmt.Printf("applied %d operation(s), %d failed; collection now has %d record(s)\n",
		len(ops)-failed, failed, len(store.Items()))
	if failed > 0 {
		return fmt.Errorf("%d operation(s) failed", failed)
	}
	return nil
}

// settleOp stages one mutation optimistically and confirms or rolls it
// back on the backend's answer.
func settleOp(ctx context.Context, pubs *client.Publications, store *collection.Store[types.Publication], op batchOp) error {
	switch strings.ToLower(op.Op) {
	case "create":
		placeholder := store.StageCreate(op.Record)
		created, err := pubs.Create(ctx, op.Record)
		if err != nil {
			store.Rollback(placeholder)
			return err
		}
		return store.Confirm(placeholder, created)
	case "update":
		if err := store.StageUpdate(op.ID, op.Record); err != nil {
			return err
		}
		updated, err := pubs.Update(ctx, op.ID, op.Record)
		if err != nil {
			store.Rollback(op.ID)
			return err
		}
		return store.Confirm(op.ID, updated)
	case "delete":
		if err := store.StageDelete(op.ID); err != nil {
			return err
		}
		if err := pubs.Delete(ctx, op.ID); err != nil {
			store.Rollback(op.ID)
			return err
		}
		return store.Confirm(op.ID, types.Publication{})
	default:
		return fmt.Errorf("unknown op %q: use create, update, or delete", op.Op)
	}
}

func printPublicationTable(items []types.Publication) {
	if len(items) == 0 {
		fmt.Println("No publications.")
		return
	}
	fmt.Printf("%-26s  %-50s  %-12s  %s\n", "ID", "Title", "Published", "Featured")
	fmt.Println(strings.Repeat("-", 100))
	for _, p := range items {
		title := p.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		featured := ""
		if p.IsFeatured {
			featured = "yes"
		}
		fmt.Printf("%-26s  %-50s  %-12s  %s\n", p.ID, title, p.PublishedDate, featured)
	}
	fmt.Printf("\n%d publication(s)\n", len(items))
}

func init() {
	publicationsListCmd.Flags().Bool("json", false, "output as JSON")
	publicationsCreateCmd.Flags().String("file", "", "record file (YAML or JSON)")
	publicationsCreateCmd.MarkFlagRequired("file")
	publicationsUpdateCmd.Flags().String("file", "", "record file (YAML or JSON)")
	publicationsUpdateCmd.MarkFlagRequired("file")
	publicationsBatchCmd.Flags().String("file", "", "operations file (YAML or JSON)")
	publicationsBatchCmd.MarkFlagRequired("file")

	publicationsCmd.AddCommand(publicationsListCmd)
	publicationsCmd.AddCommand(publicationsGetCmd)
	publicationsCmd.AddCommand(publicationsCreateCmd)
	publicationsCmd.AddCommand(publicationsUpdateCmd)
	publicationsCmd.AddCommand(publicationsDeleteCmd)
	publicationsCmd.AddCommand(publicationsBatchCmd)

	rootCmd.AddCommand(publicationsCmd)
}
