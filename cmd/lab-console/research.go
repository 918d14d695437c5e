// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lab-console/internal/auth"
	"github.com/pdiddy/lab-console/internal/client"
	"github.com/pdiddy/lab-console/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Manage the research collection",
	Long: `Research lists, creates, updates, and deletes work-in-progress research
records. Create accepts PDF and cover image attachments; the author
defaults to the signed-in user.`,
}

var researchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List research records",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := client.NewResearch(consoleConfig(), credentials())
		items, err := res.List(context.Background(), nil)
		if err != nil {
			return err
		}

		if mine, _ := cmd.Flags().GetBool("mine"); mine {
			claims := auth.ParseClaims(credentials().Token())
			items = client.Visible(items, claims)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(items)
		}
		printResearchTable(items)
		return nil
	},
}

var researchLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the newest research records",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		res := client.NewResearch(consoleConfig(), credentials())
		items, err := res.Latest(context.Background(), limit)
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(items)
		}
		printResearchTable(items)
		return nil
	},
}

var researchCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a research record, optionally with attachments",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		rec, err := loadRecord[types.Research](path)
		if err != nil {
			return err
		}
		pdf, _ := cmd.Flags().GetString("pdf")
		cover, _ := cmd.Flags().GetString("cover")

		res := client.NewResearch(consoleConfig(), credentials())
		created, err := res.Create(context.Background(), client.ResearchUpload{
			Research:  rec,
			PDFPath:   pdf,
			CoverPath: cover,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created research %s (author %s)\n", created.ID, created.Author)
		return nil
	},
}

var researchUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Replace a research record from a record file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		rec, err := loadRecord[types.Research](path)
		if err != nil {
			return err
		}

		res := client.NewResearch(consoleConfig(), credentials())
		updated, err := res.Update(context.Background(), args[0], rec)
		if err != nil {
			return err
		}
		fmt.Printf("updated research %s\n", updated.ID)
		return nil
	},
}

var researchDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a research record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := client.NewResearch(consoleConfig(), credentials())
		if err := res.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted research %s\n", args[0])
		return nil
	},
}

func printResearchTable(items []types.Research) {
	if len(items) == 0 {
		fmt.Println("No research records.")
		return
	}
	fmt.Printf("%-26s  %-44s  %-10s  %s\n", "ID", "Title", "Status", "Author")
	fmt.Println(strings.Repeat("-", 100))
	for _, r := range items {
		title := r.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		fmt.Printf("%-26s  %-44s  %-10s  %s\n", r.ID, title, r.Status, r.Author)
	}
	fmt.Printf("\n%d research record(s)\n", len(items))
}

func init() {
	researchListCmd.Flags().Bool("json", false, "output as JSON")
	researchListCmd.Flags().Bool("mine", false, "only records authored by the signed-in user (admins see all)")
	researchLatestCmd.Flags().Int("limit", 5, "number of records")
	researchLatestCmd.Flags().Bool("json", false, "output as JSON")
	researchCreateCmd.Flags().String("file", "", "record file (YAML or JSON)")
	researchCreateCmd.MarkFlagRequired("file")
	researchCreateCmd.Flags().String("pdf", "", "PDF attachment path")
	researchCreateCmd.Flags().String("cover", "", "cover image attachment path")
	researchUpdateCmd.Flags().String("file", "", "record file (YAML or JSON)")
	researchUpdateCmd.MarkFlagRequired("file")

	researchCmd.AddCommand(researchListCmd)
	researchCmd.AddCommand(researchLatestCmd)
	researchCmd.AddCommand(researchCreateCmd)
	researchCmd.AddCommand(researchUpdateCmd)
	researchCmd.AddCommand(researchDeleteCmd)

	rootCmd.AddCommand(researchCmd)
}
