// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lab-console/internal/client"
	"github.com/pdiddy/lab-console/pkg/types"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "Manage the programs collection",
}

var programsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all programs",
	RunE: func(cmd *cobra.Command, args []string) error {
		progs := client.NewPrograms(consoleConfig(), credentials())
		items, err := progs.List(context.Background(), nil)
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(items)
		}
		printProgramTable(items)
		return nil
	},
}

var programsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a program from a record file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		rec, err := loadRecord[types.Program](path)
		if err != nil {
			return err
		}

		progs := client.NewPrograms(consoleConfig(), credentials())
		created, err := progs.Create(context.Background(), rec)
		if err != nil {
			return err
		}
		fmt.Printf("created program %s\n", created.ID)
		return nil
	},
}

var programsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Replace a program from a record file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		rec, err := loadRecord[types.Program](path)
		if err != nil {
			return err
		}

		progs := client.NewPrograms(consoleConfig(), credentials())
		updated, err := progs.Update(context.Background(), args[0], rec)
		if err != nil {
			return err
		}
		fmt.Printf("updated program %s\n", updated.ID)
		return nil
	},
}

var programsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		progs := client.NewPrograms(consoleConfig(), credentials())
		if err := progs.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted program %s\n", args[0])
		return nil
	},
}

func printProgramTable(items []types.Program) {
	if len(items) == 0 {
		fmt.Println("No programs.")
		return
	}
	fmt.Printf("%-26s  %-40s  %-12s  %s\n", "ID", "Title", "Starts", "Deadline")
	fmt.Println(strings.Repeat("-", 96))
	for _, p := range items {
		title := p.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Printf("%-26s  %-40s  %-12s  %s\n", p.ID, title, p.StartDate, p.ApplicationDeadline)
	}
	fmt.Printf("\n%d program(s)\n", len(items))
}

func init() {
	programsListCmd.Flags().Bool("json", false, "output as JSON")
	programsCreateCmd.Flags().String("file", "", "record file (YAML or JSON)")
	programsCreateCmd.MarkFlagRequired("file")
	programsUpdateCmd.Flags().String("file", "", "record file (YAML or JSON)")
	programsUpdateCmd.MarkFlagRequired("file")

	programsCmd.AddCommand(programsListCmd)
	programsCmd.AddCommand(programsCreateCmd)
	programsCmd.AddCommand(programsUpdateCmd)
	programsCmd.AddCommand(programsDeleteCmd)

	rootCmd.AddCommand(programsCmd)
}
