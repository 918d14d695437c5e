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

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage the events collection",
	Long: `Events lists, shows, creates, updates, and deletes events, and registers
attendees. Registration is open to the public and needs no credential.`,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	RunE: func(cmd *cobra.Command, args []string) error {
		events := client.NewEvents(consoleConfig(), credentials())

		var items []types.Event
		var err error
		if featured, _ := cmd.Flags().GetBool("featured"); featured {
			items, err = events.Featured(context.Background())
		} else {
			items, err = events.List(context.Background(), nil)
		}
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(items)
		}
		printEventTable(items)
		return nil
	},
}

var eventsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events := client.NewEvents(consoleConfig(), credentials())
		ev, err := events.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printYAML(ev)
	},
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event from a record file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		rec, err := loadRecord[types.Event](path)
		if err != nil {
			return err
		}

		events := client.NewEvents(consoleConfig(), credentials())
		created, err := events.Create(context.Background(), rec)
		if err != nil {
			return err
		}
		fmt.Printf("created event %s\n", created.ID)
		return nil
	},
}

var eventsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Replace an event from a record file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		rec, err := loadRecord[types.Event](path)
		if err != nil {
			return err
		}

		events := client.NewEvents(consoleConfig(), credentials())
		updated, err := events.Update(context.Background(), args[0], rec)
		if err != nil {
			return err
		}
		fmt.Printf("updated event %s\n", updated.ID)
		return nil
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events := client.NewEvents(consoleConfig(), credentials())
		if err := events.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted event %s\n", args[0])
		return nil
	},
}

var eventsRegisterCmd = &cobra.Command{
	Use:   "register [id]",
	Short: "Register an attendee for an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		events := client.NewEvents(consoleConfig(), credentials())
		err := events.Register(context.Background(), args[0], types.Attendee{
			Name:  name,
			Email: email,
		})
		if err != nil {
			return err
		}
		fmt.Printf("registered %s for event %s\n", email, args[0])
		return nil
	},
}

func printEventTable(items []types.Event) {
	if len(items) == 0 {
		fmt.Println("No events.")
		return
	}
	fmt.Printf("%-26s  %-36s  %-12s  %-10s  %s\n", "ID", "Title", "Starts", "Status", "Registered")
	fmt.Println(strings.Repeat("-", 100))
	for _, e := range items {
		title := e.Title
		if len(title) > 36 {
			title = title[:33] + "..."
		}
		registered := fmt.Sprintf("%d", e.RegisteredCount)
		if e.Capacity > 0 {
			registered = fmt.Sprintf("%d/%d", e.RegisteredCount, e.Capacity)
		}
		fmt.Printf("%-26s  %-36s  %-12s  %-10s  %s\n", e.ID, title, e.StartDate, e.Status, registered)
	}
	fmt.Printf("\n%d event(s)\n", len(items))
}

func init() {
	eventsListCmd.Flags().Bool("json", false, "output as JSON")
	eventsListCmd.Flags().Bool("featured", false, "only featured events")
	eventsCreateCmd.Flags().String("file", "", "record file (YAML or JSON)")
	eventsCreateCmd.MarkFlagRequired("file")
	eventsUpdateCmd.Flags().String("file", "", "record file (YAML or JSON)")
	eventsUpdateCmd.MarkFlagRequired("file")
	eventsRegisterCmd.Flags().String("name", "", "attendee name")
	eventsRegisterCmd.Flags().String("email", "", "attendee email")
	eventsRegisterCmd.MarkFlagRequired("email")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsGetCmd)
	eventsCmd.AddCommand(eventsCreateCmd)
	eventsCmd.AddCommand(eventsUpdateCmd)
	eventsCmd.AddCommand(eventsDeleteCmd)
	eventsCmd.AddCommand(eventsRegisterCmd)

	rootCmd.AddCommand(eventsCmd)
}
