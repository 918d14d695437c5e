// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lab-console/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search across publications, research, and programs",
	Long: `Search matches a query against every collection concurrently and prints
up to 8 deduplicated suggestions with their console routes. A collection
that fails to answer degrades the result set, it never fails the search.

With --watch, queries are read line by line from stdin and debounced, so
a burst of refinements issues one search.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := consoleConfig()
	agg := search.New(search.Sources(cfg, credentials()), cfg.Search, os.Stderr)

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return runSearchWatch(cmd, agg)
	}

	query := strings.Join(args, " ")
	if loadPath, _ := cmd.Flags().GetString("load"); loadPath != "" {
		return runSearchLoad(cmd, loadPath)
	}
	if query == "" {
		return fmt.Errorf("query required: pass a query argument, --load, or --watch")
	}

	out, err := agg.Search(context.Background(), query)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := search.WriteQueryFile(savePath, query, cfg.Search, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved search to %s\n", savePath)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return search.FormatJSON(out, os.Stdout)
	}
	search.FormatTable(out, os.Stdout)
	return nil
}

// runSearchLoad replays a saved search without touching the backend.
func runSearchLoad(cmd *cobra.Command, path string) error {
	qf, err := search.ReadQueryFile(path)
	if err != nil {
		return err
	}
	out := search.Output{Suggestions: qf.Suggestions, SourceErrors: qf.Summary.SourceErrors}

	fmt.Fprintf(os.Stderr, "saved search %q from %s\n", qf.Query, qf.Summary.Timestamp.Format("2006-01-02 15:04"))
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return search.FormatJSON(out, os.Stdout)
	}
	search.FormatTable(out, os.Stdout)
	return nil
}

// runSearchWatch reads queries from stdin and issues a debounced search
// per quiet period.
func runSearchWatch(cmd *cobra.Command, agg *search.Aggregator) error {
	cfg := consoleConfig()
	debouncer := search.NewDebouncer(cfg.Search.DebounceDelay)
	defer debouncer.Stop()

	jsonOut, _ := cmd.Flags().GetBool("json")

	// one search prints at a time
	var mu sync.Mutex

	fmt.Fprintln(os.Stderr, "type to search, empty line to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		query := scanner.Text()
		if strings.TrimSpace(query) == "" {
			break
		}
		debouncer.Trigger(func() {
			out, err := agg.Search(context.Background(), query)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
				return
			}
			fmt.Printf("\n> %s\n", query)
			if jsonOut {
				search.FormatJSON(out, os.Stdout)
				return
			}
			search.FormatTable(out, os.Stdout)
		})
	}
	return scanner.Err()
}

func init() {
	searchCmd.Flags().Bool("json", false, "output suggestions as JSON")
	searchCmd.Flags().String("save", "", "save the query and suggestions to a YAML file")
	searchCmd.Flags().String("load", "", "replay a saved search file instead of querying")
	searchCmd.Flags().Bool("watch", false, "read queries from stdin with debouncing")

	rootCmd.AddCommand(searchCmd)
}
