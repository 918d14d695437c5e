// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search aggregates cross-entity suggestions from the backend
// collections. Implements: prd011-console-search (R1-R4);
//
//	docs/ARCHITECTURE § Search.
//
// Sources are queried concurrently and settle independently: a failing
// collection degrades the result set, it never fails the search. Source
// order is fixed (publications, research, programs), so suggestion order
// is deterministic for a given set of responses.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pdiddy/lab-console/pkg/types"
)

// Source projects one backend collection into searchable records.
type Source interface {
	Name() string
	Type() types.EntityType
	Fetch(ctx context.Context) ([]Record, error)
}

// Record is one projected entity: identifier, display title, and the text
// the query is matched against.
type Record struct {
	ID          string
	Title       string
	Description string
}

const (
	defaultMinQueryLength = 2
	defaultMaxSuggestions = 8
)

// Output holds the suggestions and per-source failure notes.
type Output struct {
	Suggestions  []types.SearchSuggestion
	SourceErrors []string
}

// Aggregator fans a query out to its sources and merges the results.
type Aggregator struct {
	sources []Source
	cfg     types.SearchConfig
	warn    io.Writer
}

// New builds an aggregator. warn receives one line per failed source.
func New(sources []Source, cfg types.SearchConfig, warn io.Writer) *Aggregator {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = defaultMinQueryLength
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = defaultMaxSuggestions
	}
	if warn == nil {
		warn = io.Discard
	}
	return &Aggregator{sources: sources, cfg: cfg, warn: warn}
}

// Search matches the query against every source and returns up to
// MaxSuggestions deduplicated suggestions. Queries shorter than
// MinQueryLength after trimming return no suggestions and hit no source.
func (a *Aggregator) Search(ctx context.Context, query string) (Output, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(needle)) < a.cfg.MinQueryLength {
		return Output{}, nil
	}

	// Settle-all fan-out: indexed slots keep the fixed source order
	// regardless of which response arrives first.
	records := make([][]Record, len(a.sources))
	errs := make([]error, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			records[i], errs[i] = src.Fetch(ctx)
		}(i, src)
	}
	wg.Wait()

	var out Output
	seen := make(map[string]bool)

	for i, src := range a.sources {
		if errs[i] != nil {
			msg := fmt.Sprintf("%s: %v", src.Name(), errs[i])
			out.SourceErrors = append(out.SourceErrors, msg)
			fmt.Fprintf(a.warn, "warning: source %s failed: %v\n", src.Name(), errs[i])
			continue
		}
		for _, rec := range records[i] {
			if !matches(rec, needle) {
				continue
			}
			sug, ok := suggestion(rec, src.Type())
			if !ok || seen[sug.ID] {
				continue
			}
			seen[sug.ID] = true
			out.Suggestions = append(out.Suggestions, sug)
			if len(out.Suggestions) >= a.cfg.MaxSuggestions {
				return out, nil
			}
		}
	}
	return out, nil
}

// matches reports whether the lowercased needle occurs in the record's
// title or description.
func matches(rec Record, needle string) bool {
	return strings.Contains(strings.ToLower(rec.Title), needle) ||
		strings.Contains(strings.ToLower(rec.Description), needle)
}

// suggestion builds the cross-entity suggestion for a record. Records with
// neither an identifier nor a title cannot be routed to and are dropped.
func suggestion(rec Record, entity types.EntityType) (types.SearchSuggestion, bool) {
	id := rec.ID
	if id == "" {
		id = rec.Title
	}
	if id == "" {
		return types.SearchSuggestion{}, false
	}
	title := rec.Title
	if title == "" {
		title = "Untitled " + titleCase(string(entity))
	}
	return types.SearchSuggestion{
		ID:          id,
		Title:       fmt.Sprintf("%s (%s)", title, entity),
		Description: rec.Description,
		Type:        entity,
	}, true
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatTable writes suggestions as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Suggestions) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-12s  %s\n", "Rank", "Title", "Type", "Route")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, s := range out.Suggestions {
		title := s.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-12s  %s\n", i+1, title, s.Type, RouteFor(s))
	}

	fmt.Fprintf(w, "\n%d suggestions\n", len(out.Suggestions))
}

// FormatJSON writes suggestions as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Suggestions)
}
