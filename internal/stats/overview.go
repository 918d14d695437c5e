// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/lab-console/internal/client"
	"github.com/pdiddy/lab-console/pkg/types"
)

const defaultTimelineLimit = 5

// Overview is the dashboard summary: per-collection metrics plus the
// newest records across all collections.
type Overview struct {
	Publications Metrics `json:"publications" yaml:"publications"`
	Research     Metrics `json:"research" yaml:"research"`
	Programs     Metrics `json:"programs" yaml:"programs"`

	Timeline []types.TimelineItem `json:"timeline" yaml:"timeline"`

	// Errors notes collections that could not be fetched; their metrics
	// read as zero.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Collector assembles the overview from the entity clients.
type Collector struct {
	pubs     *client.Publications
	research *client.Research
	programs *client.Programs
	cfg      types.OverviewConfig
	warn     io.Writer
}

// NewCollector builds a collector. warn receives one line per failed
// collection.
func NewCollector(cfg types.ConsoleConfig, creds client.CredentialProvider, warn io.Writer) *Collector {
	if warn == nil {
		warn = io.Discard
	}
	return &Collector{
		pubs:     client.NewPublications(cfg, creds),
		research: client.NewResearch(cfg, creds),
		programs: client.NewPrograms(cfg, creds),
		cfg:      cfg.Overview,
		warn:     warn,
	}
}

// Collect fetches all collections concurrently and derives the overview.
// A failed collection degrades its metrics to zero; it never fails the
// overview.
func (c *Collector) Collect(ctx context.Context, now time.Time) Overview {
	window := c.cfg.Window
	limit := c.cfg.TimelineLimit
	if limit <= 0 {
		limit = defaultTimelineLimit
	}

	var (
		wg       sync.WaitGroup
		pubs     []types.Publication
		research []types.Research
		programs []types.Program
		errs     [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		pubs, errs[0] = c.pubs.List(ctx, nil)
	}()
	go func() {
		defer wg.Done()
		research, errs[1] = c.research.List(ctx, nil)
	}()
	go func() {
		defer wg.Done()
		programs, errs[2] = c.programs.List(ctx, nil)
	}()
	wg.Wait()

	var out Overview
	for i, name := range []string{"publications", "research", "programs"} {
		if errs[i] != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", name, errs[i]))
			fmt.Fprintf(c.warn, "warning: collection %s failed: %v\n", name, errs[i])
		}
	}

	var timeline []types.TimelineItem

	pubStamps := make([]time.Time, 0, len(pubs))
	for _, p := range pubs {
		ts := ResolveTime(p.CreatedAt, p.PublishedDate)
		pubStamps = append(pubStamps, ts)
		timeline = appendTimeline(timeline, p.ID, p.Title, types.TypePublication, ts)
	}
	out.Publications = Compute(pubStamps, now, window)

	resStamps := make([]time.Time, 0, len(research))
	for _, r := range research {
		ts := ResolveTime(r.CreatedAt, r.PublishedDate)
		resStamps = append(resStamps, ts)
		timeline = appendTimeline(timeline, r.ID, r.Title, types.TypeResearch, ts)
	}
	out.Research = Compute(resStamps, now, window)

	progStamps := make([]time.Time, 0, len(programs))
	for _, p := range programs {
		ts := ResolveTime(p.CreatedAt, p.StartDate)
		progStamps = append(progStamps, ts)
		timeline = appendTimeline(timeline, p.ID, p.Title, types.TypeProgram, ts)
	}
	out.Programs = Compute(progStamps, now, window)

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Time > timeline[j].Time
	})
	if len(timeline) > limit {
		timeline = timeline[:limit]
	}
	out.Timeline = timeline
	return out
}

// appendTimeline adds one record to the timeline candidates. Records
// without a usable timestamp cannot be placed and are skipped.
func appendTimeline(items []types.TimelineItem, id, title string, entity types.EntityType, ts time.Time) []types.TimelineItem {
	if ts.IsZero() {
		return items
	}
	return append(items, types.TimelineItem{
		ID:    id,
		Title: title,
		Type:  entity,
		Time:  ts.UTC().Format(time.RFC3339),
	})
}

// FormatTable writes the overview as a human-readable summary to w.
func FormatTable(o Overview, w io.Writer) {
	fmt.Fprintf(w, "%-14s  %-7s  %s\n", "Collection", "Total", "Change")
	fmt.Fprintln(w, strings.Repeat("-", 34))
	fmt.Fprintf(w, "%-14s  %-7d  %+.1f%%\n", "publications", o.Publications.Total, o.Publications.Percent)
	fmt.Fprintf(w, "%-14s  %-7d  %+.1f%%\n", "research", o.Research.Total, o.Research.Percent)
	fmt.Fprintf(w, "%-14s  %-7d  %+.1f%%\n", "programs", o.Programs.Total, o.Programs.Percent)

	if len(o.Timeline) > 0 {
		fmt.Fprintln(w, "\nRecent activity:")
		for _, item := range o.Timeline {
			fmt.Fprintf(w, "  %s  %-12s  %s\n", item.Time, item.Type, item.Title)
		}
	}
	for _, e := range o.Errors {
		fmt.Fprintf(w, "\nwarning: %s\n", e)
	}
}

// FormatJSON writes the overview as indented JSON to w.
func FormatJSON(o Overview, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}
