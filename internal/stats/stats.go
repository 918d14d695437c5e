// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats computes the overview analytics: per-collection totals with
// a trailing-window growth percentage, and a recent-activity timeline.
// Implements: prd012-console-overview (R1-R3);
//
//	docs/ARCHITECTURE § Overview.
package stats

import (
	"math"
	"time"
)

// DefaultWindow is the trailing window compared against the preceding
// window of the same length.
const DefaultWindow = 7 * 24 * time.Hour

// Metrics summarizes one collection: its size and the growth of the
// trailing window over the window before it.
type Metrics struct {
	// Total is the number of records in the collection.
	Total int `json:"total" yaml:"total"`

	// Percent is the window-over-window growth, rounded to one decimal.
	// A prior window of zero maps to 100 when the trailing window has
	// records and 0 when it does not, so a brand-new collection reads as
	// full growth rather than a division error.
	Percent float64 `json:"percent" yaml:"percent"`
}

// Compute derives the metrics from record timestamps. Records whose
// timestamp is the zero time count toward the total but toward neither
// window.
func Compute(stamps []time.Time, now time.Time, window time.Duration) Metrics {
	if window <= 0 {
		window = DefaultWindow
	}

	cutoff := now.Add(-window)
	priorCutoff := now.Add(-2 * window)

	var recent, prior int
	for _, ts := range stamps {
		switch {
		case ts.IsZero() || ts.After(now):
			// unusable or clock-skewed
		case ts.After(cutoff):
			recent++
		case ts.After(priorCutoff):
			prior++
		}
	}

	m := Metrics{Total: len(stamps)}
	switch {
	case prior == 0 && recent > 0:
		m.Percent = 100
	case prior == 0:
		m.Percent = 0
	default:
		m.Percent = round1(float64(recent-prior) / float64(prior) * 100)
	}
	return m
}

// ResolveTime parses the first usable timestamp among the candidates,
// tried in order. It accepts the backend's ISO 8601 variants and bare
// dates; no candidate parses means the zero time.
func ResolveTime(candidates ...string) time.Time {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, c); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
