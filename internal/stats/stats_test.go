// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/lab-console/pkg/types"
)

var now = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func stampsAt(offsets ...time.Duration) []time.Time {
	out := make([]time.Time, len(offsets))
	for i, off := range offsets {
		out[i] = now.Add(-off)
	}
	return out
}

const day = 24 * time.Hour

func TestComputePercent(t *testing.T) {
	cases := []struct {
		name    string
		stamps  []time.Time
		percent float64
	}{
		{"empty prior with growth", stampsAt(1*day, 2*day, 3*day), 100},
		{"both windows empty", stampsAt(30*day, 40*day), 0},
		{"no records at all", nil, 0},
		{"shrink", stampsAt(1*day, 2*day, 3*day, 4*day, 8*day, 9*day, 10*day, 11*day, 12*day, 13*day), -33.3},
		{"equal windows", stampsAt(1*day, 8*day), 0},
		{"doubling", stampsAt(1*day, 2*day, 8*day), 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := Compute(c.stamps, now, 7*day)
			if m.Percent != c.percent {
				t.Errorf("Percent = %v, want %v", m.Percent, c.percent)
			}
			if m.Total != len(c.stamps) {
				t.Errorf("Total = %d, want %d", m.Total, len(c.stamps))
			}
		})
	}
}

func TestComputeSkipsUnusableStamps(t *testing.T) {
	stamps := append(stampsAt(1*day), time.Time{}, now.Add(time.Hour))
	m := Compute(stamps, now, 7*day)
	if m.Total != 3 {
		t.Errorf("Total = %d, want 3", m.Total)
	}
	// only the 1-day-old stamp lands in a window
	if m.Percent != 100 {
		t.Errorf("Percent = %v, want 100", m.Percent)
	}
}

func TestResolveTimeCandidateOrder(t *testing.T) {
	got := ResolveTime("2026-08-01T00:00:00Z", "2026-01-01")
	if got.Month() != time.August {
		t.Errorf("first candidate should win, got %v", got)
	}

	got = ResolveTime("", "not-a-date", "2026-01-15")
	if got.Day() != 15 {
		t.Errorf("fallthrough failed, got %v", got)
	}

	if !ResolveTime("", "garbage").IsZero() {
		t.Error("unparsable candidates should yield the zero time")
	}
}

func TestCollectOverview(t *testing.T) {
	recent := now.Add(-1 * day).Format(time.RFC3339)
	prior := now.Add(-10 * day).Format(time.RFC3339)

	pubsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"_id":"p1","title":"New Paper","createdAt":"` + recent + `"},
			{"_id":"p2","title":"Old Paper","createdAt":"` + prior + `"}
		]`))
	}))
	defer pubsSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/research"):
			w.Write([]byte(`{"data":[{"_id":"r1","title":"Fresh Study","createdAt":"` + recent + `"}]}`))
		case strings.HasPrefix(r.URL.Path, "/api/programs"):
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	defer apiSrv.Close()

	cfg := types.ConsoleConfig{
		Endpoints: types.EndpointConfig{
			PublicationsBase: pubsSrv.URL,
			APIBase:          apiSrv.URL,
		},
	}

	var warnings bytes.Buffer
	col := NewCollector(cfg, nil, &warnings)
	o := col.Collect(context.Background(), now)

	if o.Publications.Total != 2 || o.Publications.Percent != 0 {
		t.Errorf("publications = %+v", o.Publications)
	}
	if o.Research.Total != 1 || o.Research.Percent != 100 {
		t.Errorf("research = %+v", o.Research)
	}
	if o.Programs.Total != 0 {
		t.Errorf("failed collection should read zero, got %+v", o.Programs)
	}
	if len(o.Errors) != 1 || !strings.Contains(o.Errors[0], "programs") {
		t.Errorf("Errors = %v", o.Errors)
	}
	if !strings.Contains(warnings.String(), "collection programs failed") {
		t.Errorf("warnings = %q", warnings.String())
	}

	if len(o.Timeline) != 3 {
		t.Fatalf("timeline length = %d, want 3", len(o.Timeline))
	}
	// two recent records sort before the old paper; order among equals is stable
	if o.Timeline[2].ID != "p2" {
		t.Errorf("timeline order wrong: %+v", o.Timeline)
	}
}

func TestTimelineLimit(t *testing.T) {
	recent := now.Add(-1 * day).Format(time.RFC3339)
	pubsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		b.WriteString(`[`)
		for i := 0; i < 10; i++ {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(`{"_id":"p` + string(rune('0'+i)) + `","title":"P","createdAt":"` + recent + `"}`)
		}
		b.WriteString(`]`)
		w.Write([]byte(b.String()))
	}))
	defer pubsSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer apiSrv.Close()

	cfg := types.ConsoleConfig{
		Endpoints: types.EndpointConfig{
			PublicationsBase: pubsSrv.URL,
			APIBase:          apiSrv.URL,
		},
	}

	col := NewCollector(cfg, nil, nil)
	o := col.Collect(context.Background(), now)
	if len(o.Timeline) != defaultTimelineLimit {
		t.Errorf("timeline length = %d, want %d", len(o.Timeline), defaultTimelineLimit)
	}
}
