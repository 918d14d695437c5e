// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/lab-console/pkg/types"
)

// TestAggregateAcrossBackends runs the full pipeline against fake backends:
// publications and programs answer, research is down.
func TestAggregateAcrossBackends(t *testing.T) {
	pubsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"_id":"p1","title":"AI in Medicine","summary":"diagnostic models"},
			{"_id":"p2","title":"Compiler Design","summary":"nothing relevant"}
		]}`))
	}))
	defer pubsSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/research"):
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"down for maintenance"}`))
		case strings.HasPrefix(r.URL.Path, "/api/programs"):
			w.Write([]byte(`[{"_id":"g1","title":"AI Fellowship","description":"funded year"}]`))
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
	agg := New(Sources(cfg, nil), cfg.Search, &warnings)

	out, err := agg.Search(context.Background(), "ai")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2: %+v", len(out.Suggestions), out.Suggestions)
	}
	if out.Suggestions[0].Title != "AI in Medicine (publication)" {
		t.Errorf("first suggestion = %q", out.Suggestions[0].Title)
	}
	if out.Suggestions[0].Description != "diagnostic models" {
		t.Errorf("publication description precedence broken: %q", out.Suggestions[0].Description)
	}
	if out.Suggestions[1].Title != "AI Fellowship (program)" {
		t.Errorf("second suggestion = %q", out.Suggestions[1].Title)
	}
	if !strings.Contains(warnings.String(), "source research failed") {
		t.Errorf("missing research warning in %q", warnings.String())
	}
}
