// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/lab-console/pkg/types"
)

func fakeBackend(t *testing.T, failPrograms bool) types.ConsoleConfig {
	t.Helper()

	pubsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"p1","title":"Paper One","summary":"s1","createdAt":"2026-08-01T00:00:00Z"}]`))
	}))
	t.Cleanup(pubsSrv.Close)

	eventsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"_id":"e1","title":"Open Day","startDate":"2026-09-01"}]}`))
	}))
	t.Cleanup(eventsSrv.Close)

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/research"):
			w.Write([]byte(`[{"_id":"r1","title":"Study","createdAt":"2026-08-02T00:00:00Z"}]`))
		case strings.HasPrefix(r.URL.Path, "/api/programs"):
			if failPrograms {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`[{"_id":"g1","title":"Fellowship","startDate":"2026-10-01"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(apiSrv.Close)

	return types.ConsoleConfig{
		Endpoints: types.EndpointConfig{
			PublicationsBase: pubsSrv.URL,
			EventsBase:       eventsSrv.URL,
			APIBase:          apiSrv.URL,
		},
	}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(types.SnapshotConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestCaptureAllCollections(t *testing.T) {
	s, _ := newTestStore(t)
	cfg := fakeBackend(t, false)

	var out bytes.Buffer
	summary, err := s.Capture(context.Background(), cfg, nil, &out)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total() != 4 || len(summary.Failed) != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if !strings.Contains(out.String(), "captured publication (1 records)") {
		t.Errorf("output = %q", out.String())
	}

	records, err := s.Records(context.Background(), types.TypePublication)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "p1" || records[0].Description != "s1" {
		t.Errorf("records = %+v", records)
	}

	var payload types.Publication
	if err := json.Unmarshal(records[0].Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Summary != "s1" {
		t.Errorf("payload lost fields: %+v", payload)
	}

	taken, err := s.TakenAt(context.Background(), types.TypePublication)
	if err != nil {
		t.Fatal(err)
	}
	if taken.IsZero() {
		t.Error("capture time not recorded")
	}
}

func TestFailedCollectionKeepsPreviousSnapshot(t *testing.T) {
	s, _ := newTestStore(t)

	var out bytes.Buffer
	if _, err := s.Capture(context.Background(), fakeBackend(t, false), nil, &out); err != nil {
		t.Fatal(err)
	}

	summary, err := s.Capture(context.Background(), fakeBackend(t, true), nil, &out)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Failed) != 1 || !strings.Contains(summary.Failed[0], "program") {
		t.Fatalf("Failed = %v", summary.Failed)
	}

	records, err := s.Records(context.Background(), types.TypeProgram)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("previous program snapshot lost: %+v", records)
	}
}

func TestRecordsAllCollectionsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)
	var out bytes.Buffer
	if _, err := s.Capture(context.Background(), fakeBackend(t, false), nil, &out); err != nil {
		t.Fatal(err)
	}

	records, err := s.Records(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	if records[0].ID != "g1" {
		t.Errorf("newest-first order wrong: %+v", records)
	}
}

func TestExports(t *testing.T) {
	s, dir := newTestStore(t)
	var out bytes.Buffer
	if _, err := s.Capture(context.Background(), fakeBackend(t, false), nil, &out); err != nil {
		t.Fatal(err)
	}

	if err := s.ExportJSON(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}
	var entries []Record
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("export has %d entries, want 4", len(entries))
	}

	if err := s.ExportYAML(context.Background(), types.TypeEvent); err != nil {
		t.Fatal(err)
	}
	yamlData, err := os.ReadFile(filepath.Join(dir, "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(yamlData), "Open Day") {
		t.Errorf("yaml export missing event: %s", yamlData)
	}
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(types.SnapshotConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if _, err := s.Capture(context.Background(), fakeBackend(t, false), nil, &out); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := NewStore(types.SnapshotConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	records, err := s2.Records(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Errorf("reopened store has %d records, want 4", len(records))
	}
}
