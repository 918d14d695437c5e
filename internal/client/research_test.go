// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lab-console/internal/auth"
	"github.com/pdiddy/lab-console/pkg/types"
)

func TestResearchCreateMultipartFields(t *testing.T) {
	var gotFields map[string]string
	var gotFiles map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotFields[k] = v[0]
		}
		gotFiles = map[string]string{}
		for k, headers := range r.MultipartForm.File {
			f, err := headers[0].Open()
			require.NoError(t, err)
			data, err := io.ReadAll(f)
			f.Close()
			require.NoError(t, err)
			gotFiles[k] = string(data)
		}
		w.Write([]byte(`{"_id":"r1","title":"Graph Models"}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	pdf := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4 stub"), 0o644))

	res := NewResearch(testConfig("", "", srv.URL), staticCreds("tok"))
	created, err := res.Create(context.Background(), ResearchUpload{
		Research: types.Research{
			Title:    "Graph Models",
			Summary:  "short",
			Abstract: "long",
			Tags:     []string{"graphs", "ml"},
			Author:   "ada@example.org",
		},
		PDFPath: pdf,
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", created.ID)

	assert.Equal(t, "Graph Models", gotFields["title"])
	assert.Equal(t, "ongoing", gotFields["status"])
	assert.Equal(t, `["graphs","ml"]`, gotFields["tags"])
	assert.Equal(t, "ada@example.org", gotFields["author"])
	assert.NotContains(t, gotFields, "publishedDate")
	assert.Equal(t, "%PDF-1.4 stub", gotFiles["pdfFile"])
	assert.NotContains(t, gotFiles, "coverImage")
}

func TestResearchCreateAuthorFromToken(t *testing.T) {
	var author string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		author = r.FormValue("author")
		w.Write([]byte(`{"_id":"r2"}`))
	}))
	defer srv.Close()

	payload, _ := json.Marshal(map[string]any{"email": "grace@example.org"})
	token := "h." + base64.RawURLEncoding.EncodeToString(payload) + ".s"

	res := NewResearch(testConfig("", "", srv.URL), staticCreds(token))
	_, err := res.Create(context.Background(), ResearchUpload{
		Research: types.Research{Title: "Untitled"},
	})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.org", author)
}

func TestResearchLatestServerSorted(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`[{"_id":"new","createdAt":"2026-08-02T00:00:00Z"},
			{"_id":"old","createdAt":"2026-07-01T00:00:00Z"}]`))
	}))
	defer srv.Close()

	res := NewResearch(testConfig("", "", srv.URL), nil)
	got, err := res.Latest(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Contains(t, query, "limit=2")
	assert.Contains(t, query, "sort=")
}

func TestResearchLatestFallbackSortsClientSide(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.RawQuery != "" {
			// sorted page unsupported
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`[
			{"_id":"mid","createdAt":"2026-08-10T00:00:00Z"},
			{"_id":"newest","createdAt":"2026-08-20T00:00:00Z"},
			{"_id":"oldest","createdAt":"2026-08-01T00:00:00Z"}
		]`))
	}))
	defer srv.Close()

	res := NewResearch(testConfig("", "", srv.URL), nil)
	got, err := res.Latest(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, got, 2)
	assert.Equal(t, "newest", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
}

func TestVisibleFiltersByAuthor(t *testing.T) {
	items := []types.Research{
		{ID: "r1", Author: "ada@example.org"},
		{ID: "r2", Author: "grace@example.org"},
	}

	admin := &auth.Claims{Email: "boss@example.org", Role: "admin"}
	assert.Len(t, Visible(items, admin), 2)

	ada := &auth.Claims{Email: "ada@example.org"}
	got := Visible(items, ada)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)

	assert.Len(t, Visible(items, nil), 2)
}
