// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lab-console/pkg/types"
)

func TestEventsFeaturedPath(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{"data":[{"_id":"e1","title":"Open Day","isFeatured":true}]}`))
	}))
	defer srv.Close()

	events := NewEvents(testConfig("", srv.URL, ""), nil)
	got, err := events.Featured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/featured", path)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsFeatured)
}

func TestEventsRegisterIsAnonymous(t *testing.T) {
	var path, auth string
	var att types.Attendee
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &att))
		w.Write([]byte(`{"message":"registered"}`))
	}))
	defer srv.Close()

	events := NewEvents(testConfig("", srv.URL, ""), staticCreds("tok"))
	err := events.Register(context.Background(), "e1", types.Attendee{
		Name:  "Ada",
		Email: "ada@example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, "/e1/register", path)
	assert.Empty(t, auth, "registration must not leak the operator credential")
	assert.Equal(t, "ada@example.org", att.Email)
}

func TestEventsUpdateRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(`{"_id":"e1","title":"Renamed","status":"ongoing"}`))
	}))
	defer srv.Close()

	events := NewEvents(testConfig("", srv.URL, ""), staticCreds("tok"))
	got, err := events.Update(context.Background(), "e1", types.Event{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, types.EventOngoing, got.Status)
}
