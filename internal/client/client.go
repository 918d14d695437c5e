// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client implements the REST clients for the Innovation Lab backend:
// one thin typed client per entity collection over a shared core.
// Implements: prd010-admin-client (R1-R4);
//
//	docs/ARCHITECTURE § Client Core.
//
// The failure taxonomy is uniform across all entity types: TransportError
// for requests that never complete, HTTPError for non-2xx responses (401
// carries an authorization-specific message and unwraps to
// ErrNotAuthorized). Read operations are anonymous; mutations attach a
// bearer credential from the provider when one is present, and proceed
// without one otherwise — the backend rejects unauthorized mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/pdiddy/lab-console/internal/envelope"
	"github.com/pdiddy/lab-console/pkg/types"
)

// CredentialProvider supplies the bearer token for mutating calls. An empty
// token means "no credential"; the request is sent without one.
type CredentialProvider interface {
	Token() string
}

// Params are optional query parameters for list calls. Values may be
// strings, integers, floats, or booleans; they are URL-encoded in sorted
// key order for deterministic URLs.
type Params map[string]any

func (p Params) encode() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fmt.Sprintf("%v", p[k])))
	}
	return "?" + b.String()
}

// Client is the shared request core for one collection endpoint.
type Client struct {
	http  *http.Client
	base  string // collection endpoint, no trailing slash
	creds CredentialProvider
}

// New builds a Client for the given collection endpoint. creds may be nil
// for anonymous-only use.
func New(base string, cfg types.HTTPConfig, creds CredentialProvider) *Client {
	return &Client{
		http:  newHTTPClient(cfg),
		base:  strings.TrimRight(base, "/"),
		creds: creds,
	}
}

// Base returns the collection endpoint the client talks to.
func (c *Client) Base() string { return c.base }

func (c *Client) token() string {
	if c.creds == nil {
		return ""
	}
	return c.creds.Token()
}

// endpoint joins an already-escaped path segment onto the collection base.
func (c *Client) endpoint(path string) string {
	if path == "" {
		return c.base
	}
	return c.base + "/" + path
}

// do executes one request and applies the shared failure taxonomy. It
// returns the raw response body on 2xx.
func (c *Client) do(ctx context.Context, method, rawurl string, body io.Reader, contentType string, authed bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawurl, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: rawurl, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: rawurl, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(data),
			URL:        rawurl,
		}
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, path string, params Params) ([]byte, error) {
	return c.do(ctx, http.MethodGet, c.endpoint(path)+params.encode(), nil, "", false)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, authed bool) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return c.do(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(data), "application/json", authed)
}

func (c *Client) putJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return c.do(ctx, http.MethodPut, c.endpoint(path), bytes.NewReader(data), "application/json", true)
}

func (c *Client) delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, c.endpoint(path), nil, "", true)
}

// firstRecord returns the first normalized record of a response body, or
// nil when the body carries none. Create/update responses arrive either as
// the bare record or wrapped, so they go through the same normalization
// seam as lists.
func firstRecord(body []byte) json.RawMessage {
	records := envelope.Records(body)
	if len(records) == 0 {
		return nil
	}
	return records[0]
}
