// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"net/http"

	"github.com/pdiddy/lab-console/pkg/types"
)

// defaultUserAgent identifies the console when no override is configured.
const defaultUserAgent = "lab-console/0.1"

// userAgentTransport stamps every outgoing request with the configured
// User-Agent header.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(req)
}

// newHTTPClient builds the http.Client shared by a collection client. A zero
// timeout means requests run to completion or transport failure; the core
// imposes no retry and no implicit deadline.
func newHTTPClient(cfg types.HTTPConfig) *http.Client {
	agent := cfg.UserAgent
	if agent == "" {
		agent = defaultUserAgent
	}
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &userAgentTransport{
			agent: agent,
			base:  http.DefaultTransport,
		},
	}
}
