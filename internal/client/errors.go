// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotAuthorized marks 401 responses so callers can suggest
// re-authentication without matching on message text.
var ErrNotAuthorized = errors.New("not authorized")

// TransportError reports a request that never completed (DNS, connection,
// TLS). It carries the target URL; it is never retried automatically.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError reports a completed request with a non-2xx status. The raw body
// is kept so the operator sees whatever the backend had to say.
type HTTPError struct {
	StatusCode int
	Status     string // e.g. "404 Not Found"
	Body       string
	URL        string
}

func (e *HTTPError) Error() string {
	detail := bodyMessage(e.Body)
	if e.StatusCode == http.StatusUnauthorized {
		if detail == "" {
			detail = "please sign in as admin"
		}
		return fmt.Sprintf("not authorized (401): %s", detail)
	}
	if detail == "" {
		return fmt.Sprintf("request failed (%s)", e.Status)
	}
	return fmt.Sprintf("request failed (%s): %s", e.Status, detail)
}

// Unwrap lets errors.Is(err, ErrNotAuthorized) work for 401 responses.
func (e *HTTPError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrNotAuthorized
	}
	return nil
}

// bodyMessage extracts a human-readable message from an error body: the
// "message" field when the body is a JSON object, otherwise the raw text.
func bodyMessage(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ""
	}
	var wrapper struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapper); err == nil && wrapper.Message != "" {
		return wrapper.Message
	}
	return trimmed
}
