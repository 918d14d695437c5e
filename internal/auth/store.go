// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package auth supplies the bearer credential for mutating backend calls and
// decodes JWT payloads for identity hints.
// Implements: prd010-admin-client (credential provider);
//
//	docs/ARCHITECTURE § Authentication.
//
// The credential lives in a directory of plain-text files, one file per key.
// Earlier releases of the console family stored the token under different
// names, so the keys are checked in a fixed fallback order. Sign-in and
// token issuance are out of scope: the console consumes an existing token,
// and the backend rejects unauthorized mutations on its own.
package auth

import (
	"os"
	"path/filepath"
	"strings"
)

// legacyKeys is the fixed fallback order for the token file name.
var legacyKeys = []string{"token", "authToken", "accessToken"}

// TokenStore reads the bearer token from a credentials directory. A missing
// directory or missing files are not errors; Token simply returns "".
type TokenStore struct {
	// Dir is the credentials directory (e.g. ".credentials/").
	Dir string
}

// Token returns the first non-empty token found under the legacy key names,
// trimmed of surrounding whitespace, or "" when none is present. Absence of
// a token never blocks a request.
func (s TokenStore) Token() string {
	for _, key := range legacyKeys {
		data, err := os.ReadFile(filepath.Join(s.Dir, key))
		if err != nil {
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			return v
		}
	}
	return ""
}

// Save writes the token under the primary key name, creating the
// directory when missing. The file is owner-readable only.
func (s TokenStore) Save(token string) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, legacyKeys[0]), []byte(strings.TrimSpace(token)+"\n"), 0o600)
}

// Clear removes every token file. Missing files are not errors.
func (s TokenStore) Clear() error {
	for _, key := range legacyKeys {
		if err := os.Remove(filepath.Join(s.Dir, key)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
