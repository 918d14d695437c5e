// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKey(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
}

func TestTokenStoreFallbackOrder(t *testing.T) {
	dir := t.TempDir()
	writeKey(t, dir, "accessToken", "from-accessToken")
	writeKey(t, dir, "authToken", "from-authToken")
	writeKey(t, dir, "token", "from-token")

	s := TokenStore{Dir: dir}
	assert.Equal(t, "from-token", s.Token(), "the 'token' key must win")

	require.NoError(t, os.Remove(filepath.Join(dir, "token")))
	assert.Equal(t, "from-authToken", s.Token())

	require.NoError(t, os.Remove(filepath.Join(dir, "authToken")))
	assert.Equal(t, "from-accessToken", s.Token())
}

func TestTokenStoreMissingDir(t *testing.T) {
	s := TokenStore{Dir: filepath.Join(t.TempDir(), "does-not-exist")}
	assert.Equal(t, "", s.Token())
}

func TestTokenStoreSkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeKey(t, dir, "token", "  \n")
	writeKey(t, dir, "authToken", "real-token\n")

	s := TokenStore{Dir: dir}
	assert.Equal(t, "real-token", s.Token())
}

func TestTokenStoreSaveAndClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "creds")
	s := TokenStore{Dir: dir}

	require.NoError(t, s.Save("  fresh-token \n"))
	assert.Equal(t, "fresh-token", s.Token())

	writeKey(t, dir, "authToken", "legacy")
	require.NoError(t, s.Clear())
	assert.Equal(t, "", s.Token())
	require.NoError(t, s.Clear(), "clearing twice is fine")
}

// makeJWT builds an unsigned token with the given payload JSON.
func makeJWT(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + "."
}

func TestParseClaims(t *testing.T) {
	c := ParseClaims(makeJWT(`{"email":"ada@lab.org","role":"admin"}`))
	require.NotNil(t, c)
	assert.Equal(t, "ada@lab.org", c.Email)
	assert.True(t, c.Admin())
	assert.Equal(t, "ada@lab.org", c.Identity())
}

func TestParseClaimsRolesArray(t *testing.T) {
	c := ParseClaims(makeJWT(`{"sub":"u-42","roles":["editor","admin"]}`))
	require.NotNil(t, c)
	assert.True(t, c.Admin())
	assert.Equal(t, "u-42", c.Identity())
}

func TestParseClaimsIsAdminFlag(t *testing.T) {
	c := ParseClaims(makeJWT(`{"username":"grace","isAdmin":true}`))
	require.NotNil(t, c)
	assert.True(t, c.Admin())
	assert.Equal(t, "grace", c.Identity())
}

func TestParseClaimsNonAdmin(t *testing.T) {
	c := ParseClaims(makeJWT(`{"email":"bob@lab.org","role":"member"}`))
	require.NotNil(t, c)
	assert.False(t, c.Admin())
}

func TestParseClaimsFailures(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no dots", "nodots"},
		{"bad base64", "a.!!!not-base64!!!.c"},
		{"payload not json", "a." + base64.RawURLEncoding.EncodeToString([]byte("plain text")) + ".c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseClaims(tt.token))
		})
	}
}

func TestNilClaimsHelpers(t *testing.T) {
	var c *Claims
	assert.False(t, c.Admin())
	assert.Equal(t, "", c.Identity())
}
