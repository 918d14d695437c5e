// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Claims are the JWT payload fields the console reads. Signature
// verification is deliberately absent: the token is decoded only for
// identity hints (author attribution, admin visibility), and the backend
// remains the authority on every mutation.
type Claims struct {
	Email    string   `json:"email"`
	Sub      string   `json:"sub"`
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Roles    []string `json:"roles"`
	IsAdmin  bool     `json:"isAdmin"`
}

// ParseClaims decodes the payload segment of a JWT. It returns nil on any
// failure: a missing or unparsable token means "no identity", never an error.
func ParseClaims(token string) *Claims {
	if token == "" {
		return nil
	}
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil
	}

	payload := strings.TrimRight(parts[1], "=")
	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		// Some issuers emit standard base64 payloads.
		decoded, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil
		}
	}

	var c Claims
	if err := json.Unmarshal(decoded, &c); err != nil {
		return nil
	}
	return &c
}

// Admin reports whether the claims describe an admin user.
func (c *Claims) Admin() bool {
	if c == nil {
		return false
	}
	if c.Role == "admin" || c.IsAdmin {
		return true
	}
	for _, r := range c.Roles {
		if r == "admin" {
			return true
		}
	}
	return false
}

// Identity returns the best identity string for author attribution:
// email, then sub, then username.
func (c *Claims) Identity() string {
	if c == nil {
		return ""
	}
	switch {
	case c.Email != "":
		return c.Email
	case c.Sub != "":
		return c.Sub
	default:
		return c.Username
	}
}
