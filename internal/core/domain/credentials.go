package domain

import "time"

// Credentials is the persisted OAuth token record for the linked Google
// account. The process holds exactly one record; it is replaced wholesale
// on every exchange or refresh, never mutated field by field.
type Credentials struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens. May be empty if
	// the provider did not grant offline access.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires. A zero Expiry means the
	// token never expires and is only refreshed on explicit failure.
	Expiry time.Time `json:"expiry,omitempty"`
	// Scopes are the scope identifiers granted with this token.
	Scopes []string `json:"scopes,omitempty"`
}

// IsExpired returns true if the access token has expired.
// A record without an expiry timestamp never expires.
func (c *Credentials) IsExpired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return !time.Now().Before(c.Expiry)
}

// HasRefreshToken returns true if a refresh token is available.
func (c *Credentials) HasRefreshToken() bool {
	return c.RefreshToken != ""
}

// Clone returns a deep copy of the record. Callers swap whole clones in
// and out of shared state so no reader observes a partial update.
func (c *Credentials) Clone() *Credentials {
	clone := *c
	clone.Scopes = append([]string(nil), c.Scopes...)
	return &clone
}
