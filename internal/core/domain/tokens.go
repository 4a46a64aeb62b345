package domain

import "time"

// GoogleTokens stores the OAuth token set for a user's linked Google account.
// It is embedded in the owning User and replaced wholesale on reconnect.
type GoogleTokens struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"accessToken"`
	// RefreshToken is used to obtain new access tokens.
	// Once issued it is never overwritten with an empty value.
	RefreshToken string `json:"refreshToken,omitempty"`
	// Scope is the space-separated list of granted scopes.
	Scope string `json:"scope,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"tokenType,omitempty"`
	// ExpiryDate is the absolute expiry of the access token in epoch milliseconds.
	// Zero means the provider did not report an expiry.
	ExpiryDate int64 `json:"expiryDate,omitempty"`
}

// Expiry returns ExpiryDate as a time. Zero when no expiry is known.
func (t *GoogleTokens) Expiry() time.Time {
	if t.ExpiryDate == 0 {
		return time.Time{}
	}
	return time.UnixMilli(t.ExpiryDate)
}

// SetExpiry stores an absolute expiry. A zero time clears it.
func (t *GoogleTokens) SetExpiry(expiry time.Time) {
	if expiry.IsZero() {
		t.ExpiryDate = 0
		return
	}
	t.ExpiryDate = expiry.UnixMilli()
}

// IsExpired returns true if the access token expires within buffer of now.
// Tokens without a known expiry are treated as valid.
func (t *GoogleTokens) IsExpired(now time.Time, buffer time.Duration) bool {
	if t.ExpiryDate == 0 {
		return false
	}
	return !now.Add(buffer).Before(t.Expiry())
}

// HasAccessToken returns true if an access token is present.
func (t *GoogleTokens) HasAccessToken() bool {
	return t != nil && t.AccessToken != ""
}

// HasRefreshToken returns true if a refresh token is available.
func (t *GoogleTokens) HasRefreshToken() bool {
	return t != nil && t.RefreshToken != ""
}

// Merge returns the token set that results from applying a refresh or
// exchange response to t. The refresh token is carried over when the
// response does not issue a new one, as is the scope.
func (t *GoogleTokens) Merge(next *GoogleTokens) *GoogleTokens {
	merged := *next
	if merged.RefreshToken == "" && t != nil {
		merged.RefreshToken = t.RefreshToken
	}
	if merged.Scope == "" && t != nil {
		merged.Scope = t.Scope
	}
	if merged.TokenType == "" && t != nil {
		merged.TokenType = t.TokenType
	}
	return &merged
}
