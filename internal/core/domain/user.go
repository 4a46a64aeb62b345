package domain

import "time"

// User is a provider account. The ID is the identity provider's subject
// and is unique across the system.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`

	// GoogleTokens is nil until the user completes Google consent.
	GoogleTokens *GoogleTokens `json:"googleTokens,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsGoogleConnected returns true if the user has a usable Google token set on file.
func (u *User) IsGoogleConnected() bool {
	return u != nil && u.GoogleTokens.HasAccessToken()
}

// Identity is the verified caller of a request, as asserted by the identity provider.
type Identity struct {
	// Subject is the stable user id.
	Subject string
	Email   string
	Name    string
	Image   string
}

// ConnectionStatus reports whether a user's Google account is linked.
type ConnectionStatus struct {
	Connected  bool   `json:"connected"`
	Scope      string `json:"scope,omitempty"`
	ExpiryDate int64  `json:"expiryDate,omitempty"`
	// CanRefresh is true when a refresh token is on file.
	CanRefresh bool `json:"canRefresh"`
}
