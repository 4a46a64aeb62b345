package driven

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// OAuthProvider talks to Google's authorization server.
type OAuthProvider interface {
	// AuthCodeURL builds the consent URL. It requests offline access and
	// forces the consent prompt so a refresh token is always issued.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for tokens.
	// Returns domain.ErrInvalidGrant if the code is expired or reused.
	Exchange(ctx context.Context, code string) (*domain.GoogleTokens, error)

	// Refresh performs a refresh-token grant.
	// Returns domain.ErrReauthRequired if the grant is rejected.
	Refresh(ctx context.Context, refreshToken string) (*domain.GoogleTokens, error)
}
