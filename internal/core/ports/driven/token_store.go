package driven

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// TokenStore persists the Google token set embedded in a user record.
// Writes replace the whole token record; concurrent writers are last-write-wins.
type TokenStore interface {
	// GetTokens returns the user's tokens.
	// Returns domain.ErrNotConnected if no tokens are on file.
	GetTokens(ctx context.Context, userID string) (*domain.GoogleTokens, error)

	// SaveTokens overwrites the user's tokens, creating the user row if needed.
	SaveTokens(ctx context.Context, userID string, tokens *domain.GoogleTokens) error

	// ClearTokens marks the user as not connected. Idempotent.
	ClearTokens(ctx context.Context, userID string) error
}
