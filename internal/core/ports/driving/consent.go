package driving

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// ConsentService runs the Google consent flow for a user.
// A user is Unlinked, PendingConsent or Linked; the linked state is derived
// from the token store alone.
type ConsentService interface {
	// BeginConsent returns the Google consent URL for the user.
	BeginConsent(ctx context.Context, userID string) (string, error)

	// CompleteConsent exchanges the code on behalf of the authenticated caller.
	// The state must have been issued to the same caller.
	CompleteConsent(ctx context.Context, callerID, code, state string) (*domain.GoogleTokens, error)

	// CompleteCallback exchanges the code for the user named by the signed state.
	// Used by the browser redirect, which carries no bearer credential.
	CompleteCallback(ctx context.Context, code, state string) (string, error)

	// Disconnect clears the user's tokens. Idempotent.
	Disconnect(ctx context.Context, userID string) error

	// Status reports whether the user is linked.
	Status(ctx context.Context, userID string) (*domain.ConnectionStatus, error)
}
