package driven

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// IdentityVerifier resolves a bearer credential issued by the identity provider.
type IdentityVerifier interface {
	// Verify returns the caller identity.
	// Returns domain.ErrUnauthenticated if the credential is missing, malformed or expired.
	Verify(ctx context.Context, credential string) (*domain.Identity, error)
}

// StateSigner produces the opaque state parameter carried through Google consent.
type StateSigner interface {
	// Sign returns a state value bound to the user.
	Sign(userID string) (string, error)

	// Verify returns the user the state was issued for.
	// Returns domain.ErrStateMismatch if the state is tampered, expired or malformed.
	Verify(state string) (string, error)
}
