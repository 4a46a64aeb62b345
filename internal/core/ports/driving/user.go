package driving

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// UserService resolves request credentials to provisioned users.
type UserService interface {
	// Authenticate verifies the credential and upserts the user.
	// Returns domain.ErrUnauthenticated for any verification failure.
	Authenticate(ctx context.Context, credential string) (*domain.User, error)
}
