package driven

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// UserStore persists provider accounts.
type UserStore interface {
	// Upsert creates the user on first sight and refreshes email, name and
	// image otherwise. Stored Google tokens are never touched.
	Upsert(ctx context.Context, identity domain.Identity) (*domain.User, error)

	// Get retrieves a user by ID.
	// Returns domain.ErrNotFound if the user does not exist.
	Get(ctx context.Context, id string) (*domain.User, error)
}
