package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService provisions users from verified identities.
type UserService struct {
	verifier driven.IdentityVerifier
	users    driven.UserStore
}

// NewUserService creates a new user service.
func NewUserService(verifier driven.IdentityVerifier, users driven.UserStore) *UserService {
	return &UserService{
		verifier: verifier,
		users:    users,
	}
}

// Authenticate verifies the credential and upserts the user.
func (s *UserService) Authenticate(ctx context.Context, credential string) (*domain.User, error) {
	if credential == "" {
		return nil, domain.ErrUnauthenticated
	}
	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Upsert(ctx, *identity)
	if err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}
	return user, nil
}
