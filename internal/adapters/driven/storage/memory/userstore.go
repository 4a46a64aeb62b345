package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
)

// Ensure UserStore implements the interfaces.
var (
	_ driven.UserStore  = (*UserStore)(nil)
	_ driven.TokenStore = (*UserStore)(nil)
)

// UserStore is an in-memory implementation of driven.UserStore and driven.TokenStore.
// Tokens live inside the user record, as they do in the SQLite store.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
	now   func() time.Time
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]domain.User),
		now:   time.Now,
	}
}

// Upsert creates or refreshes a user's profile fields.
func (s *UserStore) Upsert(_ context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.Subject == "" {
		return nil, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	user, ok := s.users[identity.Subject]
	if !ok {
		user = domain.User{ID: identity.Subject, CreatedAt: now}
	}
	user.Email = identity.Email
	user.Name = identity.Name
	user.Image = identity.Image
	user.UpdatedAt = now
	s.users[user.ID] = user

	return copyUser(user), nil
}

// Get retrieves a user by ID.
func (s *UserStore) Get(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyUser(user), nil
}

// GetTokens returns the user's Google tokens.
func (s *UserStore) GetTokens(_ context.Context, userID string) (*domain.GoogleTokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok || !user.GoogleTokens.HasAccessToken() {
		return nil, domain.ErrNotConnected
	}
	tokens := *user.GoogleTokens
	return &tokens, nil
}

// SaveTokens overwrites the user's Google tokens.
func (s *UserStore) SaveTokens(_ context.Context, userID string, tokens *domain.GoogleTokens) error {
	if userID == "" || tokens == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	user, ok := s.users[userID]
	if !ok {
		user = domain.User{ID: userID, CreatedAt: now}
	}
	stored := *tokens
	user.GoogleTokens = &stored
	user.UpdatedAt = now
	s.users[userID] = user
	return nil
}

// ClearTokens removes the user's Google tokens.
func (s *UserStore) ClearTokens(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil
	}
	user.GoogleTokens = nil
	user.UpdatedAt = s.now()
	s.users[userID] = user
	return nil
}

func copyUser(user domain.User) *domain.User {
	if user.GoogleTokens != nil {
		tokens := *user.GoogleTokens
		user.GoogleTokens = &tokens
	}
	return &user
}
