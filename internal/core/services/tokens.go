package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// DefaultRefreshBuffer is how long before expiry an access token is treated as expired.
const DefaultRefreshBuffer = 60 * time.Second

// TokenService owns the Google token lifecycle for users: read, write,
// clear and refresh-on-use.
type TokenService struct {
	store         driven.TokenStore
	provider      driven.OAuthProvider
	refreshBuffer time.Duration
	now           func() time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(store driven.TokenStore, provider driven.OAuthProvider) *TokenService {
	return &TokenService{
		store:         store,
		provider:      provider,
		refreshBuffer: DefaultRefreshBuffer,
		now:           time.Now,
	}
}

// Get returns the user's stored tokens.
func (s *TokenService) Get(ctx context.Context, userID string) (*domain.GoogleTokens, error) {
	return s.store.GetTokens(ctx, userID)
}

// Save overwrites the user's stored tokens.
func (s *TokenService) Save(ctx context.Context, userID string, tokens *domain.GoogleTokens) error {
	if tokens == nil || tokens.AccessToken == "" {
		return domain.ErrNoAccessToken
	}
	return s.store.SaveTokens(ctx, userID, tokens)
}

// Clear removes the user's stored tokens.
func (s *TokenService) Clear(ctx context.Context, userID string) error {
	return s.store.ClearTokens(ctx, userID)
}

// EnsureFresh returns tokens that are safe to use. Expired tokens are refreshed
// once and the result persisted. Any refresh failure yields
// domain.ErrReauthRequired and leaves the stored record unchanged.
func (s *TokenService) EnsureFresh(
	ctx context.Context,
	userID string,
	tokens *domain.GoogleTokens,
) (*domain.GoogleTokens, error) {
	if !tokens.HasAccessToken() {
		return nil, domain.ErrNotConnected
	}
	if !tokens.IsExpired(s.now(), s.refreshBuffer) {
		return tokens, nil
	}
	if !tokens.HasRefreshToken() {
		return nil, fmt.Errorf("no refresh token on file: %w", domain.ErrReauthRequired)
	}

	log := logger.With(zap.String("user_id", userID))
	log.Debug("refreshing google access token", zap.Time("expired_at", tokens.Expiry()))

	refreshed, err := s.provider.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		log.Warn("google token refresh failed", zap.Error(err))
		if errors.Is(err, domain.ErrReauthRequired) {
			return nil, err
		}
		return nil, fmt.Errorf("refresh google tokens: %w: %w", domain.ErrReauthRequired, err)
	}
	if !refreshed.HasAccessToken() {
		return nil, fmt.Errorf("refresh returned %w: %w", domain.ErrNoAccessToken, domain.ErrReauthRequired)
	}

	merged := tokens.Merge(refreshed)
	if err := s.store.SaveTokens(ctx, userID, merged); err != nil {
		return nil, fmt.Errorf("save refreshed tokens: %w", err)
	}
	return merged, nil
}

// Fresh loads the user's tokens and ensures they are usable.
func (s *TokenService) Fresh(ctx context.Context, userID string) (*domain.GoogleTokens, error) {
	tokens, err := s.store.GetTokens(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.EnsureFresh(ctx, userID, tokens)
}
