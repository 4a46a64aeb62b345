package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// Ensure ConsentService implements the interface.
var _ driving.ConsentService = (*ConsentService)(nil)

// ConsentService runs the Google authorization-code flow.
type ConsentService struct {
	provider driven.OAuthProvider
	signer   driven.StateSigner
	tokens   *TokenService
}

// NewConsentService creates a new consent service.
func NewConsentService(provider driven.OAuthProvider, signer driven.StateSigner, tokens *TokenService) *ConsentService {
	return &ConsentService{
		provider: provider,
		signer:   signer,
		tokens:   tokens,
	}
}

// BeginConsent returns the consent URL with a state bound to the user.
func (s *ConsentService) BeginConsent(_ context.Context, userID string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	state, err := s.signer.Sign(userID)
	if err != nil {
		return "", fmt.Errorf("sign consent state: %w", err)
	}
	return s.provider.AuthCodeURL(state), nil
}

// CompleteConsent exchanges the code for the authenticated caller.
func (s *ConsentService) CompleteConsent(
	ctx context.Context,
	callerID, code, state string,
) (*domain.GoogleTokens, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: authorization code is required", domain.ErrInvalidInput)
	}
	owner, err := s.signer.Verify(state)
	if err != nil {
		return nil, err
	}
	if owner != callerID {
		logger.With(zap.String("user_id", callerID)).Warn("consent state issued to another user")
		return nil, domain.ErrStateMismatch
	}
	return s.exchange(ctx, owner, code)
}

// CompleteCallback exchanges the code for the user named in the state.
func (s *ConsentService) CompleteCallback(ctx context.Context, code, state string) (string, error) {
	if code == "" || state == "" {
		return "", fmt.Errorf("%w: code and state are required", domain.ErrInvalidInput)
	}
	owner, err := s.signer.Verify(state)
	if err != nil {
		return "", err
	}
	if _, err := s.exchange(ctx, owner, code); err != nil {
		return owner, err
	}
	return owner, nil
}

func (s *ConsentService) exchange(ctx context.Context, userID, code string) (*domain.GoogleTokens, error) {
	issued, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	if !issued.HasAccessToken() {
		return nil, domain.ErrNoAccessToken
	}

	// A reconnect may omit the refresh token; keep the one on file.
	previous, err := s.tokens.Get(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotConnected) {
		return nil, fmt.Errorf("load existing tokens: %w", err)
	}
	tokens := previous.Merge(issued)

	if err := s.tokens.Save(ctx, userID, tokens); err != nil {
		logger.With(zap.String("user_id", userID)).Error("saving google tokens failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenSaveFailed, err)
	}
	logger.With(zap.String("user_id", userID)).Info("google account connected", zap.String("scope", tokens.Scope))
	return tokens, nil
}

// Disconnect clears the user's tokens.
func (s *ConsentService) Disconnect(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return s.tokens.Clear(ctx, userID)
}

// Status reports the user's link state.
func (s *ConsentService) Status(ctx context.Context, userID string) (*domain.ConnectionStatus, error) {
	tokens, err := s.tokens.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotConnected) {
		return &domain.ConnectionStatus{Connected: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.ConnectionStatus{
		Connected:  true,
		Scope:      tokens.Scope,
		ExpiryDate: tokens.ExpiryDate,
		CanRefresh: tokens.HasRefreshToken(),
	}, nil
}
