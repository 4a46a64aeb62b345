package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
)

// Ensure StateSigner implements the interface.
var _ driven.StateSigner = (*StateSigner)(nil)

// stateAudience keeps consent states from being accepted as session tokens and vice versa.
const stateAudience = "workflowhub:google-consent"

// StateSigner binds the consent state parameter to a user with a short-lived JWT.
type StateSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewStateSigner creates a state signer.
func NewStateSigner(secret string, ttl time.Duration) (*StateSigner, error) {
	if secret == "" {
		return nil, errors.New("state secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("state ttl must be positive")
	}
	return &StateSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Sign returns a state value for the user.
func (s *StateSigner) Sign(userID string) (string, error) {
	if userID == "" {
		return "", domain.ErrInvalidInput
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Audience:  jwt.ClaimStrings{stateAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the user the state was issued for.
func (s *StateSigner) Verify(state string) (string, error) {
	if state == "" {
		return "", domain.ErrStateMismatch
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(state, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(stateAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrStateMismatch, err)
	}
	if claims.Subject == "" {
		return "", domain.ErrStateMismatch
	}
	return claims.Subject, nil
}
