package identity

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
)

// Ensure JWTVerifier implements the interface.
var _ driven.IdentityVerifier = (*JWTVerifier)(nil)

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HS256 session tokens issued by the identity provider.
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewJWTVerifier creates a verifier. Issuer and audience are checked when non-empty.
func NewJWTVerifier(secret, issuer, audience string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTVerifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}, nil
}

// Verify parses and validates the token and returns the caller identity.
func (v *JWTVerifier) Verify(_ context.Context, credential string) (*domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(credential, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}
	if slices.Contains(claims.Audience, stateAudience) {
		return nil, fmt.Errorf("%w: consent state is not a session token", domain.ErrUnauthenticated)
	}

	return &domain.Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Image:   claims.Picture,
	}, nil
}

// Issue signs a session token for the identity. It is used by the dev-token
// command and by tests; production tokens come from the identity provider.
func (v *JWTVerifier) Issue(identity domain.Identity, ttl time.Duration) (string, error) {
	now := v.now()
	claims := SessionClaims{
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
