package google

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

func TestTokensToOAuth2(t *testing.T) {
	expiry := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	tokens := &domain.GoogleTokens{AccessToken: "a", RefreshToken: "r"}
	tokens.SetExpiry(expiry)

	tok := TokensToOAuth2(tokens)
	assert.Equal(t, "a", tok.AccessToken)
	assert.Equal(t, "r", tok.RefreshToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.True(t, expiry.Equal(tok.Expiry))
}

func TestTokenSource_ReturnsStoredToken(t *testing.T) {
	tok, err := TokenSource(&domain.GoogleTokens{AccessToken: "a", TokenType: "Bearer"}).Token()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.AccessToken)
}

func TestTokensFromOAuth2_Scope(t *testing.T) {
	tok := (&oauth2.Token{AccessToken: "a"}).WithExtra(map[string]any{"scope": "email profile"})

	tokens := TokensFromOAuth2(tok)
	assert.Equal(t, "email profile", tokens.Scope)
	assert.Zero(t, tokens.ExpiryDate)
}
