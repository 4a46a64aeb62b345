package google

import (
	"golang.org/x/oauth2"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// TokenSource wraps stored tokens as a static oauth2.TokenSource.
// Refresh is handled before the call by the token service, so the source
// never refreshes on its own.
func TokenSource(tokens *domain.GoogleTokens) oauth2.TokenSource {
	return oauth2.StaticTokenSource(TokensToOAuth2(tokens))
}

// TokensToOAuth2 converts stored tokens to an oauth2.Token.
func TokensToOAuth2(tokens *domain.GoogleTokens) *oauth2.Token {
	tokenType := tokens.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokenType,
		Expiry:       tokens.Expiry(),
	}
}

// TokensFromOAuth2 converts an oauth2.Token from a token endpoint response.
// Google reports the granted scopes in the "scope" field of the response.
func TokensFromOAuth2(tok *oauth2.Token) *domain.GoogleTokens {
	tokens := &domain.GoogleTokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		tokens.Scope = scope
	}
	tokens.SetExpiry(tok.Expiry)
	return tokens
}
