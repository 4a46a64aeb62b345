package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
)

// Ensure OAuthProvider implements the interface.
var _ driven.OAuthProvider = (*OAuthProvider)(nil)

// errCodeInvalidGrant is the RFC 6749 error for expired, reused or revoked grants.
const errCodeInvalidGrant = "invalid_grant"

// OAuthProvider runs the authorization-code and refresh-token grants against Google.
type OAuthProvider struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// OAuthOption configures an OAuthProvider.
type OAuthOption func(*OAuthProvider)

// WithOAuthEndpoint overrides Google's authorization and token endpoints.
func WithOAuthEndpoint(endpoint oauth2.Endpoint) OAuthOption {
	return func(p *OAuthProvider) {
		p.config.Endpoint = endpoint
	}
}

// WithOAuthHTTPClient sets the HTTP client used for token requests.
func WithOAuthHTTPClient(client *http.Client) OAuthOption {
	return func(p *OAuthProvider) {
		p.httpClient = client
	}
}

// NewOAuthProvider creates a provider from the client configuration.
func NewOAuthProvider(settings domain.GoogleOAuthSettings, opts ...OAuthOption) *OAuthProvider {
	scopes := settings.Scopes
	if len(scopes) == 0 {
		scopes = domain.DefaultScopes()
	}
	p := &OAuthProvider{
		config: &oauth2.Config{
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			RedirectURL:  settings.RedirectURL,
			Scopes:       scopes,
			Endpoint:     googleoauth.Endpoint,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AuthCodeURL builds the consent URL. Offline access plus a forced consent
// prompt makes Google issue a refresh token on every grant.
func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*domain.GoogleTokens, error) {
	tok, err := p.config.Exchange(p.withClient(ctx), code)
	if err != nil {
		if isInvalidGrant(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidGrant, err)
		}
		return nil, fmt.Errorf("%w: exchange authorization code: %w", domain.ErrUpstream, err)
	}
	if tok.AccessToken == "" {
		return nil, domain.ErrNoAccessToken
	}
	return TokensFromOAuth2(tok), nil
}

// Refresh performs a refresh-token grant. Every failure means the stored
// grant can no longer be used without user interaction.
func (p *OAuthProvider) Refresh(ctx context.Context, refreshToken string) (*domain.GoogleTokens, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token", domain.ErrReauthRequired)
	}
	src := p.config.TokenSource(p.withClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReauthRequired, err)
	}
	return TokensFromOAuth2(tok), nil
}

func (p *OAuthProvider) withClient(ctx context.Context) context.Context {
	if p.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

func isInvalidGrant(err error) bool {
	var rerr *oauth2.RetrieveError
	return errors.As(err, &rerr) && rerr.ErrorCode == errCodeInvalidGrant
}
