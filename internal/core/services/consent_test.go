package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workflowhub/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

func newTestConsentService(store *memory.UserStore, provider *mockOAuthProvider) *ConsentService {
	return NewConsentService(provider, &mockStateSigner{}, newTestTokenService(store, provider))
}

func TestConsentService_BeginConsent(t *testing.T) {
	s := newTestConsentService(memory.NewUserStore(), &mockOAuthProvider{})

	url, err := s.BeginConsent(context.Background(), "u1")

	require.NoError(t, err)
	assert.Contains(t, url, "state=signed:u1")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "prompt=consent")
}

func TestConsentService_BeginConsent_NoUser(t *testing.T) {
	s := newTestConsentService(memory.NewUserStore(), &mockOAuthProvider{})
	_, err := s.BeginConsent(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestConsentService_BeginConsent_SignError(t *testing.T) {
	provider := &mockOAuthProvider{}
	s := NewConsentService(provider, &mockStateSigner{signErr: errors.New("no key")}, newTestTokenService(memory.NewUserStore(), provider))
	_, err := s.BeginConsent(context.Background(), "u1")
	assert.Error(t, err)
}

func TestConsentService_CompleteConsent_Success(t *testing.T) {
	store := memory.NewUserStore()
	provider := &mockOAuthProvider{
		exchangeResp: &domain.GoogleTokens{
			AccessToken:  "a1",
			RefreshToken: "r1",
			Scope:        domain.ScopeCalendarReadonly,
			TokenType:    "Bearer",
			ExpiryDate:   fixedNow.UnixMilli() + 3600_000,
		},
	}
	s := newTestConsentService(store, provider)
	ctx := context.Background()

	tokens, err := s.CompleteConsent(ctx, "u1", "code-1", "signed:u1")

	require.NoError(t, err)
	assert.Equal(t, "a1", tokens.AccessToken)
	assert.Equal(t, []string{"code-1"}, provider.exchangeCalls)

	stored, err := store.GetTokens(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "r1", stored.RefreshToken)
	assert.Equal(t, domain.ScopeCalendarReadonly, stored.Scope)
}

func TestConsentService_CompleteConsent_MissingCode(t *testing.T) {
	provider := &mockOAuthProvider{}
	s := newTestConsentService(memory.NewUserStore(), provider)

	_, err := s.CompleteConsent(context.Background(), "u1", "", "signed:u1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, provider.exchangeCalls)
}

func TestConsentService_CompleteConsent_StateMismatch(t *testing.T) {
	tests := []struct {
		name  string
		state string
	}{
		{"another user", "signed:u2"},
		{"tampered", "forged"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewUserStore()
			provider := &mockOAuthProvider{exchangeResp: &domain.GoogleTokens{AccessToken: "a1"}}
			s := newTestConsentService(store, provider)
			ctx := context.Background()

			_, err := s.CompleteConsent(ctx, "u1", "code-1", tt.state)

			assert.ErrorIs(t, err, domain.ErrStateMismatch)
			assert.Empty(t, provider.exchangeCalls)
			_, err = store.GetTokens(ctx, "u1")
			assert.ErrorIs(t, err, domain.ErrNotConnected, "nothing may be persisted")
			_, err = store.GetTokens(ctx, "u2")
			assert.ErrorIs(t, err, domain.ErrNotConnected)
		})
	}
}

func TestConsentService_CompleteConsent_InvalidGrant(t *testing.T) {
	store := memory.NewUserStore()
	provider := &mockOAuthProvider{exchangeErr: domain.ErrInvalidGrant}
	s := newTestConsentService(store, provider)
	ctx := context.Background()

	_, err := s.CompleteConsent(ctx, "u1", "reused", "signed:u1")

	assert.ErrorIs(t, err, domain.ErrInvalidGrant)
	_, err = store.GetTokens(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestConsentService_CompleteConsent_NoAccessToken(t *testing.T) {
	provider := &mockOAuthProvider{exchangeResp: &domain.GoogleTokens{RefreshToken: "r1"}}
	s := newTestConsentService(memory.NewUserStore(), provider)

	_, err := s.CompleteConsent(context.Background(), "u1", "code", "signed:u1")

	assert.ErrorIs(t, err, domain.ErrNoAccessToken)
}

func TestConsentService_CompleteConsent_SaveFailure(t *testing.T) {
	provider := &mockOAuthProvider{exchangeResp: &domain.GoogleTokens{AccessToken: "a1"}}
	store := &failingTokenStore{TokenStore: memory.NewUserStore(), saveErr: errors.New("read only")}
	s := NewConsentService(provider, &mockStateSigner{}, NewTokenService(store, provider))

	_, err := s.CompleteConsent(context.Background(), "u1", "code", "signed:u1")

	assert.ErrorIs(t, err, domain.ErrTokenSaveFailed)
}

func TestConsentService_Reconnect_KeepsRefreshToken(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()
	require.NoError(t, store.SaveTokens(ctx, "u1", &domain.GoogleTokens{AccessToken: "old", RefreshToken: "r1"}))

	provider := &mockOAuthProvider{exchangeResp: &domain.GoogleTokens{AccessToken: "new", Scope: "s2"}}
	s := newTestConsentService(store, provider)

	_, err := s.CompleteConsent(ctx, "u1", "code", "signed:u1")
	require.NoError(t, err)

	stored, err := store.GetTokens(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "new", stored.AccessToken)
	assert.Equal(t, "r1", stored.RefreshToken)
	assert.Equal(t, "s2", stored.Scope)
}

func TestConsentService_CompleteCallback(t *testing.T) {
	store := memory.NewUserStore()
	provider := &mockOAuthProvider{exchangeResp: &domain.GoogleTokens{AccessToken: "a1", RefreshToken: "r1"}}
	s := newTestConsentService(store, provider)
	ctx := context.Background()

	userID, err := s.CompleteCallback(ctx, "code", "signed:u7")

	require.NoError(t, err)
	assert.Equal(t, "u7", userID)
	stored, err := store.GetTokens(ctx, "u7")
	require.NoError(t, err)
	assert.Equal(t, "a1", stored.AccessToken)
}

func TestConsentService_CompleteCallback_Errors(t *testing.T) {
	provider := &mockOAuthProvider{exchangeErr: domain.ErrInvalidGrant}
	s := newTestConsentService(memory.NewUserStore(), provider)
	ctx := context.Background()

	_, err := s.CompleteCallback(ctx, "", "signed:u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.CompleteCallback(ctx, "code", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.CompleteCallback(ctx, "code", "garbage")
	assert.ErrorIs(t, err, domain.ErrStateMismatch)

	_, err = s.CompleteCallback(ctx, "code", "signed:u1")
	assert.ErrorIs(t, err, domain.ErrInvalidGrant)
}

func TestConsentService_Disconnect_Idempotent(t *testing.T) {
	store := memory.NewUserStore()
	s := newTestConsentService(store, &mockOAuthProvider{})
	ctx := context.Background()

	require.NoError(t, s.Disconnect(ctx, "u1"), "disconnect from unlinked")

	require.NoError(t, store.SaveTokens(ctx, "u1", &domain.GoogleTokens{AccessToken: "a1"}))
	require.NoError(t, s.Disconnect(ctx, "u1"))
	require.NoError(t, s.Disconnect(ctx, "u1"))

	status, err := s.Status(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, status.Connected)

	assert.ErrorIs(t, s.Disconnect(ctx, ""), domain.ErrUnauthenticated)
}

func TestConsentService_Status(t *testing.T) {
	store := memory.NewUserStore()
	s := newTestConsentService(store, &mockOAuthProvider{})
	ctx := context.Background()

	status, err := s.Status(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, status.Connected)

	require.NoError(t, store.SaveTokens(ctx, "u1", &domain.GoogleTokens{
		AccessToken: "a1", RefreshToken: "r1", Scope: "s", ExpiryDate: 42,
	}))
	status, err = s.Status(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.True(t, status.CanRefresh)
	assert.Equal(t, "s", status.Scope)
	assert.Equal(t, int64(42), status.ExpiryDate)
}
