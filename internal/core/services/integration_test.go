package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workflowhub/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

func TestIntegrationService_PassesStoredTokens(t *testing.T) {
	users := memory.NewUserStore()
	fetchers := &mockFetchers{
		events: []domain.CalendarEvent{{ID: "e1"}},
		labels: []domain.MailLabel{{ID: "l1"}},
		files:  []domain.DriveFile{{ID: "f1"}},
	}
	s := NewIntegrationService(newTestTokenService(users, &mockOAuthProvider{}), fetchers, fetchers, fetchers)
	ctx := context.Background()
	require.NoError(t, users.SaveTokens(ctx, "u1", &domain.GoogleTokens{AccessToken: "a1"}))

	events, err := s.CalendarEvents(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "a1", fetchers.gotTokens.AccessToken)

	labels, err := s.MailLabels(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, labels, 1)

	files, err := s.DriveFiles(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestIntegrationService_NotConnected(t *testing.T) {
	fetchers := &mockFetchers{}
	s := NewIntegrationService(newTestTokenService(memory.NewUserStore(), &mockOAuthProvider{}), fetchers, fetchers, fetchers)

	_, err := s.CalendarEvents(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Nil(t, fetchers.gotTokens)
}

func TestIntegrationService_ReauthOnFailedRefresh(t *testing.T) {
	users := memory.NewUserStore()
	fetchers := &mockFetchers{}
	provider := &mockOAuthProvider{refreshErr: domain.ErrReauthRequired}
	s := NewIntegrationService(newTestTokenService(users, provider), fetchers, fetchers, fetchers)
	ctx := context.Background()
	require.NoError(t, users.SaveTokens(ctx, "u1", &domain.GoogleTokens{AccessToken: "a1", RefreshToken: "r1", ExpiryDate: 1}))

	_, err := s.DriveFiles(ctx, "u1")

	assert.ErrorIs(t, err, domain.ErrReauthRequired)
	assert.Nil(t, fetchers.gotTokens)
}

func TestIntegrationService_MissingFetcher(t *testing.T) {
	s := NewIntegrationService(newTestTokenService(memory.NewUserStore(), &mockOAuthProvider{}), nil, nil, nil)
	ctx := context.Background()

	_, err := s.CalendarEvents(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
	_, err = s.MailLabels(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
	_, err = s.DriveFiles(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
}
