package services

import (
	"context"
	"errors"
	"strings"
	stdsync "sync"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
)

// --- Mock implementations shared by service tests ---

// mockOAuthProvider implements driven.OAuthProvider.
type mockOAuthProvider struct {
	mu           stdsync.Mutex
	exchangeResp *domain.GoogleTokens
	exchangeErr  error
	refreshResp  *domain.GoogleTokens
	refreshErr   error

	exchangeCalls []string
	refreshCalls  []string
}

var _ driven.OAuthProvider = (*mockOAuthProvider)(nil)

func (m *mockOAuthProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?access_type=offline&prompt=consent&state=" + state
}

func (m *mockOAuthProvider) Exchange(_ context.Context, code string) (*domain.GoogleTokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchangeCalls = append(m.exchangeCalls, code)
	if m.exchangeErr != nil {
		return nil, m.exchangeErr
	}
	tokens := *m.exchangeResp
	return &tokens, nil
}

func (m *mockOAuthProvider) Refresh(_ context.Context, refreshToken string) (*domain.GoogleTokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshCalls = append(m.refreshCalls, refreshToken)
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	tokens := *m.refreshResp
	return &tokens, nil
}

// mockStateSigner implements driven.StateSigner with a readable format.
type mockStateSigner struct {
	signErr error
}

var _ driven.StateSigner = (*mockStateSigner)(nil)

func (m *mockStateSigner) Sign(userID string) (string, error) {
	if m.signErr != nil {
		return "", m.signErr
	}
	return "signed:" + userID, nil
}

func (m *mockStateSigner) Verify(state string) (string, error) {
	userID, ok := strings.CutPrefix(state, "signed:")
	if !ok || userID == "" {
		return "", domain.ErrStateMismatch
	}
	return userID, nil
}

// mockFetchers implements all three fetcher ports and records the token it was given.
type mockFetchers struct {
	events    []domain.CalendarEvent
	labels    []domain.MailLabel
	files     []domain.DriveFile
	err       error
	gotTokens *domain.GoogleTokens
}

var (
	_ driven.CalendarFetcher = (*mockFetchers)(nil)
	_ driven.MailFetcher     = (*mockFetchers)(nil)
	_ driven.DriveFetcher    = (*mockFetchers)(nil)
)

func (m *mockFetchers) ListEvents(_ context.Context, tokens *domain.GoogleTokens) ([]domain.CalendarEvent, error) {
	m.gotTokens = tokens
	return m.events, m.err
}

func (m *mockFetchers) ListLabels(_ context.Context, tokens *domain.GoogleTokens) ([]domain.MailLabel, error) {
	m.gotTokens = tokens
	return m.labels, m.err
}

func (m *mockFetchers) ListFiles(_ context.Context, tokens *domain.GoogleTokens) ([]domain.DriveFile, error) {
	m.gotTokens = tokens
	return m.files, m.err
}

// failingTokenStore wraps a TokenStore and fails writes.
type failingTokenStore struct {
	driven.TokenStore
	saveErr error
}

func (f *failingTokenStore) SaveTokens(ctx context.Context, userID string, tokens *domain.GoogleTokens) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.TokenStore.SaveTokens(ctx, userID, tokens)
}

// flakyWorkflowStore wraps a WorkflowStore and fails Create for chosen titles.
type flakyWorkflowStore struct {
	driven.WorkflowStore
	failTitles map[string]bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyWorkflowStore) Create(ctx context.Context, workflow *domain.Workflow) error {
	if f.failTitles[workflow.Title] {
		return errDiskFull
	}
	return f.WorkflowStore.Create(ctx, workflow)
}

// mockIdentityVerifier implements driven.IdentityVerifier.
type mockIdentityVerifier struct {
	identities map[string]domain.Identity
}

var _ driven.IdentityVerifier = (*mockIdentityVerifier)(nil)

func (m *mockIdentityVerifier) Verify(_ context.Context, credential string) (*domain.Identity, error) {
	identity, ok := m.identities[credential]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return &identity, nil
}

// staticConfigStore is a config store without watch support.
type staticConfigStore struct {
	driven.ConfigStore
}
