package rest

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// mockUserService accepts the token "good-token" as user "user-1".
type mockUserService struct {
	calls int
}

func (m *mockUserService) Authenticate(_ context.Context, credential string) (*domain.User, error) {
	m.calls++
	if credential != "good-token" {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.User{ID: "user-1", Email: "user@example.com"}, nil
}

type mockConsentService struct {
	beginErr     error
	completeErr  error
	callbackErr  error
	disconnected []string
	status       *domain.ConnectionStatus
	gotCaller    string
	gotCode      string
	gotState     string
}

func (m *mockConsentService) BeginConsent(_ context.Context, userID string) (string, error) {
	if m.beginErr != nil {
		return "", m.beginErr
	}
	return "https://accounts.google.com/o/oauth2/auth?state=signed:" + userID, nil
}

func (m *mockConsentService) CompleteConsent(_ context.Context, callerID, code, state string) (*domain.GoogleTokens, error) {
	m.gotCaller, m.gotCode, m.gotState = callerID, code, state
	if m.completeErr != nil {
		return nil, m.completeErr
	}
	return &domain.GoogleTokens{AccessToken: "a", Scope: "email", ExpiryDate: 1740834000000}, nil
}

func (m *mockConsentService) CompleteCallback(_ context.Context, code, state string) (string, error) {
	m.gotCode, m.gotState = code, state
	if m.callbackErr != nil {
		return "", m.callbackErr
	}
	return "user-1", nil
}

func (m *mockConsentService) Disconnect(_ context.Context, userID string) error {
	m.disconnected = append(m.disconnected, userID)
	return nil
}

func (m *mockConsentService) Status(_ context.Context, _ string) (*domain.ConnectionStatus, error) {
	if m.status == nil {
		return &domain.ConnectionStatus{}, nil
	}
	return m.status, nil
}

type mockIntegrationService struct {
	err    error
	events []domain.CalendarEvent
	labels []domain.MailLabel
	files  []domain.DriveFile
}

func (m *mockIntegrationService) CalendarEvents(context.Context, string) ([]domain.CalendarEvent, error) {
	return m.events, m.err
}

func (m *mockIntegrationService) MailLabels(context.Context, string) ([]domain.MailLabel, error) {
	return m.labels, m.err
}

func (m *mockIntegrationService) DriveFiles(context.Context, string) ([]domain.DriveFile, error) {
	return m.files, m.err
}

type mockImportService struct {
	err       error
	gotSource domain.ImportSource
	gotUser   string
}

func (m *mockImportService) ImportFrom(_ context.Context, source domain.ImportSource, userID string) (*domain.ImportResult, error) {
	m.gotSource, m.gotUser = source, userID
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ImportResult{
		Source:        source,
		Total:         3,
		ImportedCount: 1,
		Workflows:     []domain.Workflow{{ID: "wf-1", Title: "Weekly sync", OwnerID: userID}},
		Skipped:       []domain.SkippedRecord{{RecordID: "r2", Reason: "record has no title"}},
		Failed:        []domain.FailedRecord{{RecordID: "r3", Title: "x", Error: "disk full"}},
	}, nil
}

type mockWorkflowService struct {
	viewErr error
}

func (m *mockWorkflowService) ListMine(_ context.Context, userID string) ([]domain.Workflow, error) {
	return []domain.Workflow{{ID: "wf-1", OwnerID: userID}}, nil
}

func (m *mockWorkflowService) View(_ context.Context, userID, workflowID string) (*domain.Workflow, error) {
	if m.viewErr != nil {
		return nil, m.viewErr
	}
	return &domain.Workflow{ID: workflowID, OwnerID: userID}, nil
}
