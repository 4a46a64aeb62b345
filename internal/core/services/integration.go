package services

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
)

// Ensure IntegrationService implements the interface.
var _ driving.IntegrationService = (*IntegrationService)(nil)

// IntegrationService reads Google data with refreshed tokens.
type IntegrationService struct {
	tokens   *TokenService
	calendar driven.CalendarFetcher
	mail     driven.MailFetcher
	drive    driven.DriveFetcher
}

// NewIntegrationService creates a new integration service.
func NewIntegrationService(
	tokens *TokenService,
	calendar driven.CalendarFetcher,
	mail driven.MailFetcher,
	drive driven.DriveFetcher,
) *IntegrationService {
	return &IntegrationService{
		tokens:   tokens,
		calendar: calendar,
		mail:     mail,
		drive:    drive,
	}
}

// CalendarEvents lists upcoming and recent events.
func (s *IntegrationService) CalendarEvents(ctx context.Context, userID string) ([]domain.CalendarEvent, error) {
	if s.calendar == nil {
		return nil, domain.ErrUnsupportedSource
	}
	tokens, err := s.tokens.Fresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.calendar.ListEvents(ctx, tokens)
}

// MailLabels lists Gmail labels.
func (s *IntegrationService) MailLabels(ctx context.Context, userID string) ([]domain.MailLabel, error) {
	if s.mail == nil {
		return nil, domain.ErrUnsupportedSource
	}
	tokens, err := s.tokens.Fresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.mail.ListLabels(ctx, tokens)
}

// DriveFiles lists recently modified Drive files.
func (s *IntegrationService) DriveFiles(ctx context.Context, userID string) ([]domain.DriveFile, error) {
	if s.drive == nil {
		return nil, domain.ErrUnsupportedSource
	}
	tokens, err := s.tokens.Fresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.drive.ListFiles(ctx, tokens)
}
