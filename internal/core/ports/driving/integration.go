package driving

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// IntegrationService reads from Google on behalf of a linked user.
// Tokens are refreshed before each call when they have expired.
type IntegrationService interface {
	CalendarEvents(ctx context.Context, userID string) ([]domain.CalendarEvent, error)
	MailLabels(ctx context.Context, userID string) ([]domain.MailLabel, error)
	DriveFiles(ctx context.Context, userID string) ([]domain.DriveFile, error)
}
