package driven

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// Fetchers receive a fresh token set and perform one read against a Google API.
// Every fetcher returns domain.ErrReauthRequired on HTTP 401 and wraps other
// API failures with domain.ErrUpstream.

// CalendarFetcher lists events from the user's primary calendar.
type CalendarFetcher interface {
	// ListEvents returns up to 50 single events between now-7d and now+30d, ordered by start.
	ListEvents(ctx context.Context, tokens *domain.GoogleTokens) ([]domain.CalendarEvent, error)
}

// MailFetcher lists Gmail labels.
type MailFetcher interface {
	// ListLabels returns every label, system labels first, each group sorted by name.
	ListLabels(ctx context.Context, tokens *domain.GoogleTokens) ([]domain.MailLabel, error)
}

// DriveFetcher lists Drive files.
type DriveFetcher interface {
	// ListFiles returns the 50 most recently modified non-trashed files.
	ListFiles(ctx context.Context, tokens *domain.GoogleTokens) ([]domain.DriveFile, error)
}
