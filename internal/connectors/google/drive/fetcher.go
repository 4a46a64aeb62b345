// Package drive reads file metadata from Google Drive.
package drive

import (
	"context"

	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/connectors/google"
	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.DriveFetcher = (*Fetcher)(nil)

// Query parameters for the file listing.
const (
	DefaultPageSize = 50
	orderByModified = "modifiedTime desc"
	queryNotTrashed = "trashed = false"
)

// Fetcher lists recently modified Drive files.
type Fetcher struct {
	factory  *google.ServiceFactory
	limiters *google.RateLimiters
	pageSize int64
}

// NewFetcher creates a Drive fetcher.
func NewFetcher(factory *google.ServiceFactory, limiters *google.RateLimiters) *Fetcher {
	return &Fetcher{factory: factory, limiters: limiters, pageSize: DefaultPageSize}
}

// ListFiles returns the most recently modified non-trashed files.
func (f *Fetcher) ListFiles(ctx context.Context, tokens *domain.GoogleTokens) ([]domain.DriveFile, error) {
	limiter := f.limiters.For(google.ServiceDrive, google.LimiterKey(tokens))
	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}

	svc, err := f.factory.Drive(ctx, tokens)
	if err != nil {
		return nil, google.WrapError("create drive service", err)
	}

	resp, err := svc.Files.List().
		PageSize(f.pageSize).
		OrderBy(orderByModified).
		Q(queryNotTrashed).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		limiter.Observe(err)
		return nil, google.WrapError("list drive files", err)
	}

	files := make([]domain.DriveFile, 0, len(resp.Files))
	for _, file := range resp.Files {
		if file == nil || file.Id == "" {
			continue
		}
		files = append(files, fileToDomain(file))
	}

	logger.L().Debug("fetched drive files", zap.Int("count", len(files)))
	return files, nil
}
