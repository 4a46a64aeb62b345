// Package gmail reads labels from Gmail.
package gmail

import (
	"context"

	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/connectors/google"
	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.MailFetcher = (*Fetcher)(nil)

// authenticatedUser is Gmail's alias for the token owner.
const authenticatedUser = "me"

// Fetcher lists Gmail labels.
type Fetcher struct {
	factory  *google.ServiceFactory
	limiters *google.RateLimiters
}

// NewFetcher creates a Gmail fetcher.
func NewFetcher(factory *google.ServiceFactory, limiters *google.RateLimiters) *Fetcher {
	return &Fetcher{factory: factory, limiters: limiters}
}

// ListLabels returns every label, system labels first and each group sorted by name.
func (f *Fetcher) ListLabels(ctx context.Context, tokens *domain.GoogleTokens) ([]domain.MailLabel, error) {
	limiter := f.limiters.For(google.ServiceGmail, google.LimiterKey(tokens))
	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}

	svc, err := f.factory.Gmail(ctx, tokens)
	if err != nil {
		return nil, google.WrapError("create gmail service", err)
	}

	resp, err := svc.Users.Labels.List(authenticatedUser).Context(ctx).Do()
	if err != nil {
		limiter.Observe(err)
		return nil, google.WrapError("list gmail labels", err)
	}

	labels := make([]domain.MailLabel, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		if l == nil {
			continue
		}
		labels = append(labels, labelToDomain(l))
	}
	domain.SortMailLabels(labels)

	logger.L().Debug("fetched gmail labels", zap.Int("count", len(labels)))
	return labels, nil
}
