// Package calendar reads events from Google Calendar.
package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/connectors/google"
	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.CalendarFetcher = (*Fetcher)(nil)

// Fetcher lists events in a bounded window around now.
type Fetcher struct {
	factory  *google.ServiceFactory
	limiters *google.RateLimiters
	config   Config
	now      func() time.Time
}

// NewFetcher creates a calendar fetcher.
func NewFetcher(factory *google.ServiceFactory, limiters *google.RateLimiters, cfg Config) *Fetcher {
	return &Fetcher{
		factory:  factory,
		limiters: limiters,
		config:   cfg,
		now:      time.Now,
	}
}

// ListEvents returns single events ordered by start time.
func (f *Fetcher) ListEvents(ctx context.Context, tokens *domain.GoogleTokens) ([]domain.CalendarEvent, error) {
	limiter := f.limiters.For(google.ServiceCalendar, google.LimiterKey(tokens))
	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}

	svc, err := f.factory.Calendar(ctx, tokens)
	if err != nil {
		return nil, google.WrapError("create calendar service", err)
	}

	now := f.now()
	resp, err := svc.Events.List(f.config.CalendarID).
		TimeMin(now.Add(-f.config.LookBack).Format(time.RFC3339)).
		TimeMax(now.Add(f.config.LookAhead).Format(time.RFC3339)).
		MaxResults(f.config.MaxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		limiter.Observe(err)
		return nil, google.WrapError("list calendar events", err)
	}

	events := make([]domain.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Id == "" {
			continue
		}
		events = append(events, eventToDomain(item))
	}
	logger.L().Debug("fetched calendar events",
		zap.Int("count", len(events)),
		zap.String("calendar_id", f.config.CalendarID))
	return events, nil
}
