package google

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// ServiceFactory builds Google API clients authorised with a user's tokens.
type ServiceFactory struct {
	baseClient *http.Client
	endpoint   string
}

// ServiceOption configures a ServiceFactory.
type ServiceOption func(*ServiceFactory)

// WithBaseHTTPClient sets the transport the authorised client wraps.
func WithBaseHTTPClient(client *http.Client) ServiceOption {
	return func(f *ServiceFactory) {
		f.baseClient = client
	}
}

// WithEndpoint points every service at a different base URL.
func WithEndpoint(endpoint string) ServiceOption {
	return func(f *ServiceFactory) {
		f.endpoint = endpoint
	}
}

// NewServiceFactory creates a factory.
func NewServiceFactory(opts ...ServiceOption) *ServiceFactory {
	f := &ServiceFactory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Calendar creates a Google Calendar API service.
func (f *ServiceFactory) Calendar(ctx context.Context, tokens *domain.GoogleTokens) (*calendar.Service, error) {
	return calendar.NewService(ctx, f.options(ctx, tokens)...)
}

// Gmail creates a Gmail API service.
func (f *ServiceFactory) Gmail(ctx context.Context, tokens *domain.GoogleTokens) (*gmail.Service, error) {
	return gmail.NewService(ctx, f.options(ctx, tokens)...)
}

// Drive creates a Google Drive API service.
func (f *ServiceFactory) Drive(ctx context.Context, tokens *domain.GoogleTokens) (*drive.Service, error) {
	return drive.NewService(ctx, f.options(ctx, tokens)...)
}

func (f *ServiceFactory) options(ctx context.Context, tokens *domain.GoogleTokens) []option.ClientOption {
	if f.baseClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, f.baseClient)
	}
	opts := []option.ClientOption{
		option.WithHTTPClient(oauth2.NewClient(ctx, TokenSource(tokens))),
	}
	if f.endpoint != "" {
		opts = append(opts, option.WithEndpoint(f.endpoint))
	}
	return opts
}
