package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/workflowhub/internal/adapters/driven/config/file"
	"github.com/custodia-labs/workflowhub/internal/adapters/driven/identity"
	"github.com/custodia-labs/workflowhub/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/workflowhub/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/workflowhub/internal/adapters/driving/cli"
	"github.com/custodia-labs/workflowhub/internal/adapters/driving/rest"
	"github.com/custodia-labs/workflowhub/internal/connectors/google"
	"github.com/custodia-labs/workflowhub/internal/connectors/google/calendar"
	"github.com/custodia-labs/workflowhub/internal/connectors/google/drive"
	"github.com/custodia-labs/workflowhub/internal/connectors/google/gmail"
	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
	"github.com/custodia-labs/workflowhub/internal/core/services"
)

// storage is the persistence layer selected by settings.
type storage struct {
	users     driven.UserStore
	tokens    driven.TokenStore
	workflows driven.WorkflowStore
	ready     func(ctx context.Context) error
	close     func() error
}

func openSettings(configDir string) (driving.SettingsService, error) {
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return services.NewSettingsService(store,
		services.WithDefaultDataDir(filepath.Join(configDir, "data"))), nil
}

func openStorage(settings domain.StorageSettings) (*storage, error) {
	if settings.Driver == domain.StorageDriverMemory {
		users := memory.NewUserStore()
		return &storage{
			users:     users,
			tokens:    users,
			workflows: memory.NewWorkflowStore(),
			close:     func() error { return nil },
		}, nil
	}

	var opts []sqlite.Option
	if settings.EncryptionKey != "" {
		cipher, err := sqlite.NewTokenCipher(settings.EncryptionKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sqlite.WithTokenCipher(cipher))
	}
	store, err := sqlite.NewStore(settings.DataDir, opts...)
	if err != nil {
		return nil, err
	}
	users := store.UserStore()
	return &storage{
		users:     users,
		tokens:    users,
		workflows: store.WorkflowStore(),
		ready:     store.Ping,
		close:     store.Close,
	}, nil
}

func build(_ context.Context, settings *domain.AppSettings) (*cli.Runtime, error) {
	store, err := openStorage(settings.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	verifier, err := identity.NewJWTVerifier(settings.Auth.JWTSecret, settings.Auth.Issuer, settings.Auth.Audience)
	if err != nil {
		_ = store.close()
		return nil, err
	}
	signer, err := identity.NewStateSigner(settings.Auth.StateKey(), settings.Auth.StateTTL)
	if err != nil {
		_ = store.close()
		return nil, err
	}

	provider := google.NewOAuthProvider(settings.Google)
	factory := google.NewServiceFactory()
	limiters := google.NewRateLimiters(nil)

	tokens := services.NewTokenService(store.tokens, provider)
	integration := services.NewIntegrationService(
		tokens,
		calendar.NewFetcher(factory, limiters, calendar.DefaultConfig()),
		gmail.NewFetcher(factory, limiters),
		drive.NewFetcher(factory, limiters),
	)

	server := rest.NewServer(rest.Config{
		DashboardURL: settings.Server.DashboardURL,
		AllowOrigins: settings.Server.AllowOrigins,
		Ready:        store.ready,
	}, rest.Services{
		Users:       services.NewUserService(verifier, store.users),
		Consent:     services.NewConsentService(provider, signer, tokens),
		Integration: integration,
		Importer:    services.NewImportService(integration, store.workflows),
		Workflows:   services.NewWorkflowService(store.workflows),
	})

	return &cli.Runtime{Server: server, Close: store.close}, nil
}

func issueToken(settings *domain.AppSettings, id domain.Identity, ttl time.Duration) (string, error) {
	verifier, err := identity.NewJWTVerifier(settings.Auth.JWTSecret, settings.Auth.Issuer, settings.Auth.Audience)
	if err != nil {
		return "", err
	}
	return verifier.Issue(id, ttl)
}
