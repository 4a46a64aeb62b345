package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr     = "server.addr"
	keyDashboardURL   = "server.dashboard_url"
	keyAllowOrigins   = "server.allow_origins"
	keyClientID       = "google.client_id"
	keyClientSecret   = "google.client_secret"
	keyRedirectURL    = "google.redirect_url"
	keyScopes         = "google.scopes"
	keyJWTSecret      = "auth.jwt_secret"
	keyJWTIssuer      = "auth.issuer"
	keyJWTAudience    = "auth.audience"
	keyStateSecret    = "auth.state_secret"
	keyStateTTL       = "auth.state_ttl"
	keyStorageDriver  = "storage.driver"
	keyStorageDataDir = "storage.data_dir"
	keyStorageEncKey  = "storage.encryption_key"
	keyLogVerbose     = "log.verbose"
)

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvClientID      = "GOOGLE_CLIENT_ID"
	EnvClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvRedirectURL   = "GOOGLE_REDIRECT_URI"
	EnvJWTSecret     = "WORKFLOWHUB_JWT_SECRET"
	EnvStateSecret   = "WORKFLOWHUB_STATE_SECRET"
	EnvDashboardURL  = "WORKFLOWHUB_DASHBOARD_URL"
	EnvEncryptionKey = "WORKFLOWHUB_ENCRYPTION_KEY"
	EnvAddr          = "WORKFLOWHUB_ADDR"
)

// SettingsService reads and writes application settings.
type SettingsService struct {
	configStore    driven.ConfigStore
	lookupEnv      func(string) (string, bool)
	defaultDataDir string
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithDefaultDataDir sets storage.data_dir when the file leaves it empty.
func WithDefaultDataDir(dir string) SettingsOption {
	return func(s *SettingsService) {
		s.defaultDataDir = dir
	}
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings.
// Values come from defaults, then the config file, then the environment.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Addr:         s.getString(keyServerAddr, EnvAddr, defaults.Server.Addr),
			DashboardURL: s.getString(keyDashboardURL, EnvDashboardURL, defaults.Server.DashboardURL),
			AllowOrigins: s.configStore.GetStringSlice(keyAllowOrigins),
		},
		Google: domain.GoogleOAuthSettings{
			ClientID:     s.getString(keyClientID, EnvClientID, ""),
			ClientSecret: s.getString(keyClientSecret, EnvClientSecret, ""),
			RedirectURL:  s.getString(keyRedirectURL, EnvRedirectURL, ""),
			Scopes:       s.getScopes(defaults.Google.Scopes),
		},
		Auth: domain.AuthSettings{
			JWTSecret:   s.getString(keyJWTSecret, EnvJWTSecret, ""),
			Issuer:      s.configStore.GetString(keyJWTIssuer),
			Audience:    s.configStore.GetString(keyJWTAudience),
			StateSecret: s.getString(keyStateSecret, EnvStateSecret, ""),
			StateTTL:    defaults.Auth.StateTTL,
		},
		Storage: domain.StorageSettings{
			Driver:        s.getDriver(defaults.Storage.Driver),
			DataDir:       s.getString(keyStorageDataDir, "", s.defaultDataDir),
			EncryptionKey: s.getString(keyStorageEncKey, EnvEncryptionKey, ""),
		},
		Log: domain.LogSettings{
			Verbose: s.configStore.GetBool(keyLogVerbose),
		},
	}

	if ttl := s.configStore.GetDuration(keyStateTTL); ttl > 0 {
		settings.Auth.StateTTL = ttl
	}

	return settings, nil
}

// Save persists application settings. Empty secrets are not written.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key    string
		value  any
		secret bool
	}{
		{keyServerAddr, settings.Server.Addr, false},
		{keyDashboardURL, settings.Server.DashboardURL, false},
		{keyAllowOrigins, settings.Server.AllowOrigins, false},
		{keyClientID, settings.Google.ClientID, false},
		{keyClientSecret, settings.Google.ClientSecret, true},
		{keyRedirectURL, settings.Google.RedirectURL, false},
		{keyScopes, settings.Google.Scopes, false},
		{keyJWTSecret, settings.Auth.JWTSecret, true},
		{keyJWTIssuer, settings.Auth.Issuer, false},
		{keyJWTAudience, settings.Auth.Audience, false},
		{keyStateSecret, settings.Auth.StateSecret, true},
		{keyStateTTL, settings.Auth.StateTTL.String(), false},
		{keyStorageDriver, string(settings.Storage.Driver), false},
		{keyStorageDataDir, settings.Storage.DataDir, false},
		{keyStorageEncKey, settings.Storage.EncryptionKey, true},
		{keyLogVerbose, settings.Log.Verbose, false},
	}
	for _, v := range values {
		if str, ok := v.value.(string); ok && v.secret && str == "" {
			continue
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// ErrWatchUnsupported is returned by Watch when the config store cannot report edits.
var ErrWatchUnsupported = errors.New("config store does not support watching")

// Watch calls onChange with freshly resolved settings after every edit of the
// config file. It blocks until ctx is done.
func (s *SettingsService) Watch(ctx context.Context, onChange func(*domain.AppSettings)) error {
	watcher, ok := s.configStore.(driven.ConfigWatcher)
	if !ok {
		return ErrWatchUnsupported
	}
	return watcher.Watch(ctx, func() {
		settings, err := s.Get()
		if err != nil {
			return
		}
		onChange(settings)
	})
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getString resolves a value from the environment, then the config file, then the default.
func (s *SettingsService) getString(key, env, defaultVal string) string {
	if env != "" {
		if val, ok := s.lookupEnv(env); ok && val != "" {
			return val
		}
	}
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getScopes(defaultVal []string) []string {
	scopes := s.configStore.GetStringSlice(keyScopes)
	if len(scopes) == 0 {
		return defaultVal
	}
	result := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		if scope = strings.TrimSpace(scope); scope != "" {
			result = append(result, scope)
		}
	}
	return result
}

func (s *SettingsService) getDriver(defaultVal domain.StorageDriver) domain.StorageDriver {
	driver := domain.StorageDriver(s.configStore.GetString(keyStorageDriver))
	if driver.IsValid() {
		return driver
	}
	return defaultVal
}
