package domain

import (
	"fmt"
	"time"
)

// Default Google scopes requested during consent.
const (
	ScopeCalendarReadonly = "https://www.googleapis.com/auth/calendar.readonly"
	ScopeGmailReadonly    = "https://www.googleapis.com/auth/gmail.readonly"
	ScopeDriveReadonly    = "https://www.googleapis.com/auth/drive.readonly"
	ScopeUserInfoEmail    = "https://www.googleapis.com/auth/userinfo.email"
	ScopeUserInfoProfile  = "https://www.googleapis.com/auth/userinfo.profile"
)

// StorageDriver selects the persistence backend.
type StorageDriver string

// Available storage drivers.
const (
	StorageDriverSQLite StorageDriver = "sqlite"
	StorageDriverMemory StorageDriver = "memory"
)

// IsValid returns true if the driver is recognised.
func (d StorageDriver) IsValid() bool {
	return d == StorageDriverSQLite || d == StorageDriverMemory
}

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// DashboardURL is where the OAuth callback redirects the browser.
	DashboardURL string
	// AllowOrigins is a list of CORS origins. Empty allows none beyond same-origin.
	AllowOrigins []string
}

// GoogleOAuthSettings is the OAuth client configuration for Google.
type GoogleOAuthSettings struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// IsConfigured returns true if the client can run a consent flow.
func (g GoogleOAuthSettings) IsConfigured() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

// AuthSettings configures bearer verification and consent state signing.
type AuthSettings struct {
	// JWTSecret verifies HS256 session tokens issued by the identity provider.
	JWTSecret string
	// Issuer and Audience are checked when non-empty.
	Issuer   string
	Audience string
	// StateSecret signs the consent state parameter.
	StateSecret string
	// StateTTL bounds how long a consent URL stays valid.
	StateTTL time.Duration
}

// StorageSettings configures persistence.
type StorageSettings struct {
	Driver  StorageDriver
	DataDir string
	// EncryptionKey is a 32 byte AES key, raw or as 64 hex characters. Empty stores tokens in clear.
	EncryptionKey string
}

// LogSettings configures logging.
type LogSettings struct {
	Verbose bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Server  ServerSettings
	Google  GoogleOAuthSettings
	Auth    AuthSettings
	Storage StorageSettings
	Log     LogSettings
}

// DefaultScopes returns the scopes requested when none are configured.
func DefaultScopes() []string {
	return []string{
		ScopeCalendarReadonly,
		ScopeGmailReadonly,
		ScopeDriveReadonly,
		ScopeUserInfoEmail,
		ScopeUserInfoProfile,
	}
}

// DefaultAppSettings returns settings with sensible defaults.
// Secrets and Google client credentials are left empty.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Addr:         ":8080",
			DashboardURL: "http://localhost:3000/dashboard",
		},
		Google: GoogleOAuthSettings{
			Scopes: DefaultScopes(),
		},
		Auth: AuthSettings{
			StateTTL: 10 * time.Minute,
		},
		Storage: StorageSettings{
			Driver: StorageDriverSQLite,
		},
	}
}

// Validate reports the first setting that prevents the server from starting.
func (s AppSettings) Validate() error {
	if s.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidInput)
	}
	if !s.Google.IsConfigured() {
		return fmt.Errorf("%w: google.client_id, google.client_secret and google.redirect_url are required", ErrInvalidInput)
	}
	if s.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidInput)
	}
	if s.Auth.StateTTL <= 0 {
		return fmt.Errorf("%w: auth.state_ttl must be positive", ErrInvalidInput)
	}
	if !s.Storage.Driver.IsValid() {
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidInput, s.Storage.Driver)
	}
	if s.Storage.Driver == StorageDriverSQLite && s.Storage.DataDir == "" {
		return fmt.Errorf("%w: storage.data_dir is required for sqlite", ErrInvalidInput)
	}
	return nil
}

// StateKey returns the secret used to sign consent state, falling back to the JWT secret.
func (s AuthSettings) StateKey() string {
	if s.StateSecret != "" {
		return s.StateSecret
	}
	return s.JWTSecret
}
