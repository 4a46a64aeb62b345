package driving

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// SettingsService resolves application settings from defaults, the config
// file and the environment.
type SettingsService interface {
	// Get returns the effective settings.
	Get() (*domain.AppSettings, error)

	// Save writes settings to the config file. Empty secrets are skipped.
	Save(settings *domain.AppSettings) error

	// GetDefaults returns the built-in defaults.
	GetDefaults() domain.AppSettings

	// Watch calls onChange with re-resolved settings after each edit of the
	// config file, until ctx is done.
	Watch(ctx context.Context, onChange func(*domain.AppSettings)) error
}
