// Package cli provides the workflowhub command line.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	configDir string
	verbose   bool
)

// Server is a runnable HTTP server.
type Server interface {
	Listen(addr string) error
	Shutdown(ctx context.Context) error
}

// Runtime is a fully wired application.
type Runtime struct {
	Server Server
	// Close releases storage and other resources after shutdown.
	Close func() error
}

// Bootstrap holds the composition functions provided by main.
type Bootstrap struct {
	// Settings opens the settings service for a config directory.
	Settings func(configDir string) (driving.SettingsService, error)
	// Build wires every component from validated settings.
	Build func(ctx context.Context, settings *domain.AppSettings) (*Runtime, error)
	// IssueToken signs a session token with the configured secret.
	IssueToken func(settings *domain.AppSettings, identity domain.Identity, ttl time.Duration) (string, error)
}

var bootstrap Bootstrap

// SetBootstrap installs the composition functions.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "workflowhub",
	Short: "WorkflowHub API server",
	Long: `WorkflowHub connects a user's Google account and turns calendar events,
Gmail labels and Drive files into draft workflows.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default ~/.workflowhub)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings reads settings from the config directory with env overrides applied.
func loadSettings() (driving.SettingsService, *domain.AppSettings, error) {
	if bootstrap.Settings == nil {
		return nil, nil, errNotConfigured
	}
	svc, err := bootstrap.Settings(configDir)
	if err != nil {
		return nil, nil, err
	}
	settings, err := svc.Get()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		settings.Log.Verbose = true
	}
	return svc, settings, nil
}
