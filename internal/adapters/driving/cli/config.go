package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialise configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Long:  `Prints settings after environment overrides. Secrets are masked.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write effective settings to config.toml",
	Long: `Writes the current effective settings to <config-dir>/config.toml.
Secrets that are unset are not written.`,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	_, settings, err := loadSettings()
	if err != nil {
		return err
	}
	printSettings(cmd, settings)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	svc, settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := svc.Save(settings); err != nil {
		return err
	}
	cmd.Println("Configuration saved.")
	return nil
}

func printSettings(cmd *cobra.Command, s *domain.AppSettings) {
	cmd.Println("Server")
	cmd.Printf("  Address:        %s\n", s.Server.Addr)
	cmd.Printf("  Dashboard URL:  %s\n", s.Server.DashboardURL)
	cmd.Printf("  Allow origins:  %s\n", orNone(strings.Join(s.Server.AllowOrigins, ", ")))
	cmd.Println()

	cmd.Println("Google")
	cmd.Printf("  Client ID:      %s\n", orNone(s.Google.ClientID))
	cmd.Printf("  Client secret:  %s\n", maskSecret(s.Google.ClientSecret))
	cmd.Printf("  Redirect URL:   %s\n", orNone(s.Google.RedirectURL))
	cmd.Printf("  Scopes:         %s\n", strings.Join(s.Google.Scopes, " "))
	status := "configured"
	if !s.Google.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status:         %s\n", status)
	cmd.Println()

	cmd.Println("Auth")
	cmd.Printf("  JWT secret:     %s\n", maskSecret(s.Auth.JWTSecret))
	cmd.Printf("  Issuer:         %s\n", orNone(s.Auth.Issuer))
	cmd.Printf("  Audience:       %s\n", orNone(s.Auth.Audience))
	cmd.Printf("  State secret:   %s\n", maskSecret(s.Auth.StateSecret))
	cmd.Printf("  State TTL:      %s\n", s.Auth.StateTTL)
	cmd.Println()

	cmd.Println("Storage")
	cmd.Printf("  Driver:         %s\n", s.Storage.Driver)
	cmd.Printf("  Data dir:       %s\n", orNone(s.Storage.DataDir))
	cmd.Printf("  Encryption key: %s\n", maskSecret(s.Storage.EncryptionKey))
}

// maskSecret shows only the ends of long secrets.
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
