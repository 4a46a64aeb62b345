package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

var (
	serveAddr    string
	serveDataDir string
	serveMemory  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Starts the WorkflowHub HTTP API.

Settings come from <config-dir>/config.toml, overridden by environment
variables and then by flags.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "SQLite data directory (overrides storage.data_dir)")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "keep all data in memory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if bootstrap.Build == nil {
		return errNotConfigured
	}

	svc, settings, err := loadSettings()
	if err != nil {
		return err
	}
	applyServeFlags(settings)
	if err := settings.Validate(); err != nil {
		return err
	}
	logger.SetVerbose(settings.Log.Verbose)
	defer logger.Sync() //nolint:errcheck // stderr sync fails on some terminals

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go watchVerbosity(ctx, svc)

	rt, err := bootstrap.Build(ctx, settings)
	if err != nil {
		return fmt.Errorf("starting workflowhub: %w", err)
	}
	defer func() {
		if rt.Close != nil {
			if err := rt.Close(); err != nil {
				logger.L().Warn("closing resources", zap.Error(err))
			}
		}
	}()

	return serveUntilDone(ctx, rt.Server, settings.Server.Addr)
}

// watchVerbosity applies log.verbose edits without a restart. --verbose always wins.
func watchVerbosity(ctx context.Context, svc driving.SettingsService) {
	err := svc.Watch(ctx, func(s *domain.AppSettings) {
		v := s.Log.Verbose || verbose
		if v != logger.IsVerbose() {
			logger.SetVerbose(v)
			logger.L().Info("log level changed", zap.Bool("verbose", v))
		}
	})
	if err != nil {
		logger.L().Warn("config watch stopped", zap.Error(err))
	}
}

func applyServeFlags(settings *domain.AppSettings) {
	if serveAddr != "" {
		settings.Server.Addr = serveAddr
	}
	if serveDataDir != "" {
		settings.Storage.DataDir = serveDataDir
	}
	if serveMemory {
		settings.Storage.Driver = domain.StorageDriverMemory
	}
}

// serveUntilDone runs the server until ctx ends or Listen fails.
func serveUntilDone(ctx context.Context, server Server, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("listening", zap.String("addr", addr))
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
