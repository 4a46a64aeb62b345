package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
)

// fakeSettings is an in-memory driving.SettingsService.
type fakeSettings struct {
	settings domain.AppSettings
	saved    *domain.AppSettings
}

func (f *fakeSettings) Get() (*domain.AppSettings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeSettings) Save(settings *domain.AppSettings) error {
	s := *settings
	f.saved = &s
	return nil
}

func (f *fakeSettings) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (f *fakeSettings) Watch(ctx context.Context, _ func(*domain.AppSettings)) error {
	<-ctx.Done()
	return nil
}

// fakeServer blocks in Listen until Shutdown.
type fakeServer struct {
	addr     string
	started  chan struct{}
	stopped  chan struct{}
	shutdown bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{started: make(chan struct{}), stopped: make(chan struct{})}
}

func (f *fakeServer) Listen(addr string) error {
	f.addr = addr
	close(f.started)
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdown = true
	close(f.stopped)
	return nil
}

func validSettings() domain.AppSettings {
	s := domain.DefaultAppSettings()
	s.Google.ClientID = "client-id"
	s.Google.ClientSecret = "client-secret-value"
	s.Google.RedirectURL = "http://localhost:8080/oauth/google/callback"
	s.Auth.JWTSecret = "jwt-secret-value"
	s.Storage.DataDir = "/tmp/workflowhub"
	return s
}

// withBootstrap installs b for the duration of the test and resets flag state.
func withBootstrap(t *testing.T, b Bootstrap) {
	t.Helper()
	previous := bootstrap
	bootstrap = b
	t.Cleanup(func() {
		bootstrap = previous
		configDir, verbose = "", false
		serveAddr, serveDataDir, serveMemory = "", "", false
		tokenSubject, tokenEmail, tokenName, tokenTTL = "", "", "", time.Hour
		rootCmd.SetArgs(nil)
	})
}

func settingsBootstrap(svc driving.SettingsService) func(string) (driving.SettingsService, error) {
	return func(string) (driving.SettingsService, error) { return svc, nil }
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

var errBuildFailed = errors.New("build failed")

func requireClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for channel")
	}
}
