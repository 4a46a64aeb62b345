package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

func TestServeCmd_RunsUntilCancelled(t *testing.T) {
	server := newFakeServer()
	var built *domain.AppSettings
	closed := false

	withBootstrap(t, Bootstrap{
		Settings: settingsBootstrap(&fakeSettings{settings: validSettings()}),
		Build: func(_ context.Context, s *domain.AppSettings) (*Runtime, error) {
			built = s
			return &Runtime{Server: server, Close: func() error { closed = true; return nil }}, nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := execute(t, ctx, "serve", "--addr", ":9999", "--memory")
		done <- err
	}()

	requireClosed(t, server.started)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}

	assert.Equal(t, ":9999", server.addr)
	assert.True(t, server.shutdown)
	assert.True(t, closed)
	require.NotNil(t, built)
	assert.Equal(t, domain.StorageDriverMemory, built.Storage.Driver)
}

func TestServeCmd_RejectsInvalidSettings(t *testing.T) {
	invalid := validSettings()
	invalid.Auth.JWTSecret = ""
	buildCalled := false

	withBootstrap(t, Bootstrap{
		Settings: settingsBootstrap(&fakeSettings{settings: invalid}),
		Build: func(context.Context, *domain.AppSettings) (*Runtime, error) {
			buildCalled = true
			return nil, nil
		},
	})

	_, err := execute(t, context.Background(), "serve")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, buildCalled)
}

func TestServeCmd_BuildFailure(t *testing.T) {
	withBootstrap(t, Bootstrap{
		Settings: settingsBootstrap(&fakeSettings{settings: validSettings()}),
		Build: func(context.Context, *domain.AppSettings) (*Runtime, error) {
			return nil, errBuildFailed
		},
	})

	_, err := execute(t, context.Background(), "serve")
	assert.ErrorIs(t, err, errBuildFailed)
}

func TestServeCmd_NotConfigured(t *testing.T) {
	withBootstrap(t, Bootstrap{})

	_, err := execute(t, context.Background(), "serve")
	assert.ErrorIs(t, err, errNotConfigured)
}
