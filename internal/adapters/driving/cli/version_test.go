package cli

import (
	"context"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "release build", version: "1.4.0", want: "workflowhub 1.4.0"},
		{name: "dev build", version: "dev", want: "workflowhub dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := version
			version = tt.version
			t.Cleanup(func() { version = previous })
			withBootstrap(t, Bootstrap{})

			out, err := execute(t, context.Background(), "version")
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	previous := version
	t.Cleanup(func() { version = previous })

	SetVersion("2.0.0")
	SetVersion("")

	assert.Equal(t, "2.0.0", version)
}

func TestBuildSetting(t *testing.T) {
	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "abc123"},
	}}

	assert.Equal(t, "abc123", buildSetting(info, "vcs.revision"))
	assert.Empty(t, buildSetting(info, "vcs.time"))
}
