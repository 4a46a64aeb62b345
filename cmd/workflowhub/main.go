// Command workflowhub runs the WorkflowHub API server and its admin commands.
package main

import (
	"os"

	"github.com/custodia-labs/workflowhub/internal/adapters/driving/cli"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(cli.Bootstrap{
		Settings:   openSettings,
		Build:      build,
		IssueToken: issueToken,
	})

	if err := cli.Execute(); err != nil {
		logger.L().Sugar().Error(err)
		os.Exit(1)
	}
}
