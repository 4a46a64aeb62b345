package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("workflowhub %s\n", version)
		if info, ok := debug.ReadBuildInfo(); ok {
			cmd.Printf("  go:     %s\n", info.GoVersion)
			if rev := buildSetting(info, "vcs.revision"); rev != "" {
				cmd.Printf("  commit: %s\n", rev)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func buildSetting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
