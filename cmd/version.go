package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows build details for bug reports.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print voltview build information",
	Long: `Display the release version, commit, build date and Go runtime of this binary.

Include this output when reporting a problem with a telemetry source or store.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("voltview %s (commit %s, built %s, %s %s/%s)\n",
			version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
