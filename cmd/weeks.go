package cmd

import (
	"github.com/huangsam/voltview/core"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/spf13/cobra"
)

// weeksCmd prints the week grid.
var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "Print the week grid of the reference year",
	Long: `List the 52 week buttons of --year, grouped by month, marking the weeks
that lie entirely inside the --start/--end window. The week containing today,
if it falls in the grid, is marked as current.

No telemetry is read.

Examples:
  voltview weeks --year 2023 --start 2023-02-01 --end 2023-02-28`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWeeks(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display weeks", err)
		}
	},
}
