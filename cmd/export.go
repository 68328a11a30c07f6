package cmd

import (
	"github.com/huangsam/voltview/core"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd writes the windowed records.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the records of the selected window",
	Long: `Write the records inside the --start/--end window, projected onto the
checked metrics.

Examples:
  # Voltage and current for one week as CSV
  voltview export --metrics voltage,current --start 2023-03-06 --end 2023-03-12 --output csv

  # Everything as compressed JSON
  voltview export --output json --output-file records.json.zst

  # Columnar export
  voltview export --output parquet --output-file records.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot export records", err)
		}
	},
}
