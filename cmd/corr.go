package cmd

import (
	"github.com/huangsam/voltview/core"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/spf13/cobra"
)

// corrCmd prints the correlation matrix of the selected window.
var corrCmd = &cobra.Command{
	Use:   "corr",
	Short: "Print the Pearson correlation matrix of the selected window",
	Long: `Compute pairwise Pearson correlation between the electrical metrics inside
the --start/--end window.

The color domain is taken from the full dataset, so matrices of different
windows stay comparable.

Examples:
  # Correlation for January
  voltview corr --start 2023-01-01 --end 2023-01-31

  # Long-form CSV
  voltview corr --output csv --output-file corr.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCorrelation(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute correlation", err)
		}
	},
}
