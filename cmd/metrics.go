package cmd

import (
	"github.com/huangsam/voltview/core"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the metric registry.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the metric registry and which metrics are checked",
	Long: `Show every plottable metric: its id, display name, record field and chart
color, plus whether --metrics checks it.

No telemetry is read.

Examples:
  voltview metrics
  voltview metrics --metrics voltage,power --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
