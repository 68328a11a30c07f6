package cmd

import (
	"os"

	"github.com/huangsam/voltview/core"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/internal/web"
	"github.com/spf13/cobra"
)

// serveCmd runs the interactive dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive telemetry dashboard",
	Long: `Start the HTTP dashboard: metric toggles, a week grid, a zoomable timeline,
two clock dials and the charts they drive.

Every widget writes the same time window. Each change re-renders all charts
from the full dataset, and renders that finish after a newer one are dropped.

Routes:
  /            dashboard page
  /charts      chart page
  /api/...     widget events
  /metrics     Prometheus metrics
  /health      liveness

Examples:
  # Serve a local JSON file
  voltview serve --source data.json

  # Serve a remote feed, refreshed at most every minute
  voltview serve --source-backend http --source https://example.com/data.json --cache-ttl '1 minute'`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		logger := contract.NewLogger(os.Stderr, cfg.LogLevel)
		metrics := web.NewMetrics()
		session, err := core.OpenSession(cfg, logger, metrics.ObserveRender)
		if err != nil {
			contract.LogFatal("Cannot open dashboard session", err)
		}
		server := web.NewServer(session, metrics, logger)
		if err := server.ListenAndServe(rootCtx, cfg.Listen); err != nil {
			contract.LogFatal("Dashboard server failed", err)
		}
	},
}
