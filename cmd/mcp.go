package cmd

import (
	"log/slog"
	"os"

	"github.com/huangsam/voltview/core"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the voltview MCP server",
	Long:    `Launch an MCP server over stdio that lets AI agents move the time window, toggle metrics and read correlations.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		// stdout carries the protocol, so logs go to stderr only.
		logger := contract.NewLogger(os.Stderr, max(cfg.LogLevel, slog.LevelWarn))
		session, err := core.OpenSession(cfg, logger, nil)
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, session)
	},
}
