// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/voltview/core"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes the voltview MCP server over session without starting it.
// This is exposed for unit testing.
func NewMCPServer(session *core.Session) *server.MCPServer {
	s := server.NewMCPServer(
		"Voltview Telemetry Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{session: session}

	s.AddTool(mcp.NewTool("get_window",
		mcp.WithDescription("Return the currently selected time window."),
	), h.handleGetWindow)

	s.AddTool(mcp.NewTool("set_window",
		mcp.WithDescription("Replace the selected time window. Endpoints are swapped when reversed."),
		mcp.WithString("start", mcp.Description("Window start (2006-01-02T15:04:05, 2006-01-02 or RFC3339)."), mcp.Required()),
		mcp.WithString("end", mcp.Description("Window end, same formats as start."), mcp.Required()),
	), h.handleSetWindow)

	s.AddTool(mcp.NewTool("select_weeks",
		mcp.WithDescription("Select the span between two week buttons (0-51) of the configured year."),
		mcp.WithNumber("from", mcp.Description("First week index."), mcp.Required()),
		mcp.WithNumber("to", mcp.Description("Last week index. Defaults to from.")),
	), h.handleSelectWeeks)

	s.AddTool(mcp.NewTool("toggle_metric",
		mcp.WithDescription("Check or uncheck a metric chart."),
		mcp.WithString("metric", mcp.Description("Metric id or field key (e.g. voltage, corriente)."), mcp.Required()),
		mcp.WithBoolean("checked", mcp.Description("Desired checked state."), mcp.Required()),
	), h.handleToggleMetric)

	s.AddTool(mcp.NewTool("get_correlation",
		mcp.WithDescription("Pearson correlation matrix of the metrics inside the selected window, strongest pairs first."),
	), h.handleGetCorrelation)

	s.AddTool(mcp.NewTool("get_dashboard_summary",
		mcp.WithDescription("Summarize the latest dashboard render: window, checked metrics, record counts and chart extents."),
	), h.handleGetDashboardSummary)

	return s
}

// StartMCPServer serves the voltview MCP server over stdio.
func StartMCPServer(_ context.Context, session *core.Session) error {
	s := NewMCPServer(session)
	return server.ServeStdio(s)
}
