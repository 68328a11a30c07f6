package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/voltview/core"
	"github.com/huangsam/voltview/core/render"
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	session *core.Session
}

type lineSummary struct {
	Metric string  `json:"metric"`
	Points int     `json:"points"`
	Max    float64 `json:"max"`
	Empty  bool    `json:"empty"`
}

type dashboardSummary struct {
	Generation      uint64             `json:"generation"`
	Window          schema.TimeWindow  `json:"window"`
	Checked         []string           `json:"checked"`
	TotalRecords    int                `json:"total_records"`
	RecordsInWindow int                `json:"records_in_window"`
	DataRange       *schema.TimeWindow `json:"data_range,omitempty"`
	Lines           []lineSummary      `json:"lines"`
	Breakdown       []render.Slice     `json:"breakdown"`
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

func (h *toolHandler) handleGetWindow(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.session.Store.Get()), nil
}

func (h *toolHandler) handleSetWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loc := h.session.Location()
	start, err := contract.ParseAbsoluteTime(request.GetString("start", ""), loc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid start: %v", err)), nil
	}
	end, err := contract.ParseAbsoluteTime(request.GetString("end", ""), loc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid end: %v", err)), nil
	}
	w := h.session.Store.Set(render.WithTrigger(ctx, "mcp.set_window"), start, end)
	return jsonResult(w), nil
}

func (h *toolHandler) handleSelectWeeks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from := request.GetInt("from", -1)
	to := request.GetInt("to", from)

	if to < 0 || to >= selector.WeeksPerGrid {
		return mcp.NewToolResultError(fmt.Sprintf("invalid week selection: %v: %d", selector.ErrWeekOutOfRange, to)), nil
	}
	grid := h.session.Grid
	if err := grid.Press(from); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid week selection: %v", err)), nil
	}
	grid.Enter(to)
	w, _ := grid.Release(render.WithTrigger(ctx, "mcp.select_weeks"))
	return jsonResult(w), nil
}

func (h *toolHandler) handleToggleMetric(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("metric", "")
	checked := request.GetBool("checked", true)
	if err := h.session.Selection.Toggle(render.WithTrigger(ctx, "mcp.toggle_metric"), id, checked); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(h.session.Selection.Checked()), nil
}

func (h *toolHandler) handleGetCorrelation(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.session.Correlation(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("correlation failed: %v", err)), nil
	}
	return jsonResult(struct {
		schema.CorrelationReport
		Pairs []schema.CorrelationPair `json:"pairs"`
	}{report, report.Matrix.Pairs()}), nil
}

func (h *toolHandler) handleGetDashboardSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := h.session.Dashboard(render.WithTrigger(ctx, "mcp.summary"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	summary := dashboardSummary{
		Generation:      d.Generation,
		Window:          d.Window,
		Checked:         d.Checked,
		TotalRecords:    d.TotalRecords,
		RecordsInWindow: d.RecordsInWindow,
		DataRange:       d.DataRange,
		Breakdown:       d.Breakdown.Slices,
	}
	for _, l := range d.Lines {
		summary.Lines = append(summary.Lines, lineSummary{
			Metric: l.Metric,
			Points: len(l.Points),
			Max:    l.Max,
			Empty:  l.Empty,
		})
	}
	return jsonResult(summary), nil
}
