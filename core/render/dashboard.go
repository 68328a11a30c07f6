package render

import (
	"time"

	"github.com/huangsam/voltview/core/corr"
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/schema"
)

// Placeholder replaces any chart whose windowed input is empty.
const Placeholder = "no data available in this range"

// Point is one sample on a line chart.
type Point struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// LineView is the line chart of one checked metric. The y domain is [0, Max].
type LineView struct {
	ContainerID string  `json:"container_id"`
	Metric      string  `json:"metric"`
	Title       string  `json:"title"`
	Color       string  `json:"color"`
	Points      []Point `json:"points"`
	Max         float64 `json:"max"`
	Empty       bool    `json:"empty"`
	Placeholder string  `json:"placeholder,omitempty"`
}

// Slice is one segment of the workstation donut.
type Slice struct {
	Name  string  `json:"name"`
	Field string  `json:"field"`
	Color string  `json:"color"`
	Value float64 `json:"value"`
}

// PieView is the average CPU/GPU/RAM breakdown over the window.
type PieView struct {
	ContainerID string  `json:"container_id"`
	Slices      []Slice `json:"slices"`
	Samples     int     `json:"samples"`
	Empty       bool    `json:"empty"`
	Placeholder string  `json:"placeholder,omitempty"`
}

// StackSeries is one layer of the stacked-area chart.
type StackSeries struct {
	Name   string    `json:"name"`
	Field  string    `json:"field"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// StackedView is the CPU/GPU/RAM stacked-area chart over the window.
type StackedView struct {
	ContainerID string        `json:"container_id"`
	Times       []time.Time   `json:"times"`
	Series      []StackSeries `json:"series"`
	Empty       bool          `json:"empty"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// HeatmapView is the correlation heatmap over the window.
type HeatmapView struct {
	ContainerID string `json:"container_id"`
	corr.Heatmap
	Placeholder string `json:"placeholder,omitempty"`
}

// Dashboard is one complete render. A new render replaces the previous one wholesale.
type Dashboard struct {
	Generation      uint64                `json:"generation"`
	RenderedAt      time.Time             `json:"rendered_at"`
	Window          schema.TimeWindow     `json:"window"`
	Checked         []string              `json:"checked"`
	Weeks           []selector.MonthGroup `json:"weeks"`
	Timeline        selector.TimelineView `json:"timeline"`
	StartClock      selector.ClockView    `json:"start_clock"`
	EndClock        selector.ClockView    `json:"end_clock"`
	Lines           []LineView            `json:"lines"`
	Breakdown       PieView               `json:"breakdown"`
	Stacked         StackedView           `json:"stacked"`
	Correlation     HeatmapView           `json:"correlation"`
	TotalRecords    int                   `json:"total_records"`
	RecordsInWindow int                   `json:"records_in_window"`
	// DataRange spans the earliest to latest record; nil when no timestamp parses.
	DataRange *schema.TimeWindow `json:"data_range,omitempty"`
}

// Line returns the chart of metric id, if it is checked.
func (d *Dashboard) Line(id string) (LineView, bool) {
	for _, l := range d.Lines {
		if l.Metric == id {
			return l, true
		}
	}
	return LineView{}, false
}
