// Package chart draws dashboards with go-echarts and the selector widgets as SVG.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/huangsam/voltview/core/render"
	"github.com/huangsam/voltview/schema"
)

// axisLayout labels the category time axis of line and area charts.
const axisLayout = "01-02 15:04:05"

// heatmapColors runs from strong negative to strong positive correlation.
var heatmapColors = []string{"#2166ac", "#67a9cf", "#d1e5f0", "#f7f7f7", "#fddbc7", "#ef8a62", "#b2182b"}

// Config describes one line chart.
type Config struct {
	ContainerID string
	Data        []render.Point
	ValueKey    string
	Color       string
	Title       string
	Max         float64
	Placeholder string
}

// LineConfig converts a dashboard line view to a chart config.
func LineConfig(v render.LineView) Config {
	return Config{
		ContainerID: v.ContainerID,
		Data:        v.Points,
		ValueKey:    v.Title,
		Color:       v.Color,
		Title:       v.Title,
		Max:         v.Max,
		Placeholder: v.Placeholder,
	}
}

func initOpts(containerID string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID: containerID,
		Width:   "100%",
		Height:  "320px",
	})
}

// titleFor centers the placeholder in place of an empty chart.
func titleFor(title, placeholder string) opts.Title {
	if placeholder == "" {
		return opts.Title{Title: title}
	}
	return opts.Title{Title: title, Subtitle: placeholder, Left: "center", Top: "middle"}
}

func titleOpts(title, placeholder string) charts.GlobalOpts {
	return charts.WithTitleOpts(titleFor(title, placeholder))
}

// NewLine builds a single-series line chart with the y axis fixed to [0, Max].
func NewLine(cfg Config) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(cfg.ContainerID),
		titleOpts(cfg.Title, cfg.Placeholder),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: &opts.AxisLabel{Rotate: 30}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: cfg.Max}),
	)

	labels := make([]string, len(cfg.Data))
	data := make([]opts.LineData, len(cfg.Data))
	for i, p := range cfg.Data {
		labels[i] = p.At.Format(axisLayout)
		data[i] = opts.LineData{Value: p.Value}
	}
	line.SetXAxis(labels).AddSeries(cfg.ValueKey, data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: cfg.Color, Width: 1.5}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: cfg.Color}),
	)
	return line
}

// NewBreakdown builds the CPU/GPU/RAM donut.
func NewBreakdown(v render.PieView) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(v.ContainerID),
		titleOpts("Workstation power breakdown", v.Placeholder),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)

	data := make([]opts.PieData, 0, len(v.Slices))
	for _, s := range v.Slices {
		data = append(data, opts.PieData{
			Name:      s.Name,
			Value:     s.Value,
			ItemStyle: &opts.ItemStyle{Color: s.Color},
		})
	}
	pie.AddSeries("average watts", data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

// NewStacked builds the CPU/GPU/RAM stacked-area chart.
func NewStacked(v render.StackedView) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(v.ContainerID),
		titleOpts("Workstation power", v.Placeholder),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: &opts.AxisLabel{Rotate: 30}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "W"}),
	)

	labels := make([]string, len(v.Times))
	for i, t := range v.Times {
		labels[i] = t.Format(axisLayout)
	}
	line.SetXAxis(labels)
	for _, s := range v.Series {
		data := make([]opts.LineData, len(s.Values))
		for i, val := range s.Values {
			data[i] = opts.LineData{Value: val}
		}
		line.AddSeries(s.Name, data,
			charts.WithLineChartOpts(opts.LineChart{Stack: "power", ShowSymbol: opts.Bool(false)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.6, Color: s.Color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}
	return line
}

// NewHeatmap builds the correlation heatmap. Colors use the full-dataset domain.
func NewHeatmap(v render.HeatmapView) *charts.HeatMap {
	hm := charts.NewHeatMap()
	keys := v.Matrix.Keys
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: v.ContainerID, Width: "100%", Height: "480px"}),
		titleOpts("Correlation", v.Placeholder),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", SplitArea: &opts.SplitArea{Show: opts.Bool(true)}, AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: keys, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(v.Min),
			Max:        float32(v.Max),
			InRange:    &opts.VisualMapInRange{Color: heatmapColors},
		}),
	)

	var data []opts.HeatMapData
	for i := range keys {
		for j := range keys {
			data = append(data, opts.HeatMapData{
				Name:  fmt.Sprintf("%s ~ %s", keys[i], keys[j]),
				Value: [3]any{j, i, v.Matrix.Values[i][j]},
			})
		}
	}
	hm.SetXAxis(keys).AddSeries("r", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{@[2]}"}),
	)
	return hm
}

// NewPage lays out every chart of d in registry order.
func NewPage(d *render.Dashboard) *components.Page {
	page := components.NewPage()
	page.PageTitle = "voltview"
	page.SetLayout(components.PageFlexLayout)

	for _, l := range d.Lines {
		page.AddCharts(NewLine(LineConfig(l)))
	}
	page.AddCharts(
		NewBreakdown(d.Breakdown),
		NewStacked(d.Stacked),
		NewHeatmap(d.Correlation),
	)
	return page
}

// RenderPage writes the chart page of d as HTML.
func RenderPage(w io.Writer, d *render.Dashboard) error {
	if err := NewPage(d).Render(w); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

// ContainerIDs lists the chart containers RenderPage emits for d.
func ContainerIDs(d *render.Dashboard) []string {
	ids := make([]string, 0, len(d.Lines)+3)
	for _, l := range d.Lines {
		ids = append(ids, l.ContainerID)
	}
	return append(ids, schema.BreakdownChartID, schema.StackedAreaChartID, schema.CorrelationChartID)
}
